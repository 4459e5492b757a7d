package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"bmssp_router/pkg/api"
	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/routing"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to preprocessed graph binary")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	// Load graph.
	log.Printf("Loading graph from %s...", *graphPath)
	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	// Build the routing engine when the graph carries coordinates; the raw
	// /sssp endpoint works without them.
	var router routing.Router
	if g.Geographic() {
		log.Println("Building spatial index...")
		engine, err := routing.NewEngine(g)
		if err != nil {
			log.Fatalf("Failed to build engine: %v", err)
		}
		router = engine
	} else {
		log.Println("Graph has no coordinates; /api/v1/route disabled")
	}

	// Reclaim memory from init-time temporaries before serving.
	runtime.GC()
	debug.FreeOSMemory()

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes:   g.NumNodes,
		NumEdges:   g.NumEdges,
		Directed:   g.Directed,
		Geographic: g.Geographic(),
	}

	handlers := api.NewHandlers(router, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
