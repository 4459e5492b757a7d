package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/sssp"
)

func main() {
	numNodes := flag.Int("n", 100_000, "Number of vertices")
	degree := flag.Int("degree", 4, "Average out-degree")
	rounds := flag.Int("rounds", 5, "Number of query rounds")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	log.Printf("Generating random graph: n=%d, avg degree=%d, seed=%d", *numNodes, *degree, *seed)
	g := randomGraph(int32(*numNodes), *degree, *seed)
	log.Printf("Graph: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	rng := rand.New(rand.NewSource(*seed))

	var bandTotal, dijkstraTotal time.Duration
	for round := 0; round < *rounds; round++ {
		source := int32(rng.Intn(int(g.NumNodes)))

		t0 := time.Now()
		res, err := sssp.Solve(g, sssp.Options{Source: source})
		if err != nil {
			log.Fatalf("Solve: %v", err)
		}
		bandTime := time.Since(t0)
		bandTotal += bandTime

		t0 = time.Now()
		oracle, _ := sssp.Dijkstra(g, source, false)
		dijkstraTime := time.Since(t0)
		dijkstraTotal += dijkstraTime

		mismatches := 0
		reached := 0
		for v := range res.Dist {
			if !math.IsInf(res.Dist[v], 1) {
				reached++
			}
			if math.Abs(res.Dist[v]-oracle[v]) > 1e-9 &&
				!(math.IsInf(res.Dist[v], 1) && math.IsInf(oracle[v], 1)) {
				mismatches++
			}
		}
		if mismatches > 0 {
			log.Fatalf("Round %d: %d distance mismatches against Dijkstra", round, mismatches)
		}

		log.Printf("Round %d: source=%d reached=%d bmssp=%s dijkstra=%s",
			round, source, reached, bandTime.Round(time.Microsecond), dijkstraTime.Round(time.Microsecond))
	}

	log.Printf("Totals over %d rounds: bmssp=%s dijkstra=%s (%.2fx)",
		*rounds, bandTotal.Round(time.Millisecond), dijkstraTotal.Round(time.Millisecond),
		float64(dijkstraTotal)/float64(bandTotal))
}

// randomGraph builds a connected-ish sparse digraph: a random spine so most
// vertices are reachable from most sources, plus random extra arcs.
func randomGraph(n int32, degree int, seed int64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))

	edges := make([]graph.InputEdge, 0, int(n)*degree)

	// Spine: each vertex links to the next with a random weight.
	for u := int32(0); u+1 < n; u++ {
		edges = append(edges, graph.InputEdge{U: u, V: u + 1, W: rng.Float64()*9 + 1})
	}

	// Random extra arcs.
	extra := int(n) * (degree - 1)
	for i := 0; i < extra; i++ {
		u := int32(rng.Intn(int(n)))
		v := int32(rng.Intn(int(n)))
		edges = append(edges, graph.InputEdge{U: u, V: v, W: rng.Float64()*99 + 1})
	}

	return graph.FromEdges(n, edges)
}
