package routing

import (
	"context"
	"errors"
	"math"
	"testing"

	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/sssp"
)

func TestRouteEndToEnd(t *testing.T) {
	g := buildTestRoadGraph(t)
	eng, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// Near node 0 to near node 2: should follow the top row 0-1-2.
	result, err := eng.Route(context.Background(),
		LatLng{Lat: 1.300, Lng: 103.800},
		LatLng{Lat: 1.300, Lng: 103.820},
	)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	want := dist(g.NodeLat, g.NodeLon, 0, 1) + dist(g.NodeLat, g.NodeLon, 1, 2)
	if math.Abs(result.TotalDistanceMeters-want) > 1.0 {
		t.Errorf("TotalDistanceMeters = %f, want ~%f", result.TotalDistanceMeters, want)
	}
	if len(result.Geometry) != 3 {
		t.Errorf("geometry has %d points, want 3", len(result.Geometry))
	}
}

func TestRouteMatchesOracle(t *testing.T) {
	g := buildTestRoadGraph(t)
	eng, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	result, err := eng.Route(context.Background(),
		LatLng{Lat: 1.310, Lng: 103.800}, // node 3
		LatLng{Lat: 1.300, Lng: 103.820}, // node 2
	)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	oracle, _ := sssp.Dijkstra(g, 3, false)
	if math.Abs(result.TotalDistanceMeters-oracle[2]) > 1e-6 {
		t.Errorf("route = %f, oracle = %f", result.TotalDistanceMeters, oracle[2])
	}
}

func TestRouteNoRoute(t *testing.T) {
	// Two disconnected one-way stubs.
	in := &graph.Input{N: 4, Edges: []graph.InputEdge{
		{U: 0, V: 1, W: 100},
		{U: 2, V: 3, W: 100},
	}}
	g, err := graph.Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.NodeLat = []float64{1.300, 1.300, 1.400, 1.400}
	g.NodeLon = []float64{103.800, 103.801, 103.800, 103.801}

	eng, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	_, err = eng.Route(context.Background(),
		LatLng{Lat: 1.300, Lng: 103.800},
		LatLng{Lat: 1.400, Lng: 103.801},
	)
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("Route = %v, want ErrNoRoute", err)
	}
}

func TestNewEngineRequiresCoordinates(t *testing.T) {
	g, err := graph.Build(&graph.Input{N: 2, Edges: []graph.InputEdge{{U: 0, V: 1, W: 1}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := NewEngine(g); !errors.Is(err, ErrNotGeographic) {
		t.Errorf("NewEngine = %v, want ErrNotGeographic", err)
	}
}

func TestRouteCancelledContext(t *testing.T) {
	g := buildTestRoadGraph(t)
	eng, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Route(ctx,
		LatLng{Lat: 1.300, Lng: 103.800},
		LatLng{Lat: 1.300, Lng: 103.820},
	)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Route = %v, want context.Canceled", err)
	}
}
