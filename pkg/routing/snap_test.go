package routing

import (
	"errors"
	"math"
	"testing"

	"bmssp_router/pkg/graph"
)

// buildTestRoadGraph creates a small bidirectional road graph:
//
//	0 --- 1 --- 2
//	|           |
//	3 --------- 4
//
// laid out on a ~1.1 km grid near the equator.
func buildTestRoadGraph(t *testing.T) *graph.Graph {
	t.Helper()

	lat := []float64{1.300, 1.300, 1.300, 1.310, 1.310}
	lon := []float64{103.800, 103.810, 103.820, 103.800, 103.820}

	links := [][2]int32{{0, 1}, {1, 2}, {0, 3}, {2, 4}, {3, 4}}

	in := &graph.Input{N: 5}
	for _, l := range links {
		w := dist(lat, lon, l[0], l[1])
		in.Edges = append(in.Edges,
			graph.InputEdge{U: l[0], V: l[1], W: w},
			graph.InputEdge{U: l[1], V: l[0], W: w},
		)
	}

	g, err := graph.Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.NodeLat = lat
	g.NodeLon = lon
	return g
}

func dist(lat, lon []float64, u, v int32) float64 {
	// Equirectangular is plenty for test fixtures at this scale.
	x := (lon[v] - lon[u]) * math.Cos((lat[u]+lat[v])/2*math.Pi/180) * math.Pi / 180
	y := (lat[v] - lat[u]) * math.Pi / 180
	return math.Sqrt(x*x+y*y) * 6_371_000
}

func TestSnapToNearestEdge(t *testing.T) {
	g := buildTestRoadGraph(t)
	s := NewSnapper(g)

	// Slightly north of the midpoint of edge 0-1.
	res, err := s.Snap(1.3005, 103.805)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}

	endpoints := map[int32]bool{res.NodeU: true, res.NodeV: true}
	if !endpoints[0] || !endpoints[1] {
		t.Errorf("snapped to edge %d-%d, want 0-1", res.NodeU, res.NodeV)
	}
	if res.Ratio < 0.3 || res.Ratio > 0.7 {
		t.Errorf("ratio = %f, want ~0.5", res.Ratio)
	}
	if res.Dist > 100 {
		t.Errorf("snap distance = %f m, want < 100", res.Dist)
	}
}

func TestSnapPrefersCloserEdge(t *testing.T) {
	g := buildTestRoadGraph(t)
	s := NewSnapper(g)

	// Just south of the 3-4 edge, far from the 0-1-2 row.
	res, err := s.Snap(1.3095, 103.810)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	endpoints := map[int32]bool{res.NodeU: true, res.NodeV: true}
	if !endpoints[3] || !endpoints[4] {
		t.Errorf("snapped to edge %d-%d, want 3-4", res.NodeU, res.NodeV)
	}
}

func TestSnapTooFar(t *testing.T) {
	g := buildTestRoadGraph(t)
	s := NewSnapper(g)

	_, err := s.Snap(2.5, 104.9)
	if !errors.Is(err, ErrPointTooFar) {
		t.Errorf("Snap = %v, want ErrPointTooFar", err)
	}
}

func TestEdgeSource(t *testing.T) {
	g := buildTestRoadGraph(t)
	s := NewSnapper(g)

	for u := int32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			if got := s.edgeSource(e); got != u {
				t.Errorf("edgeSource(%d) = %d, want %d", e, got, u)
			}
		}
	}
}

func TestNearestNode(t *testing.T) {
	r := SnapResult{NodeU: 7, NodeV: 9, Ratio: 0.2}
	if r.NearestNode() != 7 {
		t.Errorf("NearestNode = %d, want 7", r.NearestNode())
	}
	r.Ratio = 0.8
	if r.NearestNode() != 9 {
		t.Errorf("NearestNode = %d, want 9", r.NearestNode())
	}
}
