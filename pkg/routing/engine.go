package routing

import (
	"context"
	"errors"
	"math"

	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/sssp"
)

// ErrNoRoute is returned when no route exists between the two points.
var ErrNoRoute = errors.New("no route found")

// ErrNotGeographic is returned when the graph carries no coordinates.
var ErrNotGeographic = errors.New("graph has no node coordinates")

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, start, end LatLng) (*RouteResult, error)
}

// RouteResult holds one computed route.
type RouteResult struct {
	TotalDistanceMeters float64
	SnapDistStartMeters float64
	SnapDistEndMeters   float64
	Geometry            []LatLng
}

// Engine implements Router by snapping the endpoints to the road graph and
// running the band-recursion solver from the start vertex.
type Engine struct {
	g       *graph.Graph
	snapper *Snapper
}

// NewEngine creates a routing engine for a geographic graph.
func NewEngine(g *graph.Graph) (*Engine, error) {
	if !g.Geographic() {
		return nil, ErrNotGeographic
	}
	return &Engine{
		g:       g,
		snapper: NewSnapper(g),
	}, nil
}

// Route computes the shortest path between two points. Distances are
// vertex-to-vertex after snapping; the individual snap offsets are
// reported alongside.
func (e *Engine) Route(ctx context.Context, start, end LatLng) (*RouteResult, error) {
	startSnap, err := e.snapper.Snap(start.Lat, start.Lng)
	if err != nil {
		return nil, err
	}
	endSnap, err := e.snapper.Snap(end.Lat, end.Lng)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := startSnap.NearestNode()
	dst := endSnap.NearestNode()

	res, err := sssp.Solve(e.g, sssp.Options{Source: src, ReturnPredecessors: true})
	if err != nil {
		return nil, err
	}

	total := res.Dist[dst]
	if math.IsInf(total, 1) {
		return nil, ErrNoRoute
	}

	return &RouteResult{
		TotalDistanceMeters: total,
		SnapDistStartMeters: startSnap.Dist,
		SnapDistEndMeters:   endSnap.Dist,
		Geometry:            e.buildGeometry(res.Pred, src, dst),
	}, nil
}

// buildGeometry traces the predecessor chain from dst back to src and
// converts it to coordinates in travel order.
func (e *Engine) buildGeometry(pred []int32, src, dst int32) []LatLng {
	var nodes []int32
	for v := dst; ; {
		nodes = append(nodes, v)
		if v == src {
			break
		}
		p := pred[v]
		if p < 0 {
			break
		}
		v = p
	}
	// Reverse to get src → dst.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	geom := make([]LatLng, len(nodes))
	for i, v := range nodes {
		geom[i] = LatLng{Lat: e.g.NodeLat[v], Lng: e.g.NodeLon[v]}
	}
	return geom
}
