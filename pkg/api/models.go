package api

import (
	"bytes"
	"math"
	"strconv"
)

// LatLngJSON is a coordinate pair on the wire.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteRequest is the body of POST /api/v1/route.
type RouteRequest struct {
	Start LatLngJSON `json:"start"`
	End   LatLngJSON `json:"end"`
}

// RouteResponse is the result of a route query.
type RouteResponse struct {
	TotalDistanceMeters float64      `json:"total_distance_meters"`
	SnapDistStartMeters float64      `json:"snap_dist_start_meters"`
	SnapDistEndMeters   float64      `json:"snap_dist_end_meters"`
	Geometry            []LatLngJSON `json:"geometry"`
}

// SSSPRequest is the body of POST /api/v1/sssp: an inline graph in
// edge-list or adjacency-list form plus the query options.
type SSSPRequest struct {
	N                  int32       `json:"n"`
	Edges              []EdgeJSON  `json:"edges,omitempty"`
	Adj                [][]ArcJSON `json:"adj,omitempty"`
	Directed           *bool       `json:"directed,omitempty"`
	Source             int32       `json:"source"`
	ReturnPredecessors bool        `json:"return_predecessors,omitempty"`
}

// EdgeJSON mirrors graph.InputEdge on the wire.
type EdgeJSON struct {
	U int32   `json:"u"`
	V int32   `json:"v"`
	W float64 `json:"w"`
}

// ArcJSON mirrors graph.InputArc on the wire.
type ArcJSON struct {
	V int32   `json:"v"`
	W float64 `json:"w"`
}

// SSSPResponse carries the output arrays. Unreachable vertices are
// encoded as null, since JSON has no +Inf.
type SSSPResponse struct {
	Dist DistJSON `json:"dist"`
	Pred []int32  `json:"pred,omitempty"`
}

// DistJSON marshals a distance array, mapping +Inf to null.
type DistJSON []float64

func (d DistJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsInf(v, 1) {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	NumNodes   int32 `json:"num_nodes"`
	NumEdges   int32 `json:"num_edges"`
	Directed   bool  `json:"directed"`
	Geographic bool  `json:"geographic"`
}

// ErrorResponse is the body of any error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
