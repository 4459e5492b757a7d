package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/routing"
	"bmssp_router/pkg/sssp"
)

// maxSSSPBodyBytes bounds inline graph uploads.
const maxSSSPBodyBytes = 16 << 20

// Handlers holds the HTTP handlers and their dependencies. The router is
// nil when the server was started without a geographic graph; the raw
// /sssp endpoint works either way.
type Handlers struct {
	router routing.Router
	stats  StatsResponse
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router routing.Router, stats StatsResponse) *Handlers {
	return &Handlers{
		router: router,
		stats:  stats,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	if h.router == nil {
		writeError(w, http.StatusNotFound, "routing_unavailable", "")
		return
	}

	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	result, err := h.router.Route(r.Context(),
		routing.LatLng{Lat: req.Start.Lat, Lng: req.Start.Lng},
		routing.LatLng{Lat: req.End.Lat, Lng: req.End.Lng})
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrPointTooFar):
			writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "")
		case errors.Is(err, routing.ErrNoRoute):
			writeError(w, http.StatusNotFound, "no_route_found", "")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	resp := RouteResponse{
		TotalDistanceMeters: result.TotalDistanceMeters,
		SnapDistStartMeters: result.SnapDistStartMeters,
		SnapDistEndMeters:   result.SnapDistEndMeters,
	}
	for _, ll := range result.Geometry {
		resp.Geometry = append(resp.Geometry, LatLngJSON{Lat: ll.Lat, Lng: ll.Lng})
	}

	writeJSON(w, resp)
}

// HandleSSSP handles POST /api/v1/sssp: single-source distances over an
// inline graph.
func (h *Handlers) HandleSSSP(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req SSSPRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSSSPBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	in := &graph.Input{N: req.N, Directed: req.Directed}
	for _, e := range req.Edges {
		in.Edges = append(in.Edges, graph.InputEdge{U: e.U, V: e.V, W: e.W})
	}
	if req.Adj != nil {
		in.Adj = make([][]graph.InputArc, len(req.Adj))
		for u, arcs := range req.Adj {
			for _, a := range arcs {
				in.Adj[u] = append(in.Adj[u], graph.InputArc{V: a.V, W: a.W})
			}
			if in.Adj[u] == nil {
				in.Adj[u] = []graph.InputArc{}
			}
		}
	}

	g, err := graph.Build(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed_graph", "")
		return
	}

	res, err := sssp.Solve(g, sssp.Options{
		Source:             req.Source,
		ReturnPredecessors: req.ReturnPredecessors,
	})
	if err != nil {
		if errors.Is(err, sssp.ErrSourceOutOfRange) {
			writeError(w, http.StatusBadRequest, "source_out_of_range", "source")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, SSSPResponse{Dist: DistJSON(res.Dist), Pred: res.Pred})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.stats)
}

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
