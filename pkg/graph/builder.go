package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedInput is the base error for all graph input validation failures.
var ErrMalformedInput = errors.New("malformed graph input")

// InputEdge is one directed edge in edge-list form.
type InputEdge struct {
	U int32   `json:"u"`
	V int32   `json:"v"`
	W float64 `json:"w"`
}

// InputArc is one outgoing arc in adjacency-list form.
type InputArc struct {
	V int32   `json:"v"`
	W float64 `json:"w"`
}

// Input is a graph description in one of two forms: an edge list or an
// adjacency list. At most one of Edges/Adj may be set; with neither, the
// graph has N vertices and no edges. Directed defaults
// to true; when false the builder emits a reciprocal edge for every input
// edge.
type Input struct {
	N        int32        `json:"n"`
	Edges    []InputEdge  `json:"edges,omitempty"`
	Adj      [][]InputArc `json:"adj,omitempty"`
	Directed *bool        `json:"directed,omitempty"`
}

// DecodeInput parses a JSON graph description. The form is tagged by which
// of "edges"/"adj" is present.
func DecodeInput(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return &in, nil
}

// Build validates an Input and converts it to a CSR Graph.
func Build(in *Input) (*Graph, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil input", ErrMalformedInput)
	}
	if in.N < 0 {
		return nil, fmt.Errorf("%w: n = %d", ErrMalformedInput, in.N)
	}
	if in.Edges != nil && in.Adj != nil {
		return nil, fmt.Errorf("%w: both edges and adj set", ErrMalformedInput)
	}

	directed := true
	if in.Directed != nil {
		directed = *in.Directed
	}

	// Normalize both forms to a flat edge list.
	var edges []InputEdge
	switch {
	case in.Adj != nil:
		if int32(len(in.Adj)) != in.N {
			return nil, fmt.Errorf("%w: adj has %d rows, n = %d", ErrMalformedInput, len(in.Adj), in.N)
		}
		for u, arcs := range in.Adj {
			for _, a := range arcs {
				edges = append(edges, InputEdge{U: int32(u), V: a.V, W: a.W})
			}
		}
	default:
		edges = in.Edges
	}

	for i, e := range edges {
		if e.U < 0 || e.U >= in.N || e.V < 0 || e.V >= in.N {
			return nil, fmt.Errorf("%w: edge %d endpoint out of range [0,%d)", ErrMalformedInput, i, in.N)
		}
		if math.IsNaN(e.W) || math.IsInf(e.W, 0) || e.W < 0 {
			return nil, fmt.Errorf("%w: edge %d weight %v", ErrMalformedInput, i, e.W)
		}
	}

	if !directed {
		rev := make([]InputEdge, 0, len(edges))
		for _, e := range edges {
			rev = append(rev, InputEdge{U: e.V, V: e.U, W: e.W})
		}
		edges = append(edges, rev...)
	}

	return buildCSR(in.N, edges, directed), nil
}

// buildCSR assembles the CSR arrays from a validated edge list via
// counting sort on the source node.
func buildCSR(n int32, edges []InputEdge, directed bool) *Graph {
	m := int32(len(edges))
	firstOut := make([]int32, n+1)
	head := make([]int32, m)
	weight := make([]float64, m)

	for _, e := range edges {
		firstOut[e.U+1]++
	}
	for i := int32(1); i <= n; i++ {
		firstOut[i] += firstOut[i-1]
	}

	pos := make([]int32, n)
	copy(pos, firstOut[:n])
	for _, e := range edges {
		idx := pos[e.U]
		head[idx] = e.V
		weight[idx] = e.W
		pos[e.U]++
	}

	return &Graph{
		NumNodes: n,
		NumEdges: m,
		Directed: directed,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
	}
}

// FromEdges builds a directed CSR graph from raw arrays without validation.
// Intended for internal callers that construct edges programmatically.
func FromEdges(n int32, edges []InputEdge) *Graph {
	return buildCSR(n, edges, true)
}
