// Package sssp computes single-source shortest-path distances on directed
// graphs with non-negative weights using the Duan–Mao–Mao–Shu–Yin bounded
// multi-source recursion. Instead of a global priority queue the frontier
// is partitioned into bounded distance bands and processed through a small
// number of recursion levels, giving O(m log^(2/3) n) on sparse graphs.
// Distances agree with Dijkstra exactly.
//
// Based on "Breaking the Sorting Barrier for Directed Single-Source
// Shortest Paths" by Ran Duan et al. (arXiv:2504.17033).
package sssp

import (
	"errors"
	"fmt"
	"math"

	"bmssp_router/pkg/graph"
)

// ErrSourceOutOfRange is returned when the query source is not a vertex.
var ErrSourceOutOfRange = errors.New("sssp: source out of range")

// eps is the tolerance for tight-edge detection in the pivot forest.
// Every other distance comparison is exact so results stay bit-compatible
// with Dijkstra.
const eps = 1e-12

const noPred = int32(-1)

// Options configures a single-source query.
type Options struct {
	Source             int32
	ReturnPredecessors bool

	// KSteps overrides the computed relaxation depth k when >= 2.
	// Reserved tuning knob; any legal value yields identical distances.
	KSteps int

	// PivotFactor is reserved and currently ignored.
	PivotFactor int
}

// Result holds the output of a query. Dist[v] is +Inf for unreachable v.
// Pred is nil unless requested; Pred[v] is -1 for the source and for
// unreachable vertices.
type Result struct {
	Dist []float64
	Pred []int32
}

// solver carries the shared mutable state of one query: the distance and
// predecessor arrays plus the parameters derived from n. Everything else
// is owned by the recursion frame that creates it.
type solver struct {
	g    *graph.Graph
	dist []float64
	pred []int32 // nil when predecessors are not requested

	k      int // relaxation depth / base-case settlement cap
	t      int // band split exponent
	levels int // top recursion level

	inW []bool // scratch vertex-membership bitmap, reset via touched lists
}

// Solve runs a single-source query on g.
func Solve(g *graph.Graph, opts Options) (*Result, error) {
	n := g.NumNodes
	if opts.Source < 0 || opts.Source >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, opts.Source, n)
	}

	s := newSolver(g, opts)
	s.run(opts.Source)

	return &Result{Dist: s.dist, Pred: s.pred}, nil
}

func newSolver(g *graph.Graph, opts Options) *solver {
	// l = ln n, k = l^(1/3), t = l^(2/3), levels = l/t. The k >= 2 floor
	// matters: k = 1 lets base cases settle a single vertex and stall on
	// dense clusters.
	l := math.Max(1, math.Log(math.Max(2, float64(g.NumNodes))))
	k := max(2, int(math.Floor(math.Cbrt(l))))
	t := max(1, int(math.Floor(math.Pow(l, 2.0/3.0))))
	levels := max(1, int(math.Ceil(l/float64(t))))

	if opts.KSteps >= 2 {
		k = opts.KSteps
	}

	s := &solver{
		g:      g,
		dist:   make([]float64, g.NumNodes),
		k:      k,
		t:      t,
		levels: levels,
		inW:    make([]bool, g.NumNodes),
	}
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
	}
	if opts.ReturnPredecessors {
		s.pred = make([]int32, g.NumNodes)
		for i := range s.pred {
			s.pred[i] = noPred
		}
	}
	return s
}

func (s *solver) run(source int32) {
	s.dist[source] = 0
	s.bmssp(s.levels, math.Inf(1), []int32{source})
}

// improve records a strict tightening of dist[v] through u. Callers have
// already established nd < dist[v]; equality never writes, which keeps the
// predecessor array valid.
func (s *solver) improve(v int32, nd float64, u int32) {
	s.dist[v] = nd
	if s.pred != nil {
		s.pred[v] = u
	}
}
