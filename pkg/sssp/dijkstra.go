package sssp

import (
	"math"

	"bmssp_router/pkg/graph"
)

// Dijkstra computes exact single-source distances with a binary heap.
// It is the reference the band recursion is validated against and the
// textbook fallback for callers that want it. pred is nil unless
// withPred is set.
func Dijkstra(g *graph.Graph, source int32, withPred bool) (dist []float64, pred []int32) {
	dist = make([]float64, g.NumNodes)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	if withPred {
		pred = make([]int32, g.NumNodes)
		for i := range pred {
			pred[i] = noPred
		}
	}
	dist[source] = 0

	var h minHeap
	h.Push(source, 0)

	for h.Len() > 0 {
		item := h.Pop()
		u := item.Node
		if item.Dist > dist[u] {
			continue
		}

		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			nd := dist[u] + g.Weight[e]
			if nd < dist[v] {
				dist[v] = nd
				if pred != nil {
					pred[v] = u
				}
				h.Push(v, nd)
			}
		}
	}

	return dist, pred
}
