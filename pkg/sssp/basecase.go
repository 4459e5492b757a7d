package sssp

import "math"

// baseCase handles recursion level 0: a bounded binary-heap Dijkstra from
// the seed with the smallest current distance, settling at most k+1
// vertices and considering only edges that stay below bound.
//
// Edges are accepted when nd <= dist[v] so that vertices already at their
// final distance still enter the heap and propagate; dist is written only
// on strict improvement. The settled guard keeps zero-weight self-loops
// from re-settling a vertex.
//
// If at most k vertices settle the whole band below bound is complete and
// (bound, settled) is returned. Otherwise the reported bound shrinks to
// the largest settled distance and only vertices strictly below it count
// as complete.
func (s *solver) baseCase(bound float64, seeds []int32) (float64, []int32) {
	x := seeds[0]
	for _, v := range seeds[1:] {
		if s.dist[v] < s.dist[x] {
			x = v
		}
	}

	var h minHeap
	h.Push(x, s.dist[x])

	settled := make([]int32, 0, s.k+1)
	done := make(map[int32]bool, s.k+2)

	for h.Len() > 0 && len(settled) < s.k+1 {
		item := h.Pop()
		u := item.Node
		if done[u] || item.Dist > s.dist[u] {
			continue
		}
		done[u] = true
		settled = append(settled, u)

		du := s.dist[u]
		if math.IsInf(du, 1) {
			continue
		}
		start, end := s.g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := s.g.Head[e]
			nd := du + s.g.Weight[e]
			if nd >= bound || nd > s.dist[v] {
				continue
			}
			if nd < s.dist[v] {
				s.improve(v, nd, u)
			}
			if !done[v] {
				h.Push(v, nd)
			}
		}
	}

	if len(settled) <= s.k {
		return bound, settled
	}

	bp := 0.0
	for _, v := range settled {
		if s.dist[v] > bp {
			bp = s.dist[v]
		}
	}
	complete := make([]int32, 0, len(settled))
	for _, v := range settled {
		if s.dist[v] < bp {
			complete = append(complete, v)
		}
	}
	return bp, complete
}

// propagate runs a bounded multi-source Dijkstra from the given vertices
// at their current distances. The pivot search only relaxes k rounds, so
// tight chains deeper than k inside the witness set still need this pass
// before a frame returns; without it distances strand at +Inf on small
// inputs.
func (s *solver) propagate(bound float64, seeds []int32) {
	if len(seeds) == 0 {
		return
	}

	var h minHeap
	for _, v := range seeds {
		h.Push(v, s.dist[v])
	}
	done := make(map[int32]bool, len(seeds)*2)

	for h.Len() > 0 {
		item := h.Pop()
		u := item.Node
		if done[u] || item.Dist > s.dist[u] {
			continue
		}
		done[u] = true

		du := s.dist[u]
		if math.IsInf(du, 1) {
			continue
		}
		start, end := s.g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := s.g.Head[e]
			nd := du + s.g.Weight[e]
			if nd >= bound || nd > s.dist[v] {
				continue
			}
			if nd < s.dist[v] {
				s.improve(v, nd, u)
			}
			if !done[v] {
				h.Push(v, nd)
			}
		}
	}
}
