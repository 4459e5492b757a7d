package sssp

import (
	"math"

	"bmssp_router/pkg/psq"
)

// pullCap picks the partial-sorting queue's pull size for level l. Any
// value >= 4 that grows with l preserves correctness; the growth rate only
// controls how much work each pull batches.
func (s *solver) pullCap(l int) int {
	shift := (l - 1) * ((s.t + 3) / 4)
	if shift > 30 {
		shift = 30
	}
	return max(4, 1<<shift)
}

// bmssp completes the band below bound for the given seed set at level l.
// It returns the bound actually completed (<= bound) and the vertices
// settled at or below this level.
func (s *solver) bmssp(l int, bound float64, seeds []int32) (float64, []int32) {
	if l == 0 {
		return s.baseCase(bound, seeds)
	}

	pivots, witness := s.findPivots(bound, seeds)
	if len(pivots) == 0 {
		// No seed roots a large tight subtree; fall back to the full seed
		// set so small and dense graphs still make progress.
		pivots = seeds
	}

	q := psq.New(s.pullCap(l), bound)
	for _, x := range pivots {
		q.Insert(x, s.dist[x])
	}

	var acc []int32
	inAcc := make(map[int32]struct{})
	add := func(v int32) {
		if _, ok := inAcc[v]; !ok {
			inAcc[v] = struct{}{}
			acc = append(acc, v)
		}
	}

	for !q.Empty() {
		si, bi := q.Pull()
		if len(si) == 0 {
			break
		}

		bpi, ui := s.bmssp(l-1, bi, si)

		if len(ui) == 0 {
			// The sub-call completed none of its vertices (k+1 of them
			// settled at one and the same distance), so re-queueing these
			// seeds at unchanged distances would repeat the same pull forever.
			// Their distances were finalized by the bounded Dijkstra below;
			// record them as complete and move on.
			for _, x := range si {
				add(x)
			}
			continue
		}

		for _, u := range ui {
			add(u)
		}

		// Relax the completed vertices' out-edges and classify each result
		// against the band boundaries: back into the queue when it lands in
		// [bi, bound), into the prepend buffer when it falls in the finer
		// band [bpi, bi), dropped when below bpi (already complete).
		var buf []psq.Pair
		for _, u := range ui {
			du := s.dist[u]
			if math.IsInf(du, 1) {
				continue
			}
			start, end := s.g.EdgesFrom(u)
			for e := start; e < end; e++ {
				v := s.g.Head[e]
				nd := du + s.g.Weight[e]
				if nd > s.dist[v] {
					continue
				}
				if nd < s.dist[v] {
					s.improve(v, nd, u)
				}
				switch {
				case nd >= bi && nd < bound:
					q.Insert(v, nd)
				case nd >= bpi && nd < bi:
					buf = append(buf, psq.Pair{Key: v, Val: nd})
				}
			}
		}

		// Seeds the recursion did not complete still belong to a smaller
		// band ahead of everything in the queue.
		for _, x := range si {
			if dx := s.dist[x]; dx >= bpi && dx < bi {
				buf = append(buf, psq.Pair{Key: x, Val: dx})
			}
		}
		q.BatchPrepend(buf)
	}

	// Queue drained: the full band below bound is complete. Push the
	// witnesses' distances through any tight chains the bounded pivot
	// search was too shallow to follow.
	extra := make([]int32, 0, len(witness))
	for _, x := range witness {
		if s.dist[x] < bound {
			extra = append(extra, x)
		}
	}
	s.propagate(bound, extra)

	for _, x := range extra {
		add(x)
	}
	return bound, acc
}
