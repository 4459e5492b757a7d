// Package psq implements a partial-sorting queue: a priority-queue-like
// multiset whose hot path removes roughly the M smallest pairs at once
// instead of the single minimum. Pairs are kept in a sequence of blocks
// ordered by value band; apart from the batches BatchPrepend chunks, only
// blocks that are about to be split or partially drained are ever sorted.
package psq

import (
	"math"
	"sort"
)

// Pair is one (vertex, value) entry. Duplicate keys are allowed; Pull
// resolves duplicates by retaining the smallest value per key.
type Pair struct {
	Key int32
	Val float64
}

// block holds up to ~M pairs, unsorted, all of them <= ub. Blocks are kept
// in ascending ub order and every pair in a block is no smaller than the ub
// of the preceding block, so the block sequence is totally ordered by value
// band even though pairs within a block are not.
type block struct {
	pairs []Pair
	ub    float64
}

// Queue is a partial-sorting queue parameterized by (M, B): M is the pull
// cap and B the fallback bound returned once the queue is emptied.
type Queue struct {
	m      int
	b      float64
	blocks []block
	size   int // stored pairs, not unique keys
}

// New creates an empty queue with pull cap m (clamped to >= 1) and
// fallback bound b.
func New(m int, b float64) *Queue {
	if m < 1 {
		m = 1
	}
	return &Queue{m: m, b: b}
}

// Len returns the number of stored pairs.
func (q *Queue) Len() int { return q.size }

// Empty reports whether the queue holds no pairs.
func (q *Queue) Empty() bool { return q.size == 0 }

// Insert adds (key, val) to the first block whose upper bound admits val,
// splitting the block at its median if it grows past M.
func (q *Queue) Insert(key int32, val float64) {
	idx := sort.Search(len(q.blocks), func(i int) bool {
		return q.blocks[i].ub >= val
	})
	if idx == len(q.blocks) {
		// The trailing block stretches to +Inf so every value has a home.
		q.blocks = append(q.blocks, block{pairs: make([]Pair, 0, q.m+1), ub: math.Inf(1)})
	}

	q.blocks[idx].pairs = append(q.blocks[idx].pairs, Pair{Key: key, Val: val})
	q.size++

	if len(q.blocks[idx].pairs) > q.m {
		q.split(idx)
	}
}

// split sorts block i and divides it at the median. The left half takes the
// median value as its new upper bound; the right half keeps the old one.
func (q *Queue) split(i int) {
	pairs := q.blocks[i].pairs
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Val < pairs[b].Val })

	mid := len(pairs) / 2
	right := make([]Pair, len(pairs)-mid)
	copy(right, pairs[mid:])

	oldUB := q.blocks[i].ub
	q.blocks[i].pairs = pairs[:mid:mid]
	q.blocks[i].ub = pairs[mid-1].Val

	q.blocks = append(q.blocks, block{})
	copy(q.blocks[i+2:], q.blocks[i+1:])
	q.blocks[i+1] = block{pairs: right, ub: oldUB}
}

// BatchPrepend adds pairs that are all strictly smaller than everything in
// the queue. The precondition is checked defensively: any pair not below
// the current minimum is routed through Insert instead. The remaining
// pairs are chunked into blocks of ceil(M/2) and placed ahead of the
// existing block sequence.
func (q *Queue) BatchPrepend(pairs []Pair) {
	if len(pairs) == 0 {
		return
	}

	qmin := q.Min()

	small := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Val < qmin {
			small = append(small, p)
		} else {
			q.Insert(p.Key, p.Val)
		}
	}
	if len(small) == 0 {
		return
	}

	sort.Slice(small, func(a, b int) bool { return small[a].Val < small[b].Val })

	chunk := (q.m + 1) / 2
	var fresh []block
	for i := 0; i < len(small); i += chunk {
		end := min(i+chunk, len(small))
		blk := make([]Pair, end-i)
		copy(blk, small[i:end])
		fresh = append(fresh, block{pairs: blk, ub: blk[len(blk)-1].Val})
	}

	q.blocks = append(fresh, q.blocks...)
	q.size += len(small)
}

// Pull removes roughly the M smallest pairs and returns their deduplicated
// keys together with a separating bound: the true minimum value among all
// pairs still in the queue, or the fallback B once the queue is empty.
// Stale duplicates (same key, larger value) among the pulled pairs are
// silently discarded.
func (q *Queue) Pull() ([]int32, float64) {
	if q.size == 0 {
		return nil, q.b
	}

	collected := make([]Pair, 0, q.m)
	for len(q.blocks) > 0 && len(collected) < q.m {
		blk := &q.blocks[0]
		room := q.m - len(collected)
		if len(blk.pairs) <= room {
			collected = append(collected, blk.pairs...)
			q.blocks = q.blocks[1:]
			continue
		}
		// Partial drain: sort so the prefix is exactly the block's smallest.
		sort.Slice(blk.pairs, func(a, b int) bool { return blk.pairs[a].Val < blk.pairs[b].Val })
		collected = append(collected, blk.pairs[:room]...)
		blk.pairs = blk.pairs[room:]
	}
	q.size -= len(collected)

	// Keys keep first-occurrence order so pulls are deterministic.
	best := make(map[int32]float64, len(collected))
	keys := make([]int32, 0, len(collected))
	for _, p := range collected {
		if v, ok := best[p.Key]; !ok {
			best[p.Key] = p.Val
			keys = append(keys, p.Key)
		} else if p.Val < v {
			best[p.Key] = p.Val
		}
	}

	if q.size == 0 {
		q.blocks = nil
		return keys, q.b
	}
	return keys, q.Min()
}

// Min returns the smallest value currently stored, or +Inf when empty.
// All blocks are scanned: the separating bound returned by Pull must be the
// true global minimum, not the front block's approximation.
func (q *Queue) Min() float64 {
	m := math.Inf(1)
	for i := range q.blocks {
		for _, p := range q.blocks[i].pairs {
			if p.Val < m {
				m = p.Val
			}
		}
	}
	return m
}
