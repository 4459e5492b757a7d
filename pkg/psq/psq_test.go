package psq

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPullEmpty(t *testing.T) {
	q := New(4, 99.0)

	keys, bound := q.Pull()
	assert.Empty(t, keys)
	assert.Equal(t, 99.0, bound)
	assert.True(t, q.Empty())
}

func TestInsertPullSmallest(t *testing.T) {
	q := New(3, math.Inf(1))

	vals := map[int32]float64{1: 5, 2: 1, 3: 9, 4: 3, 5: 7, 6: 2}
	for k, v := range vals {
		q.Insert(k, v)
	}
	require.Equal(t, 6, q.Len())

	keys, bound := q.Pull()
	require.Len(t, keys, 3)

	// The three smallest values are 1, 2, 3; everything else stays behind
	// and the bound separates the two groups.
	for _, k := range keys {
		assert.LessOrEqual(t, vals[k], bound)
	}
	assert.Equal(t, 5.0, bound)
	assert.Equal(t, 3, q.Len())
}

func TestPullDeduplicatesKeys(t *testing.T) {
	q := New(8, math.Inf(1))

	q.Insert(7, 3.0)
	q.Insert(7, 1.0)
	q.Insert(7, 2.0)
	require.Equal(t, 3, q.Len())

	keys, bound := q.Pull()
	assert.Equal(t, []int32{7}, keys)
	assert.True(t, math.IsInf(bound, 1))
	assert.True(t, q.Empty())
}

func TestBatchPrependComesOutFirst(t *testing.T) {
	q := New(4, math.Inf(1))
	for k := int32(0); k < 8; k++ {
		q.Insert(k, 10+float64(k))
	}

	q.BatchPrepend([]Pair{{Key: 100, Val: 1}, {Key: 101, Val: 2}, {Key: 102, Val: 3}})
	require.Equal(t, 11, q.Len())

	keys, bound := q.Pull()
	require.Len(t, keys, 4)
	got := map[int32]bool{}
	for _, k := range keys {
		got[k] = true
	}
	assert.True(t, got[100] && got[101] && got[102], "prepended keys must be pulled first, got %v", keys)
	assert.Equal(t, 11.0, bound)
}

func TestBatchPrependDefensiveRouting(t *testing.T) {
	q := New(4, math.Inf(1))
	q.Insert(1, 5.0)

	// 9 violates the strictly-smaller contract and must be routed through
	// Insert rather than placed ahead of the existing minimum.
	q.BatchPrepend([]Pair{{Key: 2, Val: 2.0}, {Key: 3, Val: 9.0}})
	require.Equal(t, 3, q.Len())

	keys, _ := q.Pull()
	got := map[int32]bool{}
	for _, k := range keys {
		got[k] = true
	}
	assert.True(t, got[2], "the conforming element must still be first")
}

// TestExactOrderWithUnitPull checks that with M=1 the queue degenerates to
// an exact priority queue, using a sorted reference as oracle.
func TestExactOrderWithUnitPull(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	q := New(1, math.Inf(1))
	var ref []float64
	for i := 0; i < 200; i++ {
		v := rng.Float64() * 100
		q.Insert(int32(i), v)
		ref = append(ref, v)
	}
	sort.Float64s(ref)

	for i := 0; i < len(ref); i++ {
		keys, bound := q.Pull()
		require.Len(t, keys, 1)
		if i+1 < len(ref) {
			assert.InDelta(t, ref[i+1], bound, 1e-15, "bound must be the next remaining value")
		} else {
			assert.True(t, math.IsInf(bound, 1))
		}
	}
	assert.True(t, q.Empty())
}

// TestPullBoundLaw drives random insert/batch-prepend/pull sequences and
// checks the separator law: every pulled key's smallest known value is at
// most the returned bound, and the bound is the true minimum of what
// remains.
func TestPullBoundLaw(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := 1 + rng.Intn(8)
		q := New(m, math.Inf(1))

		minVal := map[int32]float64{} // smallest value ever stored per key
		note := func(k int32, v float64) {
			if cur, ok := minVal[k]; !ok || v < cur {
				minVal[k] = v
			}
		}

		var nextKey int32
		pulled := 0
		for step := 0; step < 300; step++ {
			switch rng.Intn(3) {
			case 0:
				v := rng.Float64() * 1000
				q.Insert(nextKey, v)
				note(nextKey, v)
				nextKey++
			case 1:
				qmin := q.Min()
				var batch []Pair
				for i := 0; i < rng.Intn(4); i++ {
					// Mostly conforming values, occasionally a violator to
					// exercise the defensive path.
					v := rng.Float64() * 1000
					if !q.Empty() {
						v = qmin * rng.Float64()
						if rng.Intn(5) == 0 {
							v = qmin + rng.Float64()*10
						}
					}
					batch = append(batch, Pair{Key: nextKey, Val: v})
					note(nextKey, v)
					nextKey++
				}
				q.BatchPrepend(batch)
			case 2:
				before := q.Len()
				keys, bound := q.Pull()
				pulled += before - q.Len()
				for _, k := range keys {
					require.LessOrEqual(t, minVal[k], bound,
						"seed=%d step=%d: pulled key %d with min val %v above bound %v", seed, step, k, minVal[k], bound)
				}
				if q.Empty() {
					assert.True(t, math.IsInf(bound, 1))
				} else {
					assert.Equal(t, q.Min(), bound)
				}
			}
		}

		// Conservation: pairs pulled plus pairs remaining equals pairs stored.
		assert.Equal(t, len(minVal), pulled+q.Len(), "seed=%d", seed)
	}
}
