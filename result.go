package nnscan

import (
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Result holds the outputs of one launch: for every index i,
// MostSimilarIndex[i] and MostSimilarScore[i].
type Result struct {
	MostSimilarIndex []int
	MostSimilarScore []float32

	releaseOnce sync.Once
	release     func()
}

// Len returns the number of result slots.
func (r *Result) Len() int { return len(r.MostSimilarIndex) }

// Match returns the result for index i.
func (r *Result) Match(i int) Match {
	return Match{Index: r.MostSimilarIndex[i], Score: r.MostSimilarScore[i]}
}

// Matches iterates over all (index, match) pairs in ascending index order.
func (r *Result) Matches() iter.Seq2[int, Match] {
	return func(yield func(int, Match) bool) {
		for i := range r.MostSimilarIndex {
			if !yield(i, r.Match(i)) {
				return
			}
		}
	}
}

// Unmatched returns the indices that hold the sentinel pair.
func (r *Result) Unmatched() *roaring.Bitmap {
	bm := roaring.New()
	for i, idx := range r.MostSimilarIndex {
		if idx == NoMatch {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Release returns the result's accounted memory to the resource
// controller it was allocated against. The slices remain readable.
// Calling Release more than once is a no-op.
func (r *Result) Release() {
	r.releaseOnce.Do(func() {
		if r.release != nil {
			r.release()
		}
	})
}

func countUnmatched(idx []int) int {
	n := 0
	for _, j := range idx {
		if j == NoMatch {
			n++
		}
	}
	return n
}
