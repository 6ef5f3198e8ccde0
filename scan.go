package nnscan

import "github.com/hupe1980/nnscan/distance"

const (
	// NoMatch is the index reported when no candidate qualified.
	NoMatch = -1

	// NoMatchScore is the score reported together with NoMatch.
	NoMatchScore float32 = -1.0
)

// scanBlock is the number of candidates whose dot products are computed
// per batch kernel call.
const scanBlock = 64

// Match is the nearest neighbor of one vector.
type Match struct {
	Index int
	Score float32
}

// Found reports whether m refers to an actual vector.
func (m Match) Found() bool { return m.Index != NoMatch }

// Scan returns the most cosine-similar vector j != i in b.
//
// Candidates are visited in ascending order. A candidate is skipped when
// its similarity with i is undefined (zero magnitude product, or NaN from
// float32 overflow). The first defined candidate replaces the sentinel and
// later ones only replace the best on strictly greater similarity.
//
// The sentinel is not a lower bound: a first candidate whose similarity
// rounds to slightly below -1 is still reported.
//
// i must be in [0, b.Len()).
func Scan(b *Batch, i int) Match {
	q := b.Vector(i)
	qmag := b.mags[i]
	dim := b.dim

	best := Match{Index: NoMatch, Score: NoMatchScore}

	var dots [scanBlock]float32
	for lo := 0; lo < b.n; lo += scanBlock {
		hi := min(lo+scanBlock, b.n)
		distance.DotBatch(q, b.data[lo*dim:hi*dim], dim, dots[:hi-lo])

		for j := lo; j < hi; j++ {
			if j == i {
				continue
			}
			sim, ok := distance.CosineFromDot(dots[j-lo], qmag*b.mags[j])
			if !ok {
				continue
			}
			if !best.Found() || sim > best.Score {
				best = Match{Index: j, Score: sim}
			}
		}
	}

	return best
}
