package distance

import (
	"slices"

	"github.com/hupe1980/nnscan/internal/simd"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return simd.Dot(a, b)
}

// DotBatch computes the dot product of query with each dim-wide row of
// targets, writing one result per row into out.
func DotBatch(query, targets []float32, dim int, out []float32) {
	simd.DotBatch(query, targets, dim, out)
}

// SquaredNorm returns the sum of squared components of v.
func SquaredNorm(v []float32) float32 {
	return simd.Dot(v, v)
}

// Norm returns the Euclidean magnitude of v.
func Norm(v []float32) float32 {
	return simd.Sqrt(simd.Dot(v, v))
}

// Cosine returns the cosine similarity of a and b.
// ok is false when the similarity is undefined: a zero magnitude product,
// or a NaN produced by float32 overflow.
func Cosine(a, b []float32) (sim float32, ok bool) {
	return CosineWithNorms(a, b, Norm(a), Norm(b))
}

// CosineWithNorms is Cosine with precomputed magnitudes.
func CosineWithNorms(a, b []float32, na, nb float32) (float32, bool) {
	return CosineFromDot(simd.Dot(a, b), na*nb)
}

// CosineFromDot divides a dot product by a magnitude product.
// A zero denominator (tested by sign, so -0 counts as zero) or a NaN
// quotient reports ok == false.
func CosineFromDot(dot, denom float32) (float32, bool) {
	if sign(denom) == 0 {
		return 0, false
	}
	sim := dot / denom
	if sim != sim {
		return 0, false
	}
	return sim, true
}

func sign(x float32) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := simd.Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / simd.Sqrt(norm2)
	simd.ScaleInPlace(v, inv)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
