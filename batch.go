package nnscan

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/nnscan/distance"
)

// Batch is an immutable, contiguous set of N vectors of dimension D.
//
// Vector i occupies data[i*D : (i+1)*D]. Magnitudes are computed once at
// construction with the same kernel the scan uses.
type Batch struct {
	data []float32
	mags []float32
	dim  int
	n    int
}

// NewBatch copies vectors into a new Batch.
//
// It rejects an empty batch, a zero dimension, ragged rows and non-finite
// components.
func NewBatch(vectors [][]float32) (*Batch, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyBatch
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(v)}
		}
		data = append(data, v...)
	}

	return newBatch(data, dim)
}

// NewBatchFlat copies a row-major buffer of len(data)/dim vectors into a
// new Batch.
func NewBatchFlat(data []float32, dim int) (*Batch, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}
	if len(data) == 0 {
		return nil, ErrEmptyBatch
	}
	if rem := len(data) % dim; rem != 0 {
		return nil, &ErrDimensionMismatch{Index: len(data) / dim, Expected: dim, Actual: rem}
	}

	return newBatch(append([]float32(nil), data...), dim)
}

// newBatch takes ownership of data.
func newBatch(data []float32, dim int) (*Batch, error) {
	n := len(data) / dim

	for k, x := range data {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return nil, &ErrNonFinite{Index: k / dim, Component: k % dim, Value: x}
		}
	}

	mags := make([]float32, n)
	for i := range mags {
		mags[i] = distance.Norm(data[i*dim : (i+1)*dim])
	}

	return &Batch{data: data, mags: mags, dim: dim, n: n}, nil
}

// Len returns the number of vectors.
func (b *Batch) Len() int { return b.n }

// Dim returns the dimension of every vector.
func (b *Batch) Dim() int { return b.dim }

// Vector returns a read-only view of vector i.
func (b *Batch) Vector(i int) []float32 {
	lo, hi := i*b.dim, (i+1)*b.dim
	return b.data[lo:hi:hi]
}

// Magnitude returns the Euclidean norm of vector i.
func (b *Batch) Magnitude(i int) float32 { return b.mags[i] }

// Data returns the read-only row-major backing buffer.
func (b *Batch) Data() []float32 { return b.data[:len(b.data):len(b.data)] }

// Degenerate returns the indices of zero-magnitude vectors. Such vectors
// never match and are never matched.
func (b *Batch) Degenerate() *roaring.Bitmap {
	bm := roaring.New()
	for i, m := range b.mags {
		if m == 0 {
			bm.Add(uint32(i))
		}
	}
	return bm
}
