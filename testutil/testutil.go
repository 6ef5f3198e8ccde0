package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/nnscan/internal/simd"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float32 {
	return r.vectors(num, dimensions, func() float32 { return r.rand.Float32() })
}

// UniformRangeVectors generates random vectors with values in range [-1, 1).
func (r *RNG) UniformRangeVectors(num int, dimensions int) [][]float32 {
	return r.vectors(num, dimensions, func() float32 { return r.rand.Float32()*2 - 1 })
}

// ScaledVectors generates random vectors with values in range [0, scale),
// in the style of the classic "random float4 times 10" workload.
func (r *RNG) ScaledVectors(num int, dimensions int, scale float32) [][]float32 {
	return r.vectors(num, dimensions, func() float32 { return r.rand.Float32() * scale })
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
func (r *RNG) UnitVectors(num int, dimensions int) [][]float32 {
	vecs := r.vectors(num, dimensions, func() float32 { return float32(r.rand.NormFloat64()) })
	for _, vec := range vecs {
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			norm = 1
		}
		simd.ScaleInPlace(vec, float32(1.0/math.Sqrt(norm)))
	}
	return vecs
}

// vectors fills num rows from gen while holding the lock.
func (r *RNG) vectors(num, dimensions int, gen func() float32) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = gen()
		}
		vectors[i] = vec
	}

	return vectors
}

// ZeroRows overwrites the given rows with zero vectors.
func ZeroRows(vectors [][]float32, rows ...int) {
	for _, row := range rows {
		clear(vectors[row])
	}
}

// Cosine64 computes the cosine similarity in float64.
// ok is false if either vector has zero magnitude.
func Cosine64(a, b []float32) (float64, bool) {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

// ReferenceScan is the float64 oracle for the nearest neighbor of vectors[i].
// It returns (-1, -1) when no other vector has a defined similarity.
// Ties resolve to the lower index.
func ReferenceScan(vectors [][]float32, i int) (int, float64) {
	bestIdx, bestScore := -1, -1.0
	for j := range vectors {
		if j == i {
			continue
		}
		sim, ok := Cosine64(vectors[i], vectors[j])
		if !ok {
			continue
		}
		if bestIdx < 0 || sim > bestScore {
			bestIdx, bestScore = j, sim
		}
	}
	return bestIdx, bestScore
}
