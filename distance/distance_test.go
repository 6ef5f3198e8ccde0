package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
		{"Large", make([]float32, 1024), make([]float32, 1024), 0},
	}

	for i := range tests[5].a {
		tests[5].a[i] = 1
		tests[5].b[i] = 1
	}
	tests[5].expected = 1024

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-5)
		})
	}
}

func TestNorm(t *testing.T) {
	assert.Equal(t, float32(5), Norm([]float32{3, 4}))
	assert.Equal(t, float32(25), SquaredNorm([]float32{3, 4}))
	assert.Equal(t, float32(0), Norm([]float32{0, 0, 0, 0}))
	assert.Equal(t, float32(2), Norm([]float32{-2, 0}))
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
		ok   bool
	}{
		{"Parallel", []float32{1, 0}, []float32{2, 0}, 1, true},
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 0, true},
		{"Opposite", []float32{1, 0}, []float32{-1, 0}, -1, true},
		{"ZeroLeft", []float32{0, 0}, []float32{1, 0}, 0, false},
		{"ZeroRight", []float32{1, 0}, []float32{0, 0}, 0, false},
		{"BothZero", []float32{0, 0}, []float32{0, 0}, 0, false},
		{"Float4", []float32{5, 1, 0, 6}, []float32{7, 2, 1, 8}, 0.99376, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Cosine(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}
}

func TestCosineFromDot(t *testing.T) {
	t.Run("NegativeZeroDenominator", func(t *testing.T) {
		_, ok := CosineFromDot(1, float32(math.Copysign(0, -1)))
		assert.False(t, ok)
	})

	t.Run("NaN", func(t *testing.T) {
		inf := float32(math.Inf(1))
		_, ok := CosineFromDot(inf, inf)
		assert.False(t, ok)
	})

	t.Run("Unclamped", func(t *testing.T) {
		// Rounding noise above 1 is passed through unchanged.
		sim, ok := CosineFromDot(1.0000001, 1)
		assert.True(t, ok)
		assert.Equal(t, float32(1.0000001), sim)
	})
}

func TestCosineOverflowIsUndefined(t *testing.T) {
	big := []float32{1e30, 1e30}
	_, ok := Cosine(big, big)
	assert.False(t, ok)
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, float32(0.6), v[0], 1e-5)
		assert.InDelta(t, float32(0.8), v[1], 1e-5)

		assert.InDelta(t, float32(1.0), float32(math.Sqrt(float64(v[0]*v[0]+v[1]*v[1]))), 1e-5)

		assert.False(t, NormalizeL2InPlace([]float32{0, 0}))
		assert.False(t, NormalizeL2InPlace([]float32{}))
	})

	t.Run("Copy", func(t *testing.T) {
		v := []float32{1, 0}
		dst, ok := NormalizeL2Copy(v)
		assert.True(t, ok)
		assert.Equal(t, float32(1), dst[0])
		assert.NotSame(t, &v[0], &dst[0])

		dst, ok = NormalizeL2Copy([]float32{0, 0})
		assert.False(t, ok)
		assert.Nil(t, dst)
	})
}
