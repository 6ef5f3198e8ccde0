// Package distance provides the float32 vector kernels used by the
// nearest-neighbor scan.
//
// All functions dispatch to the kernel selected by internal/simd at
// startup. Accumulation is float32 throughout.
//
// # Usage
//
//	dot := distance.Dot(a, b)
//	mag := distance.Norm(a)
//	sim, ok := distance.Cosine(a, b) // ok is false if either magnitude is zero
package distance
