// Package simd provides the float32 kernels behind the distance package.
//
// # Kernels
//
//   - Generic: one accumulator, components summed in index order.
//   - Unrolled: four independent accumulators, folded pairwise at the end.
//
// Runtime CPU feature detection selects the kernel once at init. On amd64
// and arm64, set NNSCAN_SIMD=generic or NNSCAN_SIMD=unrolled to force one.
// Build with -tags noasm to force the generic kernel.
//
// The selected kernel never changes during the lifetime of a process, so
// repeated scans over the same batch produce bit-identical scores.
package simd
