//go:build (!amd64 && !arm64) || noasm

package simd

// No feature detection: always the generic kernel.
func init() {
	activeISA = Generic
	applyISA()
}
