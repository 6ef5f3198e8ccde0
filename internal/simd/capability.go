package simd

import (
	"os"
	"runtime"
	"strings"
)

// ISA identifies the kernel family selected for this process.
type ISA uint8

const (
	// Generic is the single-accumulator scalar kernel.
	Generic ISA = iota
	// Unrolled is the four-accumulator kernel, picked on CPUs with wide
	// vector units (AVX2 on amd64, ASIMD on arm64).
	Unrolled
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// Package-level state, written once by the platform init.
var (
	activeISA   ISA
	hasOverride bool

	hasAVX2  bool // x86-64 AVX2 + FMA
	hasASIMD bool // ARM64 NEON
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("NNSCAN_SIMD"); override != "" {
		if isa, ok := ParseISA(override); ok {
			hasOverride = true
			activeISA = isa
			applyISA()
			return
		}
	}

	activeISA = selectBestISA()
	applyISA()
}

func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "amd64":
		if hasAVX2 {
			return Unrolled
		}
	case "arm64":
		if hasASIMD {
			return Unrolled
		}
	}
	return Generic
}

func applyISA() {
	switch activeISA {
	case Unrolled:
		dotImpl = dotUnrolled
	default:
		dotImpl = dotGeneric
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if NNSCAN_SIMD selected the kernel.
func IsOverridden() bool {
	return hasOverride
}

// HasAVX2 returns true if x86-64 AVX2+FMA is available.
func HasAVX2() bool {
	return hasAVX2
}

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool {
	return hasASIMD
}
