package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/hupe1980/nnscan/internal/lane"
	"github.com/hupe1980/nnscan/internal/simd"
)

func cmdInfo(e *env, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := e.stdout
	fmt.Fprintf(w, "nnscan %s (%s)\n", version, runtime.Version())
	fmt.Fprintf(w, "platform:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "cpus:         %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "kernel:       %s", simd.ActiveISA())
	if simd.IsOverridden() {
		fmt.Fprint(w, " (overridden)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "avx2:         %t\n", simd.HasAVX2())
	fmt.Fprintf(w, "asimd:        %t\n", simd.HasASIMD())
	fmt.Fprintf(w, "lanes:        %d\n", lane.DefaultLanes())
	fmt.Fprintf(w, "chunk size:   %d\n", lane.DefaultChunkSize)
	return nil
}
