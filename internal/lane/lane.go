// Package lane runs an index range [0, n) as independent chunks on a
// bounded number of goroutines.
//
// Each chunk is one unit of work owned by exactly one goroutine. No state
// is shared between chunks, so fn needs no synchronization as long as it
// only writes the slots in [lo, hi).
package lane

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of indices handed to a lane at once.
const DefaultChunkSize = 256

// PanicError reports a panic recovered from a lane.
type PanicError struct {
	Lo, Hi int
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lane panic in range [%d, %d): %v", e.Lo, e.Hi, e.Value)
}

// DefaultLanes returns the number of lanes used when none is configured.
func DefaultLanes() int {
	return runtime.GOMAXPROCS(0)
}

// Chunks returns how many chunks Run schedules for n indices.
func Chunks(n, chunk int) int {
	if n <= 0 {
		return 0
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	return (n + chunk - 1) / chunk
}

// Run calls fn for consecutive ranges [lo, hi) covering [0, n), with at
// most lanes calls in flight. lanes <= 0 uses DefaultLanes and chunk <= 0
// uses DefaultChunkSize.
//
// The first failure cancels scheduling of the remaining chunks. A
// canceled ctx returns ctx.Err(); a panic in fn returns *PanicError.
func Run(ctx context.Context, n, lanes, chunk int, fn func(lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	if lanes <= 0 {
		lanes = DefaultLanes()
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lanes)

	for lo := 0; lo < n; lo += chunk {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+chunk, n)

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Lo: lo, Hi: hi, Value: r, Stack: debug.Stack()}
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
