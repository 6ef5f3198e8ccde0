package nnscan

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/hupe1980/nnscan/internal/lane"
)

// bytesPerSlot is the memory of one (index, score) result pair.
const bytesPerSlot = bits.UintSize/8 + 4

// Launcher runs Scan for every index of a batch on a bounded set of lanes.
// A Launcher is safe for concurrent use.
type Launcher struct {
	opts options
}

// NewLauncher creates a Launcher.
func NewLauncher(optFns ...Option) *Launcher {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Launcher{opts: opts}
}

// Lanes returns the configured lane count.
func (l *Launcher) Lanes() int { return l.opts.lanes }

// ChunkSize returns the configured chunk size.
func (l *Launcher) ChunkSize() int { return l.opts.chunkSize }

// ScanAll allocates the output arrays and fills them.
//
// When a resource controller is configured, the output memory is accounted
// against it until Result.Release is called.
func (l *Launcher) ScanAll(ctx context.Context, b *Batch) (*Result, error) {
	if b == nil {
		return nil, ErrEmptyBatch
	}

	rc := l.opts.controller
	bytes := int64(b.Len()) * bytesPerSlot
	if err := rc.AcquireMemory(ctx, bytes); err != nil {
		return nil, fmt.Errorf("%w: reserve output memory: %w", ErrLaunchAborted, err)
	}

	res := &Result{
		MostSimilarIndex: make([]int, b.Len()),
		MostSimilarScore: make([]float32, b.Len()),
		release:          func() { rc.ReleaseMemory(bytes) },
	}

	if err := l.ScanInto(ctx, b, res.MostSimilarIndex, res.MostSimilarScore); err != nil {
		res.Release()
		return nil, err
	}

	return res, nil
}

// ScanInto scans every index of b, writing the best match of index i into
// mostSimilarIndex[i] and mostSimilarScore[i]. Both slices must have length
// b.Len().
//
// The launch either completes for every index or fails as a whole; after an
// error the contents of the output slices are unspecified.
func (l *Launcher) ScanInto(ctx context.Context, b *Batch, mostSimilarIndex []int, mostSimilarScore []float32) error {
	if b == nil {
		return ErrEmptyBatch
	}
	n := b.Len()
	if len(mostSimilarIndex) != n {
		return &ErrOutputSize{Name: "mostSimilarIndex", Expected: n, Actual: len(mostSimilarIndex)}
	}
	if len(mostSimilarScore) != n {
		return &ErrOutputSize{Name: "mostSimilarScore", Expected: n, Actual: len(mostSimilarScore)}
	}

	o := &l.opts
	lanes := min(o.lanes, lane.Chunks(n, o.chunkSize))

	if err := o.controller.AcquireLaunch(ctx); err != nil {
		return fmt.Errorf("%w: acquire launch slot: %w", ErrLaunchAborted, err)
	}
	defer o.controller.ReleaseLaunch()

	start := time.Now()
	o.progress.Start(n)

	err := lane.Run(ctx, n, lanes, o.chunkSize, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			m := o.kernel(b, i)
			mostSimilarIndex[i] = m.Index
			mostSimilarScore[i] = m.Score
		}
		o.progress.Add(hi - lo)
	})

	o.progress.Finish()
	err = translateLaneError(err)
	duration := time.Since(start)

	unmatched := 0
	if err == nil {
		unmatched = countUnmatched(mostSimilarIndex)
		o.metricsCollector.RecordUnmatched(unmatched)
	}
	o.metricsCollector.RecordLaunch(n, lanes, duration, err)
	o.logger.WithDimension(b.Dim()).LogLaunch(ctx, n, lanes, unmatched, duration, err)

	return err
}

func translateLaneError(err error) error {
	if err == nil {
		return nil
	}

	var pe *lane.PanicError
	if errors.As(err, &pe) {
		return &ErrLaneFailed{Lo: pe.Lo, Hi: pe.Hi, Value: pe.Value, cause: err}
	}

	return fmt.Errorf("%w: %w", ErrLaunchAborted, err)
}
