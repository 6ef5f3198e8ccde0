package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/nnscan"
	"github.com/hupe1980/nnscan/codec"
	"github.com/hupe1980/nnscan/testutil"
)

func cmdGen(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	out := fs.String("out", "", "Batch to write (.nnsb, .json or .yaml)")
	n := fs.Int("n", 100000, "Number of vectors")
	dim := fs.Int("dim", 4, "Vector dimension")
	seed := fs.Int64("seed", time.Now().UnixNano(), "Random seed")
	scale := fs.Float64("scale", 10, "Components are uniform in [0, scale)")
	compression := fs.String("compression", "lz4", "Binary payload compression: none|lz4|zstd")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("gen: -out is required")
	}

	comp, err := codec.ParseCompression(*compression)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	_, logger, store, err := e.setup(ctx)
	if err != nil {
		return err
	}

	if *n <= 0 {
		return nnscan.ErrEmptyBatch
	}
	if *dim <= 0 {
		return &nnscan.ErrInvalidDimension{Dimension: *dim}
	}

	batch, err := nnscan.NewBatch(testutil.NewRNG(*seed).ScaledVectors(*n, *dim, float32(*scale)))
	if err != nil {
		return err
	}

	data, err := encodeBatch(*out, batch, comp)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	if err := store.Put(ctx, *out, data); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}

	logger.Info("batch written",
		slog.String("output", *out),
		slog.Int("count", *n),
		slog.Int("dimension", *dim),
		slog.Int64("seed", *seed),
		slog.Int("bytes", len(data)),
	)
	return nil
}

func encodeBatch(name string, b *nnscan.Batch, comp codec.Compression) ([]byte, error) {
	if c, ok := codec.ForPath(name); ok {
		return c.Marshal(codec.NewBatchDocument(b))
	}
	return codec.EncodeBatch(b, comp)
}
