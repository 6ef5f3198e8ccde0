package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/nnscan"
	"github.com/hupe1980/nnscan/codec"
)

const batchExt = ".nnsb"

func cmdScan(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	in := fs.String("in", "", "Batch to scan (.nnsb, .json, .yaml)")
	out := fs.String("out", "", "Result document to write (empty prints to stdout)")
	format := fs.String("format", "", "Result format: json|yaml (default: from -out extension)")
	lanes := fs.Int("lanes", -1, "Lanes to scan on (default: from config)")
	chunk := fs.Int("chunk", -1, "Indices per lane work unit (default: from config)")
	noProgress := fs.Bool("no-progress", false, "Disable the progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("scan: -in is required")
	}

	cfg, logger, store, err := e.setup(ctx)
	if err != nil {
		return err
	}

	var resultCodec codec.Codec
	if *out != "" {
		var ok bool
		if *format != "" {
			resultCodec, ok = codec.ByName(*format)
		} else {
			resultCodec, ok = codec.ForPath(*out)
		}
		if !ok {
			return fmt.Errorf("scan: cannot choose a result format for %q (use -format json|yaml)", *out)
		}
	}

	data, err := store.Get(ctx, *in)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	batch, err := decodeBatch(*in, data)
	if err != nil {
		return fmt.Errorf("decode batch %s: %w", *in, err)
	}

	if *lanes < 0 {
		*lanes = cfg.Scan.Lanes
	}
	if *chunk < 0 {
		*chunk = cfg.Scan.ChunkSize
	}

	metrics := &nnscan.BasicMetricsCollector{}
	opts := []nnscan.Option{
		nnscan.WithLanes(*lanes),
		nnscan.WithChunkSize(*chunk),
		nnscan.WithLogger(logger),
		nnscan.WithMetricsCollector(metrics),
		nnscan.WithResourceController(newController(cfg.Limits)),
	}
	if !*noProgress && progressEnabled(e.stderr) {
		opts = append(opts, nnscan.WithProgress(newScanProgress(e.stderr)))
	}

	launcher := nnscan.NewLauncher(opts...)

	start := time.Now()
	res, err := launcher.ScanAll(ctx, batch)
	if err != nil {
		return err
	}
	defer res.Release()
	elapsed := time.Since(start)

	if *out == "" {
		for i, m := range res.Matches() {
			fmt.Fprintf(e.stdout, "Most similar match for input %d is %d with a similarity of %v\n", i, m.Index, m.Score)
		}
	} else {
		doc, err := resultCodec.Marshal(codec.NewResultDocument(res))
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := store.Put(ctx, *out, doc); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	logger.Info("scan completed",
		slog.String("input", *in),
		slog.Int("count", batch.Len()),
		slog.Int("dimension", batch.Dim()),
		slog.Uint64("degenerate", batch.Degenerate().GetCardinality()),
		slog.Uint64("unmatched", res.Unmatched().GetCardinality()),
		slog.Int("lanes", launcher.Lanes()),
		slog.Duration("duration", elapsed),
		slog.Int64("launches", metrics.GetStats().LaunchCount),
	)

	return nil
}

func decodeBatch(name string, data []byte) (*nnscan.Batch, error) {
	if strings.EqualFold(path.Ext(name), batchExt) {
		return codec.DecodeBatch(data)
	}

	c, ok := codec.ForPath(name)
	if !ok {
		return nil, fmt.Errorf("unknown batch format %q", path.Ext(name))
	}

	var doc codec.BatchDocument
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Batch()
}
