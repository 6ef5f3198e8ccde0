package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/nnscan"
	"github.com/hupe1980/nnscan/blobstore"
	"github.com/hupe1980/nnscan/blobstore/minio"
	"github.com/hupe1980/nnscan/blobstore/s3"
	"github.com/hupe1980/nnscan/internal/config"
	"github.com/hupe1980/nnscan/resource"
)

func openStore(ctx context.Context, cfg config.StorageConfig) (blobstore.Store, error) {
	switch cfg.Backend {
	case "local":
		return blobstore.NewLocalStore(cfg.Root), nil
	case "s3":
		opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
		}
		if cfg.AccessKey != "" {
			opts = append(opts, s3.WithStaticCredentials(cfg.AccessKey, cfg.SecretKey))
		}
		return s3.New(ctx, cfg.Bucket, opts...)
	case "minio":
		return minio.Dial(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.UseSSL, cfg.Bucket, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) (*nnscan.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Format == "json" {
		return nnscan.NewJSONLogger(w, level), nil
	}
	return nnscan.NewTextLogger(w, level), nil
}

// newController returns nil when no limit is configured.
func newController(cfg config.LimitsConfig) *resource.Controller {
	if cfg == (config.LimitsConfig{}) {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:      cfg.MemoryLimitBytes,
		MaxConcurrentLaunches: cfg.MaxConcurrentLaunches,
		LaunchesPerSecond:     cfg.LaunchesPerSecond,
	})
}

// setup loads the configuration and builds the logger and store.
func (e *env) setup(ctx context.Context) (*config.Config, *nnscan.Logger, blobstore.Store, error) {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(cfg.Log, e.stderr)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}

	logger.Debug("storage ready", slog.String("backend", cfg.Storage.Backend))
	return cfg, logger, store, nil
}
