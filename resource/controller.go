// Package resource bounds what concurrent launches may consume in a host
// process: memory for result buffers, launch concurrency and launch rate.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a single reservation is larger
// than the configured memory limit and can therefore never be granted.
var ErrMemoryLimitExceeded = errors.New("memory request exceeds limit")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentLaunches is the maximum number of launches running at once.
	// If 0, unlimited.
	MaxConcurrentLaunches int64

	// LaunchesPerSecond limits how fast new launches may start.
	// If 0, unlimited.
	LaunchesPerSecond float64
}

// Controller manages process-wide resources shared by launches.
// A nil *Controller is valid and enforces nothing.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	launchSem *semaphore.Weighted // nil if unlimited
	active    atomic.Int64

	launchLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.MaxConcurrentLaunches > 0 {
		c.launchSem = semaphore.NewWeighted(cfg.MaxConcurrentLaunches)
	}

	if cfg.LaunchesPerSecond > 0 {
		burst := max(1, int(cfg.LaunchesPerSecond))
		c.launchLimiter = rate.NewLimiter(rate.Limit(cfg.LaunchesPerSecond), burst)
	}

	return c
}

// Config returns the limits the controller was built with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// A request larger than the limit fails with ErrMemoryLimitExceeded.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return fmt.Errorf("%w: %d bytes requested, limit %d", ErrMemoryLimitExceeded, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireLaunch waits for the launch rate limit and a free launch slot.
func (c *Controller) AcquireLaunch(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if c.launchLimiter != nil {
		if err := c.launchLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	if c.launchSem != nil {
		if err := c.launchSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	c.active.Add(1)
	return nil
}

// TryAcquireLaunch reserves a launch slot without blocking.
// The rate limit is consulted without waiting.
func (c *Controller) TryAcquireLaunch() bool {
	if c == nil {
		return true
	}

	if c.launchLimiter != nil && !c.launchLimiter.Allow() {
		return false
	}

	if c.launchSem != nil && !c.launchSem.TryAcquire(1) {
		return false
	}

	c.active.Add(1)
	return true
}

// ReleaseLaunch releases a launch slot.
func (c *Controller) ReleaseLaunch() {
	if c == nil {
		return
	}

	if c.launchSem != nil {
		c.launchSem.Release(1)
	}
	c.active.Add(-1)
}

// ActiveLaunches returns the number of launches currently holding a slot.
func (c *Controller) ActiveLaunches() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}
