package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit.
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_MemoryRequestOverLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 16})

	err := c.AcquireMemory(context.Background(), 36)
	require.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Zero(t, c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(36))

	// Exactly the limit still fits.
	require.NoError(t, c.AcquireMemory(context.Background(), 16))
	assert.Equal(t, int64(16), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), 1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())
	assert.True(t, c.TryAcquireMemory(1))

	c.ReleaseMemory(501)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Launches(t *testing.T) {
	c := NewController(Config{MaxConcurrentLaunches: 2})

	require.NoError(t, c.AcquireLaunch(context.Background()))
	require.NoError(t, c.AcquireLaunch(context.Background()))
	assert.Equal(t, int64(2), c.ActiveLaunches())

	assert.False(t, c.TryAcquireLaunch())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireLaunch(ctx), context.DeadlineExceeded)

	c.ReleaseLaunch()
	assert.True(t, c.TryAcquireLaunch())
	assert.Equal(t, int64(2), c.ActiveLaunches())
}

func TestController_LaunchRate(t *testing.T) {
	c := NewController(Config{LaunchesPerSecond: 1})

	// The burst of one is available immediately.
	assert.True(t, c.TryAcquireLaunch())
	c.ReleaseLaunch()

	// The next token is a second away.
	assert.False(t, c.TryAcquireLaunch())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireLaunch(ctx))
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 10))
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Zero(t, c.MemoryUsage())

	require.NoError(t, c.AcquireLaunch(context.Background()))
	assert.True(t, c.TryAcquireLaunch())
	c.ReleaseLaunch()
	assert.Zero(t, c.ActiveLaunches())
	assert.Equal(t, Config{}, c.Config())
}
