package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/workerpool"
)

func TestPool_RunsEveryTask(t *testing.T) {
	pool := workerpool.New(context.Background(), 4)

	const n = 100
	var count atomic.Int64
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Submit(func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Wait())
	assert.Equal(t, int64(n), count.Load())
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 3
	pool := workerpool.New(context.Background(), size)

	var running, peak atomic.Int64
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(func(context.Context) error {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		}))
	}

	require.NoError(t, pool.Wait())
	assert.LessOrEqual(t, peak.Load(), int64(size))
}

func TestPool_ReturnsTaskErrors(t *testing.T) {
	pool := workerpool.New(context.Background(), 1)
	boom := errors.New("boom")

	require.NoError(t, pool.Submit(func(context.Context) error { return boom }))

	assert.ErrorIs(t, pool.Wait(), boom)
}

func TestPool_PanicBecomesError(t *testing.T) {
	pool := workerpool.New(context.Background(), 2)

	require.NoError(t, pool.Submit(func(context.Context) error { panic("bad task") }))

	err := pool.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad task")
}

func TestPool_SubmitAfterWait(t *testing.T) {
	pool := workerpool.New(context.Background(), 1)
	require.NoError(t, pool.Wait())

	err := pool.Submit(func(context.Context) error { return nil })
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
	assert.NoError(t, pool.Wait())
}
