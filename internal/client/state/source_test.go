package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = RetryPolicy{MaxRetries: 2, Backoff: time.Millisecond}

func TestSource_CachesAfterFirstLoad(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, fastPolicy)

	assert.False(t, src.Loaded())
	for i := 0; i < 3; i++ {
		v, err := src.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.True(t, src.Loaded())
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_ConcurrentGetSharesLoad(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "ok", nil
	}, fastPolicy)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := src.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "ok", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_RetriesUnavailable(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (int, error) {
		if calls.Add(1) < 3 {
			return 0, fmt.Errorf("%w: connection refused", client.ErrUnavailable)
		}
		return 42, nil
	}, fastPolicy)

	v, err := src.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSource_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, client.ErrUnavailable
	}, fastPolicy)

	_, err := src.Get(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
	assert.False(t, src.Loaded())
}

func TestSource_DoesNotRetryOtherErrors(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, client.ErrUnauthorized
	}, fastPolicy)

	_, err := src.Get(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_Fallback(t *testing.T) {
	t.Run("used when unavailable", func(t *testing.T) {
		src := NewSource(func(ctx context.Context) (int, error) {
			return 0, client.ErrUnavailable
		}, fastPolicy).WithFallback(func(ctx context.Context) (int, bool, error) {
			return 7, true, nil
		})

		v, err := src.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		assert.True(t, src.Stale())
	})

	t.Run("empty fallback keeps the error", func(t *testing.T) {
		src := NewSource(func(ctx context.Context) (int, error) {
			return 0, client.ErrUnavailable
		}, fastPolicy).WithFallback(func(ctx context.Context) (int, bool, error) {
			return 0, false, nil
		})

		_, err := src.Get(context.Background())
		require.ErrorIs(t, err, client.ErrUnavailable)
	})

	t.Run("not used for other errors", func(t *testing.T) {
		src := NewSource(func(ctx context.Context) (int, error) {
			return 0, client.ErrNotFound
		}, fastPolicy).WithFallback(func(ctx context.Context) (int, bool, error) {
			t.Fatal("fallback must not run")
			return 0, false, nil
		})

		_, err := src.Get(context.Background())
		require.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("fallback error surfaces", func(t *testing.T) {
		boom := errors.New("disk")
		src := NewSource(func(ctx context.Context) (int, error) {
			return 0, client.ErrUnavailable
		}, fastPolicy).WithFallback(func(ctx context.Context) (int, bool, error) {
			return 0, false, boom
		})

		_, err := src.Get(context.Background())
		require.ErrorIs(t, err, boom)
	})
}

func TestSource_SetAndInvalidate(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)) * 10, nil
	}, fastPolicy)

	src.Set(5)
	v, err := src.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, int32(0), calls.Load())

	src.Invalidate()
	assert.False(t, src.Loaded())

	v, err = src.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}
