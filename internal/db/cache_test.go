package db

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAcquire_ConcurrentCallersShareOneAttempt(t *testing.T) {
	var attempts atomic.Int32
	release := make(chan struct{})
	handle := &DB{}

	cache := NewCache(func(ctx context.Context) (*DB, error) {
		attempts.Add(1)
		<-release
		return handle, nil
	})

	const callers = 16

	var wg sync.WaitGroup
	results := make([]*DB, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Acquire(context.Background())
		}(i)
	}

	// All callers are now either queued on the flight or about to
	// join it; let the single attempt finish.
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), attempts.Load(), "expected exactly one connection attempt")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, handle, results[i])
	}
}

func TestCacheAcquire_ReturnsCachedHandle(t *testing.T) {
	var attempts atomic.Int32
	handle := &DB{}

	cache := NewCache(func(ctx context.Context) (*DB, error) {
		attempts.Add(1)
		return handle, nil
	})

	first, err := cache.Acquire(context.Background())
	require.NoError(t, err)

	second, err := cache.Acquire(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestCacheAcquire_FailureIsNotCached(t *testing.T) {
	var attempts atomic.Int32
	handle := &DB{}
	cause := errors.New("dial refused")

	cache := NewCache(func(ctx context.Context) (*DB, error) {
		if attempts.Add(1) == 1 {
			return nil, cause
		}
		return handle, nil
	})

	_, err := cache.Acquire(context.Background())
	require.Error(t, err)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.ErrorIs(t, err, cause)

	// The failed attempt must not poison the cache: the next caller
	// retries from scratch and succeeds.
	got, err := cache.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, handle, got)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestCacheClose_NeverConnected(t *testing.T) {
	cache := NewCache(func(ctx context.Context) (*DB, error) {
		t.Fatal("opener must not run")
		return nil, nil
	})

	require.NoError(t, cache.Close())
}
