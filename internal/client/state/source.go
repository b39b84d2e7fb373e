package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/client/client"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how a Source retries unavailable-server errors.
type RetryPolicy struct {
	MaxRetries uint64
	Backoff    time.Duration
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.Backoff
	if base <= 0 {
		base = time.Millisecond
	}
	return retry.WithMaxRetries(p.MaxRetries, retry.NewExponential(base))
}

type LoadFunc[T any] func(ctx context.Context) (T, error)

// FallbackFunc returns a locally cached value; ok is false when none exists.
type FallbackFunc[T any] func(ctx context.Context) (value T, ok bool, err error)

// Source caches one remotely loaded value. It is safe for concurrent use;
// concurrent Get calls share a single load.
type Source[T any] struct {
	mu       sync.Mutex
	load     LoadFunc[T]
	fallback FallbackFunc[T]
	policy   RetryPolicy

	value  T
	loaded bool
	stale  bool
}

func NewSource[T any](load LoadFunc[T], policy RetryPolicy) *Source[T] {
	return &Source[T]{load: load, policy: policy}
}

// WithFallback sets the loader used once retries are exhausted.
func (s *Source[T]) WithFallback(fn FallbackFunc[T]) *Source[T] {
	s.fallback = fn
	return s
}

// Get returns the cached value, loading it first if needed.
func (s *Source[T]) Get(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.value, nil
	}

	var value T
	err := retry.Do(ctx, s.policy.backoff(), func(ctx context.Context) error {
		v, err := s.load(ctx)
		if err != nil {
			if errors.Is(err, client.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		value = v
		return nil
	})

	if err != nil && errors.Is(err, client.ErrUnavailable) && s.fallback != nil {
		v, ok, ferr := s.fallback(ctx)
		if ferr != nil {
			return value, ferr
		}
		if ok {
			s.value, s.loaded, s.stale = v, true, true
			return v, nil
		}
	}
	if err != nil {
		return value, err
	}

	s.value, s.loaded, s.stale = value, true, false
	return value, nil
}

// Set replaces the cached value, e.g. with a user returned by a mutation.
func (s *Source[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.loaded, s.stale = v, true, false
}

// Invalidate drops the cached value so the next Get reloads it.
func (s *Source[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value, s.loaded, s.stale = zero, false, false
}

func (s *Source[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Stale reports whether the cached value came from the local fallback.
func (s *Source[T]) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}
