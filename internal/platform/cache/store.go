// Package cache is an in-process TTL cache for read-heavy query results.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/crickstat/xfactor/internal/platform/resilience"
)

type item struct {
	value    any
	deadline time.Time
}

// expired reports whether the item is past its deadline. A zero deadline
// never expires.
func (it item) expired(now time.Time) bool {
	return !it.deadline.IsZero() && !it.deadline.After(now)
}

// Store maps string keys to arbitrary values with one shared TTL.
// Expired items are evicted lazily on read, and concurrent loads for the
// same key collapse into a single loader call.
type Store struct {
	mu     sync.RWMutex
	items  map[string]item
	ttl    time.Duration
	flight resilience.SingleFlight
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, false
	case it.expired(time.Now()):
		s.mu.Lock()
		// Re-check: a Set may have replaced the item since the read lock.
		if cur, ok := s.items[key]; ok && cur.expired(time.Now()) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	default:
		return it.value, true
	}
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key under a namespace, such as the ranked
// listings for one format.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, invoking loader on a miss
// and caching its result. An empty key bypasses the cache entirely.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A concurrent call may have filled the key while we waited.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
