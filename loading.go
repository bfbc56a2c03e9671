package lru

import (
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrNoLoader is returned by GetOrLoad when the cache was constructed
// without a loader.
var ErrNoLoader = errors.New("no loader configured")

// Loader fetches the value for a key on a cache miss.
type Loader[K comparable, V any] func(key K) (V, error)

// LoadingCache couples a Cache with a loader and collapses concurrent
// misses on the same key into a single loader call. A successful load is
// added to the cache; a failed load caches nothing and hands the error to
// every waiting caller.
type LoadingCache[K comparable, V any] struct {
	*Cache[K, V]
	loader Loader[K, V]
	group  singleflight.Group

	// singleflight keys on strings, and no string rendering of an
	// arbitrary comparable K is injective. Each key in flight therefore
	// holds a unique token; callers that find an existing token join
	// that flight, callers for any other key never can.
	mu      sync.Mutex
	flights map[K]string
	nextID  uint64
}

// NewLoading creates a LoadingCache of the given capacity. The loader may
// be nil, in which case GetOrLoad fails with ErrNoLoader.
func NewLoading[K comparable, V any](capacity int, loader Loader[K, V]) (*LoadingCache[K, V], error) {
	c, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &LoadingCache[K, V]{Cache: c, loader: loader, flights: make(map[K]string)}, nil
}

// NewLoadingWithEvict is NewLoading with an eviction callback on the
// underlying cache.
func NewLoadingWithEvict[K comparable, V any](capacity int, loader Loader[K, V], onEvicted func(key K, value V)) (*LoadingCache[K, V], error) {
	c, err := NewWithEvict[K, V](capacity, onEvicted)
	if err != nil {
		return nil, err
	}
	return &LoadingCache[K, V]{Cache: c, loader: loader, flights: make(map[K]string)}, nil
}

// GetOrLoad returns the cached value for key, loading and caching it on a
// miss. Callers that miss while a load for the same key is in flight block
// and share its result.
func (c *LoadingCache[K, V]) GetOrLoad(key K) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	if c.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	token := c.flightToken(key)
	v, err, _ := c.group.Do(token, func() (any, error) {
		// Re-check under the flight: another caller may have finished a
		// load between our miss and entering the group.
		if value, ok := c.Get(key); ok {
			return value, nil
		}
		value, err := c.loader(key)
		if err != nil {
			return nil, err
		}
		c.Add(key, value)
		return value, nil
	})
	c.releaseFlight(key, token)
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// flightToken returns the token of the in-flight load for key, minting a
// fresh one when none is active.
func (c *LoadingCache[K, V]) flightToken(key K) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, ok := c.flights[key]
	if !ok {
		c.nextID++
		token = strconv.FormatUint(c.nextID, 10)
		c.flights[key] = token
	}
	return token
}

// releaseFlight retires the token once its flight has returned. The token
// comparison keeps a late release from dropping a newer flight for the
// same key.
func (c *LoadingCache[K, V]) releaseFlight(key K, token string) {
	c.mu.Lock()
	if c.flights[key] == token {
		delete(c.flights, key)
	}
	c.mu.Unlock()
}
