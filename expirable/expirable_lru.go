// Package expirable provides a thread-safe LRU cache whose entries also
// expire a fixed duration after their last write.
package expirable

import (
	"sync"
	"time"

	"github.com/cachetools/lru/internal"
)

// noEvictionTTL - very long ttl used when the caller asked for no expiry
const noEvictionTTL = time.Hour * 24 * 365 * 10

// defaultPurgeEvery bounds memory growth for write-once keys that are
// never read again; lazy expiration alone would keep them forever.
const defaultPurgeEvery = time.Minute * 5

// EvictCallback is used to get a callback when a cache entry is evicted.
// It runs with the cache lock held and must not call back into the cache.
type EvictCallback[K comparable, V any] func(key K, value V)

// LRU implements a thread-safe fixed capacity LRU cache with expirable
// entries. An entry's deadline is reset on every write, not on reads.
type LRU[K comparable, V any] struct {
	capacity  int
	evictList *internal.List[K, V]
	items     map[K]*internal.Entry[K, V]
	onEvict   EvictCallback[K, V]
	ttl       time.Duration

	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once

	// timeNow stands in for time.Now so tests can drive the clock.
	timeNow func() time.Time
}

// NewLRU constructs an expirable cache. Capacity of zero (or negative)
// means unlimited size, turning the LRU bound off. A ttl of zero or less
// turns expiring off. No purge goroutine is started; expired entries are
// only dropped when touched by Get or when DeleteExpired is called.
func NewLRU[K comparable, V any](capacity int, onEvict EvictCallback[K, V], ttl time.Duration) *LRU[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if ttl <= 0 {
		ttl = noEvictionTTL
	}
	return &LRU[K, V]{
		capacity:  capacity,
		evictList: internal.NewList[K, V](),
		items:     make(map[K]*internal.Entry[K, V]),
		onEvict:   onEvict,
		ttl:       ttl,
		timeNow:   time.Now,
	}
}

// NewWithPurge is NewLRU plus a background goroutine that scans for
// expired entries every purgeEvery (default 5 minutes when zero or less).
// Callers must Close the cache to stop the goroutine.
func NewWithPurge[K comparable, V any](capacity int, onEvict EvictCallback[K, V], ttl, purgeEvery time.Duration) *LRU[K, V] {
	c := NewLRU(capacity, onEvict, ttl)
	if c.ttl == noEvictionTTL {
		return c
	}
	if purgeEvery <= 0 {
		purgeEvery = defaultPurgeEvery
	}
	c.done = make(chan struct{})
	go func(done <-chan struct{}) {
		ticker := time.NewTicker(purgeEvery)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				c.mu.Lock()
				c.deleteExpired()
				c.mu.Unlock()
			}
		}
	}(c.done)
	return c
}

// Close stops the purge goroutine, if any. Safe to call more than once.
func (c *LRU[K, V]) Close() {
	c.closeOnce.Do(func() {
		if c.done != nil {
			close(c.done)
		}
	})
}

// Add adds a value to the cache, resetting the key's deadline. Returns
// true if the insertion pushed out the oldest entry.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.timeNow()

	// Check for existing item
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value = value
		ent.ExpiresAt = now.Add(c.ttl)
		return false
	}

	// Add new item
	c.items[key] = c.evictList.PushFrontExpirable(key, value, now.Add(c.ttl))

	// Verify capacity not exceeded
	if c.capacity > 0 && len(c.items) > c.capacity {
		c.removeOldest()
		return true
	}
	return false
}

// Get looks up a key's value from the cache, updating its recent-ness.
// An expired entry is a miss and is dropped on the spot.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, found := c.items[key]; found {
		if c.timeNow().After(ent.ExpiresAt) {
			c.removeElement(ent)
			return
		}
		c.evictList.MoveToFront(ent)
		return ent.Value, true
	}
	return
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *LRU[K, V]) Contains(key K) (ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok = c.items[key]
	return ok
}

// Peek returns the key value without updating the "recently used"-ness of
// the key. An expired entry is a miss but is left for the purge scan.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, found := c.items[key]; found {
		if c.timeNow().After(ent.ExpiresAt) {
			return
		}
		return ent.Value, true
	}
	return
}

// Remove removes the provided key from the cache, returning if the key
// was contained.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
		return true
	}
	return false
}

// RemoveOldest removes the oldest item from the cache.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent := c.evictList.Back(); ent != nil {
		c.removeElement(ent)
		return ent.Key, ent.Value, true
	}
	return
}

// GetOldest returns the oldest entry without removing it.
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent := c.evictList.Back(); ent != nil {
		return ent.Key, ent.Value, true
	}
	return
}

// Keys returns a slice of the keys in the cache, from oldest to newest.
// Expired entries that have not been purged yet are included.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys()
}

// Values returns a slice of the values in the cache, from oldest to newest.
func (c *LRU[K, V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()
	values := make([]V, 0, len(c.items))
	for ent := c.evictList.Back(); ent != nil; ent = ent.PrevEntry() {
		values = append(values, ent.Value)
	}
	return values
}

// Len returns the number of items in the cache, counting entries that
// have expired but not yet been dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Length()
}

// Purge clears the cache completely.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.items {
		if c.onEvict != nil {
			c.onEvict(k, v.Value)
		}
		delete(c.items, k)
	}
	c.evictList.Init()
}

// DeleteExpired drops every expired entry, the same scan the purge
// goroutine runs on its ticker.
func (c *LRU[K, V]) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteExpired()
}

// deleteExpired deletes expired records. Has to be called with lock!
func (c *LRU[K, V]) deleteExpired() {
	now := c.timeNow()
	for _, key := range c.keys() {
		if ent := c.items[key]; now.After(ent.ExpiresAt) {
			c.removeElement(ent)
		}
	}
}

// keys returns cache keys oldest to newest. Has to be called with lock!
func (c *LRU[K, V]) keys() []K {
	keys := make([]K, 0, len(c.items))
	for ent := c.evictList.Back(); ent != nil; ent = ent.PrevEntry() {
		keys = append(keys, ent.Key)
	}
	return keys
}

// removeOldest removes the oldest item from the cache. Has to be called with lock!
func (c *LRU[K, V]) removeOldest() {
	if ent := c.evictList.Back(); ent != nil {
		c.removeElement(ent)
	}
}

// removeElement removes a given list entry from the cache. Has to be called with lock!
func (c *LRU[K, V]) removeElement(e *internal.Entry[K, V]) {
	c.evictList.Remove(e)
	delete(c.items, e.Key)
	if c.onEvict != nil {
		c.onEvict(e.Key, e.Value)
	}
}
