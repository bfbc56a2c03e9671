package lru

// Stats is a point-in-time snapshot of cache effectiveness counters.
//
// Hits and Misses count Get lookups only; Peek and Contains leave the
// counters alone, the same way they leave recency alone. Evictions counts
// entries displaced by capacity pressure (Add overflow and Resize), not
// explicit Remove or Purge calls.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cache counters. The fields are mutated
// under the cache lock, so the snapshot is internally consistent.
func (c *Cache[K, V]) Stats() Stats {
	c.lock.RLock()
	s := c.stats
	c.lock.RUnlock()
	return s
}
