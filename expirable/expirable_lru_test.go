package expirable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock drives the cache's notion of now without sleeping.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestLRU[K comparable, V any](capacity int, onEvict EvictCallback[K, V], ttl time.Duration) (*LRU[K, V], *fakeClock) {
	c := NewLRU(capacity, onEvict, ttl)
	clk := &fakeClock{now: time.Unix(1000000, 0)}
	c.timeNow = clk.Now
	return c, clk
}

func TestExpirableLRU(t *testing.T) {
	evictCounter := 0
	c, _ := newTestLRU(2, func(k string, v int) { evictCounter++ }, time.Minute)

	require.False(t, c.Add("a", 1))
	require.False(t, c.Add("b", 2))
	require.True(t, c.Add("c", 3), "capacity overflow should evict")
	require.Equal(t, 1, evictCounter)
	require.Equal(t, 2, c.Len())

	_, ok := c.Get("a")
	require.False(t, ok, "a was the oldest")

	v, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestExpirableExpiry(t *testing.T) {
	evictCounter := 0
	c, clk := newTestLRU(8, func(k string, v int) { evictCounter++ }, time.Minute)

	c.Add("a", 1)
	clk.advance(30 * time.Second)
	c.Add("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok, "not expired yet")
	require.Equal(t, 1, v)

	clk.advance(45 * time.Second)

	// "a" is now 75s old and expired; the Get drops it.
	_, ok = c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())
	require.Equal(t, 1, evictCounter)

	// "b" is 45s old and still live.
	_, ok = c.Get("b")
	require.True(t, ok)

	// Peek sees expiry too but leaves the entry in place.
	clk.advance(time.Hour)
	_, ok = c.Peek("b")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.DeleteExpired()
	require.Equal(t, 0, c.Len())
	require.Equal(t, 2, evictCounter)
}

func TestExpirableWriteResetsDeadline(t *testing.T) {
	c, clk := newTestLRU[string, int](4, nil, time.Minute)

	c.Add("a", 1)
	clk.advance(45 * time.Second)
	c.Add("a", 2) // rewrite pushes the deadline out
	clk.advance(45 * time.Second)

	v, ok := c.Get("a")
	require.True(t, ok, "deadline should measure from the last write")
	require.Equal(t, 2, v)
}

func TestExpirableNoTTL(t *testing.T) {
	c, clk := newTestLRU[int, int](4, nil, 0)

	c.Add(1, 1)
	clk.advance(24 * time.Hour * 365)
	v, ok := c.Get(1)
	require.True(t, ok, "zero ttl means no expiry")
	require.Equal(t, 1, v)
}

func TestExpirableUnboundedCapacity(t *testing.T) {
	c, _ := newTestLRU[int, int](0, nil, time.Minute)

	for i := 0; i < 1000; i++ {
		require.False(t, c.Add(i, i), "unbounded cache never evicts on add")
	}
	require.Equal(t, 1000, c.Len())
}

func TestExpirableKeysOrder(t *testing.T) {
	c, _ := newTestLRU[int, int](4, nil, time.Minute)

	c.Add(1, 1)
	c.Add(2, 2)
	c.Add(3, 3)
	c.Get(1) // promote

	require.Equal(t, []int{2, 3, 1}, c.Keys())
	require.Equal(t, []int{2, 3, 1}, c.Values())

	k, v, ok := c.GetOldest()
	require.True(t, ok)
	require.Equal(t, 2, k)
	require.Equal(t, 2, v)

	k, _, ok = c.RemoveOldest()
	require.True(t, ok)
	require.Equal(t, 2, k)
	require.Equal(t, 2, c.Len())
}

func TestExpirableRemoveAndPurge(t *testing.T) {
	evictCounter := 0
	c, _ := newTestLRU(4, func(k int, v int) { evictCounter++ }, time.Minute)

	c.Add(1, 1)
	c.Add(2, 2)
	require.True(t, c.Remove(1))
	require.False(t, c.Remove(1))
	require.Equal(t, 1, evictCounter)

	c.Purge()
	require.Equal(t, 0, c.Len())
	require.Equal(t, 2, evictCounter)
}

func TestExpirablePurgeGoroutine(t *testing.T) {
	c := NewWithPurge[string, int](0, nil, 50*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Add("a", 1)
	require.Equal(t, 1, c.Len())

	// Untouched entries are removed by the background scan, not just on access.
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestExpirableCloseIdempotent(t *testing.T) {
	c := NewWithPurge[string, int](4, nil, time.Minute, time.Minute)
	c.Close()
	c.Close()

	// Close without a purge goroutine is a no-op.
	c2 := NewLRU[string, int](4, nil, time.Minute)
	c2.Close()
	c2.Close()
}
