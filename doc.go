// Package lru provides a generic fixed-capacity cache with least-recently-used
// eviction.
//
// Cache is the thread-safe type most callers want: every operation is
// serialized behind a single lock, and eviction callbacks run outside the
// critical section so they may re-enter the cache. The unlocked core lives
// in the simplelru subpackage for callers that manage their own
// synchronization.
//
// LoadingCache layers miss coalescing on top of Cache: concurrent lookups
// of an absent key share a single loader call.
//
// The expirable subpackage holds a variant whose entries also expire a
// fixed duration after their last write.
package lru
