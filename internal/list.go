package internal

import "time"

// Entry is a node in a recency-ordered List. Key and Value belong to the
// cache holding the entry; the link pointers belong to the list.
type Entry[K comparable, V any] struct {
	next, prev *Entry[K, V]

	// list the entry belongs to, nil once removed.
	list *List[K, V]

	Key   K
	Value V

	// ExpiresAt is used by the expirable cache. The plain bounded cache
	// leaves it at the zero value.
	ExpiresAt time.Time
}

// PrevEntry returns the next newer entry, or nil at the front of the
// list. Walking from Back through PrevEntry visits entries oldest to
// newest.
func (e *Entry[K, V]) PrevEntry() *Entry[K, V] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// List holds cache entries in recency order, most recently used at the
// front. The root sentinel joins both ends, so insertion, removal and
// reordering never branch on empty or single-entry lists and stay O(1)
// given the entry.
type List[K comparable, V any] struct {
	root Entry[K, V]
	len  int
}

// NewList returns an initialized empty list.
func NewList[K comparable, V any]() *List[K, V] {
	return new(List[K, V]).Init()
}

// Init empties the list, abandoning any entries it held.
func (l *List[K, V]) Init() *List[K, V] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

// Length returns the number of entries in the list.
func (l *List[K, V]) Length() int {
	return l.len
}

// Back returns the least recently used entry, or nil when empty.
func (l *List[K, V]) Back() *Entry[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// PushFront inserts a new entry at the most recently used position.
func (l *List[K, V]) PushFront(key K, value V) *Entry[K, V] {
	if l.root.next == nil {
		l.Init()
	}
	return l.insert(&Entry[K, V]{Key: key, Value: value}, &l.root)
}

// PushFrontExpirable is PushFront with an expiration deadline on the entry.
func (l *List[K, V]) PushFrontExpirable(key K, value V, expiresAt time.Time) *Entry[K, V] {
	if l.root.next == nil {
		l.Init()
	}
	return l.insert(&Entry[K, V]{Key: key, Value: value, ExpiresAt: expiresAt}, &l.root)
}

// Remove detaches e from the list. Key and Value stay readable afterwards,
// which eviction relies on.
func (l *List[K, V]) Remove(e *Entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	e.list = nil
	l.len--
}

// MoveToFront promotes e to the most recently used position.
func (l *List[K, V]) MoveToFront(e *Entry[K, V]) {
	if l.root.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	l.len--
	l.insert(e, &l.root)
}

func (l *List[K, V]) insert(e, at *Entry[K, V]) *Entry[K, V] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}
