package cache

import "container/list"

// DefaultBoundedCapacity is used when NewBounded receives a non-positive
// capacity.
const DefaultBoundedCapacity = 100

// Bounded is an insertion-ordered key/value store that never holds more than
// its capacity. When a genuinely new key would exceed the capacity, exactly
// one entry is evicted: the one inserted earliest among those currently held
// (first-in, first-evicted). Neither Get nor overwriting an existing key
// refreshes an entry's position, so this is not an LRU; access never
// protects an entry from eviction.
//
// Bounded is not safe for concurrent use. NewBoundedService wraps one in a
// mutex for the service layer.
type Bounded[K comparable, V any] struct {
	capacity int
	order    *list.List
	entries  map[K]*list.Element
}

type boundedEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewBounded creates an empty cache holding at most capacity entries.
// A non-positive capacity falls back to DefaultBoundedCapacity.
func NewBounded[K comparable, V any](capacity int) *Bounded[K, V] {
	if capacity <= 0 {
		capacity = DefaultBoundedCapacity
	}
	return &Bounded[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element),
	}
}

// Set stores the value under the key. An existing key is overwritten in
// place, keeping its insertion position and never triggering eviction. A new
// key inserted at capacity evicts the oldest entry first.
func (b *Bounded[K, V]) Set(key K, value V) {
	if ele, ok := b.entries[key]; ok {
		ele.Value.(*boundedEntry[K, V]).value = value
		return
	}
	if b.order.Len() >= b.capacity {
		b.evictOldest()
	}
	b.entries[key] = b.order.PushBack(&boundedEntry[K, V]{key: key, value: value})
}

// Get returns the value stored under the key, or false when absent. Lookups
// have no effect on eviction order.
func (b *Bounded[K, V]) Get(key K) (V, bool) {
	if ele, ok := b.entries[key]; ok {
		return ele.Value.(*boundedEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Has reports whether the key is present, without side effects.
func (b *Bounded[K, V]) Has(key K) bool {
	_, ok := b.entries[key]
	return ok
}

// Delete removes the key if present, reporting whether removal occurred.
func (b *Bounded[K, V]) Delete(key K) bool {
	ele, ok := b.entries[key]
	if !ok {
		return false
	}
	b.removeElement(ele)
	return true
}

// Clear removes all entries. The capacity is unchanged.
func (b *Bounded[K, V]) Clear() {
	b.order.Init()
	b.entries = make(map[K]*list.Element)
}

// Len returns the current entry count.
func (b *Bounded[K, V]) Len() int {
	return b.order.Len()
}

// Capacity returns the maximum entry count.
func (b *Bounded[K, V]) Capacity() int {
	return b.capacity
}

// Keys returns a snapshot of all keys in insertion order.
func (b *Bounded[K, V]) Keys() []K {
	keys := make([]K, 0, b.order.Len())
	for ele := b.order.Front(); ele != nil; ele = ele.Next() {
		keys = append(keys, ele.Value.(*boundedEntry[K, V]).key)
	}
	return keys
}

// Values returns a snapshot of all values in insertion order.
func (b *Bounded[K, V]) Values() []V {
	values := make([]V, 0, b.order.Len())
	for ele := b.order.Front(); ele != nil; ele = ele.Next() {
		values = append(values, ele.Value.(*boundedEntry[K, V]).value)
	}
	return values
}

func (b *Bounded[K, V]) evictOldest() {
	if ele := b.order.Front(); ele != nil {
		b.removeElement(ele)
	}
}

func (b *Bounded[K, V]) removeElement(ele *list.Element) {
	b.order.Remove(ele)
	delete(b.entries, ele.Value.(*boundedEntry[K, V]).key)
}
