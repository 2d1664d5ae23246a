package decoration

import (
	"container/list"
	"fmt"
)

// DefaultCapacity is the default maximum number of cached decorations.
const DefaultCapacity = 1000

// Key identifies a cached decoration by its span.
type Key struct {
	From int
	To   int
}

// String renders the key as "from-to".
func (k Key) String() string {
	return fmt.Sprintf("%d-%d", k.From, k.To)
}

// cacheEntry is stored in the insertion-order list.
type cacheEntry struct {
	key   Key
	value Decoration
}

// Cache stores decorations by span so rebuilds can skip constructing them
// again. It is bounded: inserting into a full cache evicts the oldest
// inserted entry, which approximates LRU without tracking reads.
//
// Entries are also indexed by start position so that everything anchored
// at a position can be dropped without scanning the whole cache.
//
// A Cache belongs to one engine and is not safe for concurrent use.
type Cache struct {
	capacity int

	entries map[Key]*list.Element
	order   *list.List

	// byPosition maps a start position to the keys anchored there.
	byPosition map[int]map[Key]struct{}

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewCache creates a cache holding at most capacity decorations.
// A non-positive capacity selects DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity:   capacity,
		entries:    make(map[Key]*list.Element),
		order:      list.New(),
		byPosition: make(map[int]map[Key]struct{}),
	}
}

// GenerateKey returns the key for span [from, to).
func (c *Cache) GenerateKey(from, to int) Key {
	return Key{From: from, To: to}
}

// Get returns the decoration stored under key.
func (c *Cache) Get(key Key) (Decoration, bool) {
	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return Decoration{}, false
	}
	c.hits++
	return elem.Value.(*cacheEntry).value, true
}

// Set stores d under key, which must be GenerateKey(d.From, d.To).
// Overwriting an existing key keeps its place in the eviction order.
func (c *Cache) Set(key Key, d Decoration) {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).value = d
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, value: d})
	keys, ok := c.byPosition[key.From]
	if !ok {
		keys = make(map[Key]struct{})
		c.byPosition[key.From] = keys
	}
	keys[key] = struct{}{}
}

// Clear removes every entry. Statistics are kept.
func (c *Cache) Clear() {
	c.entries = make(map[Key]*list.Element)
	c.order.Init()
	c.byPosition = make(map[int]map[Key]struct{})
}

// DeleteByPosition removes every entry whose span starts at pos and
// returns how many were removed.
func (c *Cache) DeleteByPosition(pos int) int {
	keys, ok := c.byPosition[pos]
	if !ok {
		return 0
	}
	removed := 0
	for key := range keys {
		if elem, ok := c.entries[key]; ok {
			c.order.Remove(elem)
			delete(c.entries, key)
			removed++
		}
	}
	delete(c.byPosition, pos)
	return removed
}

// Len returns the number of cached decorations.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// evictOldest drops the entry inserted first.
func (c *Cache) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}
	entry := front.Value.(*cacheEntry)
	c.order.Remove(front)
	delete(c.entries, entry.key)
	if keys, ok := c.byPosition[entry.key.From]; ok {
		delete(keys, entry.key)
		if len(keys) == 0 {
			delete(c.byPosition, entry.key.From)
		}
	}
	c.evictions++
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return CacheStats{
		Size:      len(c.entries),
		Capacity:  c.capacity,
		Positions: len(c.byPosition),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int
	Capacity  int
	Positions int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}
