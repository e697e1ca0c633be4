package cache

import (
	"container/heap"

	"github.com/iamNilotpal/rdb/internal/locator"
)

// Get returns the cached value for loc, bumping its access frequency. The
// returned slice is owned by the cache; callers must copy it before
// mutating.
func (c *Cache) Get(loc locator.Locator) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[loc]
	if !ok {
		return nil, false
	}

	e.frequency++
	heap.Push(c.pending, heapItem{frequency: e.frequency, loc: loc})
	return e.value, true
}

// Put inserts or overwrites the cached value for loc. When the cache is
// at capacity and loc is not already present, the least-frequently-used
// locator is evicted first.
func (c *Cache) Put(loc locator.Locator, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[loc]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}

	c.entries[loc] = &entry{value: value, frequency: 1}
	heap.Push(c.pending, heapItem{frequency: 1, loc: loc})
}

// Invalidate removes loc from the cache, used when compaction retires the
// locator it was keyed by.
func (c *Cache) Invalidate(loc locator.Locator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, loc)
}

// Reset clears every cached entry, used after compaction remaps every
// locator in the data file.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[locator.Locator]*entry, c.capacity)
	h := minHeap(make([]heapItem, 0, c.capacity))
	c.pending = &h
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked pops stale heap entries until it finds one whose recorded
// frequency still matches the live entry's frequency, then evicts that
// locator. Heap entries go stale whenever Get bumps a frequency without
// removing the old, lower-frequency entry for the same locator; this walk
// is how those are cleaned up lazily instead of on every Get.
func (c *Cache) evictLocked() {
	for c.pending.Len() > 0 {
		item := heap.Pop(c.pending).(heapItem)

		e, ok := c.entries[item.loc]
		if !ok {
			continue
		}
		if e.frequency > item.frequency {
			continue
		}

		delete(c.entries, item.loc)
		return
	}
}
