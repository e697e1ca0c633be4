// Package cache implements the bounded LFU value cache sitting in front
// of the data file. It is keyed by locator rather than by application
// key, so an aliased key (see Index.Link) and its original share a single
// cache slot.
package cache

import (
	"sync"

	"github.com/iamNilotpal/rdb/internal/locator"
)

const defaultCapacity = 1024

// entry is the value and current access frequency tracked per locator.
type entry struct {
	value     []byte
	frequency int
}

// heapItem is a (frequency, locator) pair pushed onto the eviction heap.
// Get pushes a fresh heapItem every time it bumps a frequency rather than
// mutating one in place, so the heap can carry stale entries for a
// locator whose frequency has since moved on; Put's eviction walk
// tolerates and discards those.
type heapItem struct {
	frequency int
	loc       locator.Locator
}

// Cache is a bounded, locator-keyed LFU cache. All methods are safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[locator.Locator]*entry
	pending  *minHeap
}

// New creates a Cache bounded to capacity entries. A non-positive capacity
// falls back to defaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	h := minHeap(make([]heapItem, 0, capacity))
	return &Cache{
		capacity: capacity,
		entries:  make(map[locator.Locator]*entry, capacity),
		pending:  &h,
	}
}
