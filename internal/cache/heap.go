package cache

import "github.com/iamNilotpal/rdb/internal/locator"

// minHeap orders heapItems by ascending frequency so the least-frequently
// used locator surfaces first during eviction; ties break by locator
// offset/length for determinism.
type minHeap []heapItem

func (h minHeap) Len() int { return len(h) }

func (h minHeap) Less(i, j int) bool {
	if h[i].frequency != h[j].frequency {
		return h[i].frequency < h[j].frequency
	}
	return locator.Less(h[i].loc, h[j].loc)
}

func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) {
	*h = append(*h, x.(heapItem))
}

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
