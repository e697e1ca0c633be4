package index

import (
	"github.com/google/btree"
	"github.com/iamNilotpal/rdb/internal/locator"
)

// btreeItem is the element type stored in the underlying btree.BTreeG,
// ordered by Key alone so ReplaceOrInsert naturally overwrites an
// existing key's locator.
type btreeItem struct {
	Key     string
	Locator locator.Locator
}

func btreeLess(a, b btreeItem) bool {
	return a.Key < b.Key
}

// btreeDegree matches the library's documented default for a balanced
// branching factor without tuning for a particular workload.
const btreeDegree = 32

// btreeTable is the TypeBTreeMap backing: entries stay sorted by key, so
// Entries and any future range scan return results in key order at the
// cost of O(log n) point operations.
type btreeTable struct {
	t *btree.BTreeG[btreeItem]
}

func newBTreeTable() *btreeTable {
	return &btreeTable{t: btree.NewG(btreeDegree, btreeLess)}
}

func (t *btreeTable) Get(key string) (locator.Locator, bool) {
	item, ok := t.t.Get(btreeItem{Key: key})
	if !ok {
		return locator.Locator{}, false
	}
	return item.Locator, true
}

func (t *btreeTable) Insert(key string, loc locator.Locator) {
	t.t.ReplaceOrInsert(btreeItem{Key: key, Locator: loc})
}

func (t *btreeTable) Delete(key string) {
	t.t.Delete(btreeItem{Key: key})
}

func (t *btreeTable) Len() int {
	return t.t.Len()
}

func (t *btreeTable) Entries() []Entry {
	entries := make([]Entry, 0, t.t.Len())
	t.t.Ascend(func(item btreeItem) bool {
		entries = append(entries, Entry{Key: item.Key, Locator: item.Locator})
		return true
	})
	return entries
}

func (t *btreeTable) ReplaceAll(entries []Entry) {
	fresh := btree.NewG(btreeDegree, btreeLess)
	for _, e := range entries {
		fresh.ReplaceOrInsert(btreeItem{Key: e.Key, Locator: e.Locator})
	}
	t.t = fresh
}

func (t *btreeTable) Clone() Table {
	return &btreeTable{t: t.t.Clone()}
}

func (t *btreeTable) Type() Type {
	return TypeBTreeMap
}
