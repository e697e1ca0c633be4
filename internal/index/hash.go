package index

import "github.com/iamNilotpal/rdb/internal/locator"

// hashTable is the TypeHashMap backing: a plain Go map, offering O(1)
// expected-time Get/Insert/Delete at the cost of unordered iteration.
type hashTable struct {
	m map[string]locator.Locator
}

func newHashTable() *hashTable {
	return &hashTable{m: make(map[string]locator.Locator, 1024)}
}

func (t *hashTable) Get(key string) (locator.Locator, bool) {
	loc, ok := t.m[key]
	return loc, ok
}

func (t *hashTable) Insert(key string, loc locator.Locator) {
	t.m[key] = loc
}

func (t *hashTable) Delete(key string) {
	delete(t.m, key)
}

func (t *hashTable) Len() int {
	return len(t.m)
}

func (t *hashTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.m))
	for k, v := range t.m {
		entries = append(entries, Entry{Key: k, Locator: v})
	}
	return entries
}

func (t *hashTable) ReplaceAll(entries []Entry) {
	m := make(map[string]locator.Locator, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Locator
	}
	t.m = m
}

func (t *hashTable) Clone() Table {
	clone := newHashTable()
	for k, v := range t.m {
		clone.m[k] = v
	}
	return clone
}

func (t *hashTable) Type() Type {
	return TypeHashMap
}
