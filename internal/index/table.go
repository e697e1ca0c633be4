// Package index maintains the in-memory key -> locator mapping and its
// on-disk persistence. Two interchangeable backings are available: an
// unordered hash map for the cheapest point lookups, and an ordered
// B-tree for workloads that want key-sorted iteration. Which backing is
// in play is recorded in a type-marker sidecar next to the persisted
// index so a later Open can detect and refuse a mismatched request.
package index

import (
	"github.com/iamNilotpal/rdb/internal/locator"
)

// Type selects which backing implements Table.
type Type string

const (
	// TypeHashMap is the default backing: an unordered map keyed by
	// string, cheapest for Get/Insert/Delete.
	TypeHashMap Type = "HashMap"

	// TypeBTreeMap orders entries by key, trading point-lookup speed for
	// sorted iteration.
	TypeBTreeMap Type = "BTreeMap"
)

// Entry is one key/locator pair, the unit Table.Entries and
// Table.ReplaceAll exchange with callers (the persistence layer and
// compaction) that need the whole table rather than a single lookup.
type Entry struct {
	Key     string
	Locator locator.Locator
}

// Table is the contract every index backing satisfies. Implementations
// are not expected to be safe for concurrent use on their own; Index
// wraps whichever Table it holds with its own mutex.
type Table interface {
	// Get returns the locator for key and whether it was present.
	Get(key string) (locator.Locator, bool)

	// Insert records or overwrites the locator for key.
	Insert(key string, loc locator.Locator)

	// Delete removes key. It is a no-op if key was not present.
	Delete(key string)

	// Len returns the number of entries currently stored.
	Len() int

	// Entries returns every key/locator pair currently stored. Order is
	// backing-specific: unspecified for TypeHashMap, key-sorted for
	// TypeBTreeMap.
	Entries() []Entry

	// ReplaceAll discards the current contents and installs entries in
	// their place, used after compaction remaps every locator.
	ReplaceAll(entries []Entry)

	// Clone returns an independent copy of the table's current contents,
	// used to snapshot the index at transaction start so it can be
	// restored verbatim on rollback.
	Clone() Table

	// Type reports which backing this is, for the type-marker sidecar.
	Type() Type
}
