// Package options provides data structures and functions for configuring
// the storage engine. It defines the parameters that control the engine's
// on-disk layout, cache sizing, and index backing, following the
// functional-options pattern so call sites only set what they care about.
package options

import "strings"

// IndexType selects which on-disk encoding backs the key/locator index.
type IndexType string

const (
	// IndexTypeHashMap backs the index with an unordered hash map. Cheapest
	// for point lookups; iteration order is unspecified.
	IndexTypeHashMap IndexType = "hash_map"

	// IndexTypeBTreeMap backs the index with an ordered tree. Iteration
	// visits keys in sorted order at the cost of slower point lookups.
	IndexTypeBTreeMap IndexType = "btree_map"

	// IndexTypeAuto defers to whatever type marker is already recorded on
	// disk. Opening a fresh directory with Auto and no existing marker is
	// an ambiguous-type error.
	IndexTypeAuto IndexType = "auto"
)

// Options defines the configuration parameters for an engine instance.
type Options struct {
	// DataDir is the directory holding the data file, index file, and
	// type-marker sidecar. Required; there is no default.
	DataDir string `json:"dataDir"`

	// CacheCapacity bounds the number of values the LFU value cache holds
	// before evicting the least-frequently-used entry.
	//
	//  - Default: 1024
	CacheCapacity int `json:"cacheCapacity"`

	// BufferSize is the size, in bytes, of the data file's in-memory tail
	// buffer. Writes accumulate here and flush to disk once the buffer
	// would overflow, on explicit Persist, or on Close.
	//
	//  - Default: 4096
	BufferSize int `json:"bufferSize"`

	// IndexType selects the on-disk index encoding. When the directory
	// already carries a type marker, it must agree with this value unless
	// IndexTypeAuto was requested.
	//
	//  - Default: IndexTypeHashMap
	IndexType IndexType `json:"indexType"`

	// CreateIfMissing allows Open to create DataDir and an empty data file
	// when the directory does not exist yet. When false, opening a missing
	// directory fails.
	CreateIfMissing bool `json:"createIfMissing"`

	// SkipDirectoryCheck bypasses the startup check that an existing
	// DataDir is a directory rather than a regular file. The contents of
	// DataDir are not checked either way.
	SkipDirectoryCheck bool `json:"skipDirectoryCheck"`

	// GcBackupDir, when set, makes Gc write a timestamped copy of the
	// data file there before replacing it with the compacted rewrite.
	// Empty disables backups.
	GcBackupDir string `json:"gcBackupDir"`
}

// OptionFunc is a function type that modifies the engine's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies the engine's zero-configuration defaults.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.CacheCapacity = opts.CacheCapacity
		o.BufferSize = opts.BufferSize
		o.IndexType = opts.IndexType
		o.CreateIfMissing = opts.CreateIfMissing
		o.SkipDirectoryCheck = opts.SkipDirectoryCheck
	}
}

// WithDataDir sets the directory the engine reads and writes under.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCacheCapacity sets the maximum number of values the LFU cache holds.
func WithCacheCapacity(capacity int) OptionFunc {
	return func(o *Options) {
		if capacity > 0 {
			o.CacheCapacity = capacity
		}
	}
}

// WithBufferSize sets the size of the data file's in-memory tail buffer.
func WithBufferSize(size int) OptionFunc {
	return func(o *Options) {
		if size >= MinBufferSize && size <= MaxBufferSize {
			o.BufferSize = size
		}
	}
}

// WithIndexType selects the on-disk index encoding.
func WithIndexType(t IndexType) OptionFunc {
	return func(o *Options) {
		switch t {
		case IndexTypeHashMap, IndexTypeBTreeMap, IndexTypeAuto:
			o.IndexType = t
		}
	}
}

// WithCreateIfMissing allows Open to create DataDir when absent.
func WithCreateIfMissing(create bool) OptionFunc {
	return func(o *Options) {
		o.CreateIfMissing = create
	}
}

// WithSkipDirectoryCheck bypasses the is-a-directory check on DataDir.
func WithSkipDirectoryCheck(skip bool) OptionFunc {
	return func(o *Options) {
		o.SkipDirectoryCheck = skip
	}
}

// WithGcBackupDir makes Gc copy the data file to dir, under a timestamped
// name, before rewriting it. Pass "" to disable (the default).
func WithGcBackupDir(dir string) OptionFunc {
	return func(o *Options) {
		o.GcBackupDir = strings.TrimSpace(dir)
	}
}
