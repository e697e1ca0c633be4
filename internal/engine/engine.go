// Package engine provides the core database engine implementation for
// the storage system.
//
// The engine serves as the central coordinator and entry point for all
// database operations. It orchestrates the interaction between three
// subsystems:
//   - Index: maps keys to the locator that names their byte range in the
//     data file
//   - Storage: the append-only data file itself
//   - Cache: an LFU cache of recently-read values, keyed by locator
//
// The engine is single-writer: Put, Link, Delete, Gc and transaction
// commits must not run concurrently with each other, and Close must not
// run concurrently with any other operation. An atomic closed flag makes
// every operation started after Close return ErrEngineClosed.
package engine

import (
	stdErrors "errors"

	"github.com/iamNilotpal/rdb/internal/cache"
	"github.com/iamNilotpal/rdb/internal/compaction"
	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/storage"
	"github.com/iamNilotpal/rdb/pkg/errors"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations
	// on a closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)

// New creates and initializes a new Engine instance with the provided
// configuration. Initialization order mirrors the dependency chain: the
// data file must exist before the index can be trusted to resolve
// locators against it, and the cache has no dependencies at all.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config")
	}

	st, err := storage.New(&storage.Config{Options: config.Options, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	idx, err := index.LoadOrCreate(&index.Config{
		DataDir:   config.Options.DataDir,
		IndexType: config.Options.IndexType,
		Logger:    config.Logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	return &Engine{
		options: config.Options,
		log:     config.Logger,
		storage: st,
		index:   idx,
		cache:   cache.New(config.Options.CacheCapacity),
	}, nil
}

// Get returns the value stored for key, or nil if key has no entry. An
// I/O failure reading a located value is logged and treated the same as
// a missing key rather than surfaced as an error, since the index
// entry that led here is the authoritative record of the key's
// existence.
func (e *Engine) Get(key string) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	loc, ok := e.index.Get(key)
	if !ok {
		return nil, nil
	}

	if value, ok := e.cache.Get(loc); ok {
		return value, nil
	}

	value, err := e.storage.Read(loc)
	if err != nil {
		e.log.Warnw("failed to read value for existing index entry, treating as miss", "key", key, "error", err)
		return nil, nil
	}

	e.cache.Put(loc, value)
	return value, nil
}

// Put appends value to the data file and records its locator under key,
// overwriting any existing entry. The old bytes, if any, remain in the
// data file until the next Gc, but the cache slot keyed by the old
// locator is dropped immediately, even if an alias made with Link still
// points at it (its next Get reloads the value from the data file).
func (e *Engine) Put(key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	previous, hadPrevious := e.index.Get(key)

	loc, err := e.storage.Append(value)
	if err != nil {
		return err
	}

	e.index.Put(key, loc)
	if hadPrevious && previous != loc {
		e.cache.Invalidate(previous)
	}
	return nil
}

// Link aliases existing's value onto a new key, sharing the same locator
// (and therefore the same cache slot) rather than copying the value.
func (e *Engine) Link(existing, alias string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.index.Link(existing, alias)
}

// Delete removes key from the index. The underlying bytes are not
// reclaimed until the next Gc; the cache slot keyed by key's locator is
// dropped immediately, even if an alias made with Link still points at
// it (its next Get reloads the value from the data file).
func (e *Engine) Delete(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	if loc, ok := e.index.Get(key); ok {
		e.cache.Invalidate(loc)
	}
	e.index.Delete(key)
	return nil
}

// Persist serializes the index to disk, then flushes the data file's
// buffered writes. If the index persist fails, the data buffer is left
// untouched so a retry can still recover a consistent pair.
func (e *Engine) Persist() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if err := e.index.Persist(); err != nil {
		return err
	}
	return e.storage.Persist()
}

// Gc rewrites the data file to reclaim space held by overwritten and
// deleted keys, remapping every surviving locator in the process. It
// requires a full scan of the index and is not safe to run concurrently
// with other engine operations.
func (e *Engine) Gc() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return compaction.New(e.storage, e.index, e.cache, e.options.GcBackupDir).Run()
}

// DeadZones reports the data file's unreferenced byte ranges without
// rewriting anything, for callers that want to decide whether a Gc run
// is worth its cost.
func (e *Engine) DeadZones() ([]compaction.DeadZone, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return compaction.New(e.storage, e.index, e.cache, "").DeadZones()
}

// Tx starts a new optimistic transaction. Writes made through it are
// invisible to the rest of the engine until Commit, and Commit failing
// restores the index to the snapshot captured when Tx was called.
func (e *Engine) Tx() *Transaction {
	return newTransaction(e)
}

// Close gracefully shuts down the engine and releases all associated
// resources. This flushes and persists both the data file and the index
// before closing their underlying file handles.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	if err := e.index.Close(); err != nil {
		return err
	}
	return e.storage.Close()
}
