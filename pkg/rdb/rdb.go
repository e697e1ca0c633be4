// Package rdb provides a high-performance embedded key/value store
// inspired by Bitcask. It combines an in-memory index (KeyDir) with an
// append-only log structure on disk: writes are sequential appends,
// reads are a single index lookup plus, on a cache miss, one seek.
//
// The store is single-writer: callers must not call Put, Delete, Link,
// Gc, or Commit concurrently with each other, though Get is always
// safe to call from multiple goroutines.
package rdb

import (
	"github.com/iamNilotpal/rdb/internal/compaction"
	"github.com/iamNilotpal/rdb/internal/engine"
	"github.com/iamNilotpal/rdb/pkg/logger"
	"github.com/iamNilotpal/rdb/pkg/options"
)

// DeadZone is a gap in the data file not covered by any surviving key:
// bytes a Gc run would reclaim.
type DeadZone = compaction.DeadZone

// DB is the primary entry point for interacting with the store. It
// wraps the engine responsible for coordinating the index, the data
// file, and the value cache.
type DB struct {
	engine  *engine.Engine
	options *options.Options
}

// Open creates or opens a store at the directory named by WithDataDir,
// applying any other options over the library's defaults. service
// names the component in this instance's log lines.
func Open(service string, opts ...options.OptionFunc) (*DB, error) {
	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	log := logger.New(service)
	eng, err := engine.New(&engine.Config{Logger: log, Options: &resolved})
	if err != nil {
		return nil, err
	}

	return &DB{engine: eng, options: &resolved}, nil
}

// Get returns the value stored for key, or nil if key has no entry.
func (db *DB) Get(key string) ([]byte, error) {
	return db.engine.Get(key)
}

// Put stores value under key, overwriting any existing entry. The
// write is durable once Persist or Close next runs; it is visible to
// Get immediately regardless.
func (db *DB) Put(key string, value []byte) error {
	return db.engine.Put(key, value)
}

// Link aliases existing's value onto alias, so both keys resolve to
// the same on-disk bytes and the same cache slot without copying the
// value. Returns an error if existing has no entry.
func (db *DB) Link(existing, alias string) error {
	return db.engine.Link(existing, alias)
}

// Delete removes key. The underlying bytes are not reclaimed until the
// next Gc.
func (db *DB) Delete(key string) error {
	return db.engine.Delete(key)
}

// Persist flushes buffered writes to the data file and serializes the
// index to disk. Close calls this automatically; call it directly to
// checkpoint durability without shutting down.
func (db *DB) Persist() error {
	return db.engine.Persist()
}

// Gc rewrites the data file to reclaim space held by deleted and
// overwritten keys. It is not safe to call concurrently with Put,
// Delete, Link, or a transaction Commit.
func (db *DB) Gc() error {
	return db.engine.Gc()
}

// DeadZones reports the data file's unreferenced byte ranges without
// rewriting anything, so callers can decide whether a Gc run is worth
// its cost.
func (db *DB) DeadZones() ([]DeadZone, error) {
	return db.engine.DeadZones()
}

// Tx starts a new optimistic transaction. Writes made through it are
// invisible to the rest of the store until Commit, and a failed Commit
// leaves the store exactly as it was before Tx was called.
func (db *DB) Tx() *Transaction {
	return &Transaction{tx: db.engine.Tx()}
}

// Close flushes and persists the store and releases its file handles
// and advisory lock. The DB must not be used afterward.
func (db *DB) Close() error {
	return db.engine.Close()
}
