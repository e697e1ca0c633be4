// Package index maintains the in-memory key -> locator mapping the
// engine consults on every operation. See table.go for the backing
// contract and factory.go for how a table is persisted and reloaded.
package index

import (
	stdErrors "errors"

	"github.com/iamNilotpal/rdb/internal/locator"
	"github.com/iamNilotpal/rdb/pkg/errors"
	"github.com/iamNilotpal/rdb/pkg/filesys"
)

var (
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// LoadOrCreate opens the index rooted at config.DataDir, creating it (and
// its type marker) if no type marker exists yet, or loading the existing
// persisted table otherwise. This is the entry point engine.New uses.
func LoadOrCreate(config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config")
	}

	indexPath, typePath := indexPaths(config.DataDir)

	markerExists, err := filesys.Exists(typePath)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat index type marker").WithPath(typePath)
	}

	if markerExists {
		return open(config, indexPath, typePath)
	}
	return create(config, indexPath, typePath)
}

// Open loads an index whose type marker must already exist.
func Open(config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config")
	}
	indexPath, typePath := indexPaths(config.DataDir)
	return open(config, indexPath, typePath)
}

// Create initializes a brand-new index and writes its type marker.
// config.IndexType must be a concrete type (not IndexTypeAuto).
func Create(config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewRequiredFieldError("config")
	}
	indexPath, typePath := indexPaths(config.DataDir)
	return create(config, indexPath, typePath)
}

func open(config *Config, indexPath, typePath string) (*Index, error) {
	resolved, err := resolveExistingType(typePath, config.IndexType)
	if err != nil {
		return nil, err
	}

	table, err := loadTable(indexPath, resolved)
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("Index loaded", "dataDir", config.DataDir, "type", resolved, "entries", table.Len())
	return &Index{dataDir: config.DataDir, log: config.Logger, table: table}, nil
}

func create(config *Config, indexPath, typePath string) (*Index, error) {
	resolved, err := resolveNewType(config.IndexType)
	if err != nil {
		return nil, err
	}

	if err := writeTypeMarker(typePath, resolved); err != nil {
		return nil, err
	}

	table := newTable(resolved)
	config.Logger.Infow("Index created", "dataDir", config.DataDir, "type", resolved)

	idx := &Index{dataDir: config.DataDir, log: config.Logger, table: table}
	if err := idx.Persist(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Get returns the locator for key and whether it was present.
func (idx *Index) Get(key string) (locator.Locator, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.table.Get(key)
}

// Put records or overwrites the locator for key.
func (idx *Index) Put(key string, loc locator.Locator) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.table.Insert(key, loc)
}

// Delete removes key from the index.
func (idx *Index) Delete(key string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.table.Delete(key)
}

// Link aliases existing's locator onto alias, failing if existing has no
// entry of its own.
func (idx *Index) Link(existing, alias string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	loc, ok := idx.table.Get(existing)
	if !ok {
		return errors.NewKeyNotFoundError(existing)
	}
	idx.table.Insert(alias, loc)
	return nil
}

// Len returns the number of entries currently stored.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.table.Len()
}

// Entries returns every key/locator pair currently stored.
func (idx *Index) Entries() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.table.Entries()
}

// ReplaceAll discards the current contents and installs entries in their
// place. Compaction calls this once it has computed new locators for
// every surviving key.
func (idx *Index) ReplaceAll(entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.table.ReplaceAll(entries)
}

// Snapshot returns an independent copy of the index's current contents,
// used by a transaction to capture a pre-commit state it can restore
// verbatim on rollback.
func (idx *Index) Snapshot() Table {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.table.Clone()
}

// Restore replaces the live table with a previously captured snapshot.
func (idx *Index) Restore(snapshot Table) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.table = snapshot
}

// Persist serializes the index to its on-disk file.
func (idx *Index) Persist() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	indexPath, _ := indexPaths(idx.dataDir)
	return persistTable(indexPath, idx.table)
}

// Close gracefully shuts down the Index, cleaning up resources and
// ensuring that the index cannot be used after closure.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("Closing index")
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err := persistTable(joinIndexPath(idx.dataDir), idx.table); err != nil {
		return err
	}

	idx.table = nil
	idx.log.Infow("Index closed")
	return nil
}

func joinIndexPath(dataDir string) string {
	path, _ := indexPaths(dataDir)
	return path
}
