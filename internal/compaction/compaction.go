// Package compaction rewrites the data file so that only values still
// reachable from the index occupy space on disk, reclaiming whatever a
// prior Delete or overwriting Put left behind.
package compaction

import (
	"path/filepath"
	"sort"

	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/locator"
	"github.com/iamNilotpal/rdb/pkg/filesys"
	"github.com/iamNilotpal/rdb/pkg/seginfo"
)

// DataFile is the subset of storage.Storage compaction needs: read the
// whole file, measure it, and replace its contents.
type DataFile interface {
	ReadAll() ([]byte, error)
	Replace(data []byte) error
	Len() uint64
}

// IndexTable is the subset of index.Index compaction needs: the full set
// of surviving entries, and a way to install the remapped set.
type IndexTable interface {
	Entries() []index.Entry
	ReplaceAll(entries []index.Entry)
}

// CacheInvalidator is the subset of cache.Cache compaction needs. Every
// locator changes during compaction, so the simplest correct action is
// to drop the whole cache rather than remap individual entries.
type CacheInvalidator interface {
	Reset()
}

// Compactor runs compaction against the concrete DataFile, IndexTable,
// and CacheInvalidator an engine wires in. It is defined against these
// small interfaces rather than the concrete storage/index/cache types so
// it can be driven by fakes in tests without a real data directory.
type Compactor struct {
	data      DataFile
	index     IndexTable
	cache     CacheInvalidator
	backupDir string
}

// New constructs a Compactor over the given subsystems. backupDir, when
// non-empty, makes Run copy the data file there, under a timestamped
// name, before replacing its contents.
func New(data DataFile, idx IndexTable, c CacheInvalidator, backupDir string) *Compactor {
	return &Compactor{data: data, index: idx, cache: c, backupDir: backupDir}
}

// Run rewrites the data file so surviving values sit back-to-back in
// offset order with no gaps, remaps every index entry to its new
// locator, and invalidates the cache. Keys that alias the same locator
// (see Engine.Link) collapse onto the same rewritten bytes exactly once
// rather than being duplicated. With no surviving entries the data file
// is truncated to zero length.
func (c *Compactor) Run() error {
	entries := c.index.Entries()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Locator, entries[j].Locator
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return entries[i].Key < entries[j].Key
	})

	data, err := c.data.ReadAll()
	if err != nil {
		return err
	}

	newData := make([]byte, 0, len(data))
	remapped := make([]index.Entry, 0, len(entries))

	var runningOffset uint64
	var lastOld, lastNew locator.Locator
	haveLast := false

	for _, e := range entries {
		if haveLast && e.Locator == lastOld {
			remapped = append(remapped, index.Entry{Key: e.Key, Locator: lastNew})
			continue
		}

		start, end := e.Locator.Offset, e.Locator.End()
		newLoc := locator.Locator{Offset: runningOffset, Length: e.Locator.Length}

		newData = append(newData, data[start:end]...)
		remapped = append(remapped, index.Entry{Key: e.Key, Locator: newLoc})

		runningOffset += e.Locator.Length
		lastOld, lastNew, haveLast = e.Locator, newLoc, true
	}

	if c.backupDir != "" {
		if err := c.backup(data); err != nil {
			return err
		}
	}

	if err := c.data.Replace(newData); err != nil {
		return err
	}

	c.index.ReplaceAll(remapped)
	c.cache.Reset()
	return nil
}

// backup writes data, the pre-compaction data file contents, to a
// timestamped file under backupDir.
func (c *Compactor) backup(data []byte) error {
	name := seginfo.GenerateBackupName("data")
	return filesys.WriteFile(filepath.Join(c.backupDir, name), 0644, data)
}
