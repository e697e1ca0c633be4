package index

import (
	"bytes"
	"path/filepath"

	"github.com/hashicorp/go-msgpack/v2/codec"
	atomicfile "github.com/natefinch/atomic"

	"github.com/iamNilotpal/rdb/internal/locator"
	rdberrors "github.com/iamNilotpal/rdb/pkg/errors"
	"github.com/iamNilotpal/rdb/pkg/filesys"
	"github.com/iamNilotpal/rdb/pkg/options"
)

// indexFileName holds the serialized table; typeFileName records which
// backing produced it so a later open can detect a mismatched request
// before deserializing garbage into the wrong shape.
const (
	indexFileName = ".rdb.index"
	typeFileName  = ".rdb.index.type"
)

var msgpackHandle = &codec.MsgpackHandle{}

// wireEntry is the on-disk shape of one index entry. It exists
// independently of Entry so the wire format doesn't change if Entry ever
// grows fields that don't need persisting.
type wireEntry struct {
	Key    string
	Offset uint64
	Length uint64
}

// newTable constructs an empty backing for t.
func newTable(t Type) Table {
	if t == TypeBTreeMap {
		return newBTreeTable()
	}
	return newHashTable()
}

// NewBacking constructs a bare Table of the requested type without
// touching a type-marker sidecar or a data directory at all. It exists
// for callers that already know the backing they want and have no use
// for the marker bookkeeping LoadOrCreate/Open/Create does, such as
// building a scratch table to feed into ReplaceAll in a test.
func NewBacking(t options.IndexType) Table {
	return newTable(requestedToType(t))
}

// resolveExistingType reads the type-marker sidecar, which must already
// exist, and reconciles it against requested: IndexTypeAuto always
// defers to the marker, while a concrete request must agree with it.
func resolveExistingType(markerPath string, requested options.IndexType) (Type, error) {
	raw, err := filesys.ReadFile(markerPath)
	if err != nil {
		return "", rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to read index type marker").WithPath(markerPath)
	}

	onDisk := Type(bytes.TrimSpace(raw))
	if onDisk != TypeHashMap && onDisk != TypeBTreeMap {
		return "", rdberrors.NewIndexCorruptionError("resolveExistingType", 0, nil).WithDetail("markerContents", string(raw))
	}

	if requested == options.IndexTypeAuto || requested == "" {
		return onDisk, nil
	}

	want := requestedToType(requested)
	if want != onDisk {
		return "", rdberrors.NewTypeMismatchError(string(want), string(onDisk))
	}
	return onDisk, nil
}

// resolveNewType picks the backing for a freshly created table.
// IndexTypeAuto has nothing to defer to yet, so it is ambiguous.
func resolveNewType(requested options.IndexType) (Type, error) {
	if requested == options.IndexTypeAuto || requested == "" {
		return "", rdberrors.NewAmbiguousTypeError()
	}
	return requestedToType(requested), nil
}

func requestedToType(requested options.IndexType) Type {
	if requested == options.IndexTypeBTreeMap {
		return TypeBTreeMap
	}
	return TypeHashMap
}

// writeTypeMarker atomically records t as the table's backing while
// holding an advisory lock on the marker's own lock file, the same
// discipline Persist uses for the table. The two locks are separate, and
// reading the marker or loading the table takes neither, so a reader can
// see the marker before the table file has been written.
func writeTypeMarker(markerPath string, t Type) error {
	lock := filesys.NewLock(markerPath + ".lock")
	if err := lockOrFail(lock, markerPath); err != nil {
		return err
	}
	defer lock.Unlock()

	if err := atomicfile.WriteFile(markerPath, bytes.NewReader([]byte(t))); err != nil {
		return rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to write index type marker").WithPath(markerPath)
	}
	return nil
}

func lockOrFail(lock *filesys.Lock, path string) error {
	ok, err := lock.TryLock()
	if err != nil {
		return rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to acquire index lock").WithPath(path)
	}
	if !ok {
		return rdberrors.NewStorageError(nil, rdberrors.ErrorCodeLockConflict, "index is locked by another process").WithPath(path)
	}
	return nil
}

// loadTable deserializes the persisted entries for table at path. A
// missing file is not an error: the table simply starts empty, matching
// a fresh HashMapIndexTable/BTreeMapIndexTable in the implementation this
// package is modeled on.
func loadTable(path string, t Type) (Table, error) {
	table := newTable(t)

	exists, err := filesys.Exists(path)
	if err != nil {
		return nil, rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to stat index file").WithPath(path)
	}
	if !exists {
		return table, nil
	}

	raw, err := filesys.ReadFile(path)
	if err != nil {
		return nil, rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to read index file").WithPath(path)
	}
	if len(raw) == 0 {
		return table, nil
	}

	var entries []wireEntry
	decoder := codec.NewDecoderBytes(raw, msgpackHandle)
	if err := decoder.Decode(&entries); err != nil {
		return nil, rdberrors.NewIndexCorruptionError("load", 0, err)
	}

	converted := make([]Entry, len(entries))
	for i, e := range entries {
		converted[i] = Entry{Key: e.Key, Locator: locator.Locator{Offset: e.Offset, Length: e.Length}}
	}
	table.ReplaceAll(converted)
	return table, nil
}

// persistTable serializes table and writes it to path atomically, guarded
// by an advisory lock so a concurrent reader never observes a partial
// write.
func persistTable(path string, table Table) error {
	lock := filesys.NewLock(path + ".lock")
	if err := lockOrFail(lock, path); err != nil {
		return err
	}
	defer lock.Unlock()

	rawEntries := table.Entries()
	entries := make([]wireEntry, len(rawEntries))
	for i, e := range rawEntries {
		entries[i] = wireEntry{Key: e.Key, Offset: e.Locator.Offset, Length: e.Locator.Length}
	}

	var buf bytes.Buffer
	encoder := codec.NewEncoder(&buf, msgpackHandle)
	if err := encoder.Encode(entries); err != nil {
		return rdberrors.NewIndexCorruptionError("persist", len(entries), err)
	}

	if err := atomicfile.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return rdberrors.NewStorageError(err, rdberrors.ErrorCodeIO, "failed to persist index file").WithPath(path)
	}
	return nil
}

// indexPaths resolves the index and type-marker file paths for a data
// directory.
func indexPaths(dataDir string) (indexPath, typePath string) {
	return filepath.Join(dataDir, indexFileName), filepath.Join(dataDir, typeFileName)
}
