// Package storage provides the append-only data file that backs the
// engine. It exposes a small buffered-file abstraction: reads are served
// either from the in-memory tail buffer or directly from disk, writes
// accumulate in that buffer until it would overflow, and a whole-file
// Replace lets compaction truncate the file and write a rewritten one in
// its place.
package storage

import (
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iamNilotpal/rdb/internal/locator"
	"github.com/iamNilotpal/rdb/pkg/errors"
	"github.com/iamNilotpal/rdb/pkg/filesys"
)

var (
	ErrStorageClosed = stdErrors.New("operation failed: cannot access closed storage")
)

// New creates and initializes a new Storage instance, opening (and, if
// configured, creating) the data file under Options.DataDir and taking
// the advisory lock that keeps a second process from opening the same
// directory at once.
func New(config *Config) (*Storage, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("invalid configuration")
	}

	opts := config.Options
	if opts.DataDir == "" {
		return nil, errors.NewStorageError(nil, errors.ErrorCodeMissingPath, "data directory is not set")
	}

	config.Logger.Infow("Initializing storage", "dataDir", opts.DataDir)

	dirExists, err := filesys.Exists(opts.DataDir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat data directory").WithPath(opts.DataDir)
	}

	if !dirExists {
		if !opts.CreateIfMissing {
			return nil, errors.NewStorageError(
				nil, errors.ErrorCodeMissingPath, "data directory does not exist",
			).WithPath(opts.DataDir).WithDetail("createIfMissing", false)
		}
		if err := filesys.CreateDir(opts.DataDir, 0755, true); err != nil {
			return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create data directory").
				WithPath(opts.DataDir).WithDetail("permission", "0755")
		}
		config.Logger.Infow("Created data directory", "path", opts.DataDir)
	} else if !opts.SkipDirectoryCheck {
		stat, err := os.Stat(opts.DataDir)
		if err != nil {
			return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat data directory").WithPath(opts.DataDir)
		}
		if !stat.IsDir() {
			return nil, errors.NewStorageError(
				nil, errors.ErrorCodeNotADirectory, "data directory path is not a directory",
			).WithPath(opts.DataDir)
		}
	}

	lock := filesys.NewLock(filepath.Join(opts.DataDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to acquire data directory lock").WithPath(opts.DataDir)
	}
	if !acquired {
		return nil, errors.NewStorageError(
			nil, errors.ErrorCodeLockConflict, "data directory is locked by another process",
		).WithPath(opts.DataDir)
	}

	path := filepath.Join(opts.DataDir, dataFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		lock.Unlock()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open data file").
			WithFileName(dataFileName).WithPath(path)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		lock.Unlock()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat data file").WithPath(path)
	}

	bufferCap := opts.BufferSize
	if bufferCap <= 0 {
		bufferCap = 4096
	}

	s := &Storage{
		path:         path,
		file:         file,
		lock:         lock,
		onDiskLength: stat.Size(),
		buffer:       make([]byte, 0, bufferCap),
		bufferCap:    bufferCap,
		log:          config.Logger,
		options:      opts,
	}

	config.Logger.Infow("Storage initialized", "path", path, "onDiskLength", s.onDiskLength)
	return s, nil
}

// Path returns the absolute path of the underlying data file.
func (s *Storage) Path() string {
	return s.path
}

// Read returns the bytes addressed by loc, whichever side of the
// on-disk/buffer boundary they live on.
func (s *Storage) Read(loc locator.Locator) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrStorageClosed
	}

	logicalLength := uint64(s.onDiskLength) + uint64(len(s.buffer))
	if loc.End() > logicalLength {
		return nil, errors.NewStorageError(
			nil, errors.ErrorCodeOutOfRange, "read exceeds logical file length",
		).WithOffset(int(loc.Offset)).WithPath(s.path).
			WithDetail("length", loc.Length).WithDetail("logicalLength", logicalLength)
	}

	if loc.Offset >= uint64(s.onDiskLength) {
		start := loc.Offset - uint64(s.onDiskLength)
		out := make([]byte, loc.Length)
		copy(out, s.buffer[start:start+loc.Length])
		return out, nil
	}

	data := make([]byte, loc.Length)
	if _, err := s.file.ReadAt(data, int64(loc.Offset)); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read from data file").
			WithOffset(int(loc.Offset)).WithPath(s.path)
	}
	return data, nil
}

// Append writes data to the tail buffer, flushing first if it would
// overflow the buffer's capacity, and returns the locator the index
// should record for it.
func (s *Storage) Append(data []byte) (locator.Locator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return locator.Locator{}, ErrStorageClosed
	}

	offset := uint64(s.onDiskLength) + uint64(len(s.buffer))

	if len(s.buffer)+len(data) > s.bufferCap {
		if err := s.flushLocked(); err != nil {
			return locator.Locator{}, err
		}
	}

	s.buffer = append(s.buffer, data...)
	return locator.Locator{Offset: offset, Length: uint64(len(data))}, nil
}

// Persist flushes the tail buffer to disk and fsyncs the data file.
func (s *Storage) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStorageClosed
	}
	return s.flushLocked()
}

func (s *Storage) flushLocked() error {
	if len(s.buffer) == 0 {
		return nil
	}

	if _, err := s.file.Write(s.buffer); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to flush buffer to data file").WithPath(s.path)
	}
	if err := s.file.Sync(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to sync data file").WithPath(s.path)
	}

	s.onDiskLength += int64(len(s.buffer))
	s.buffer = s.buffer[:0]
	return nil
}

// ReadAll flushes the tail buffer and returns the entire data file.
func (s *Storage) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrStorageClosed
	}
	if err := s.flushLocked(); err != nil {
		return nil, err
	}

	data := make([]byte, s.onDiskLength)
	if _, err := s.file.ReadAt(data, 0); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read data file").WithPath(s.path)
	}
	return data, nil
}

// Replace truncates the data file and writes data in its place,
// discarding whatever was buffered. The swap is not atomic: a failure
// after the truncate leaves the file short. Compaction uses this to
// install a rewritten file once it has computed the new locators for
// every surviving key.
func (s *Storage) Replace(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStorageClosed
	}

	if err := s.file.Truncate(0); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to truncate data file").WithPath(s.path)
	}
	// The file is opened with O_APPEND, where WriteAt is rejected; after the
	// truncate an appending Write lands at offset 0.
	if _, err := s.file.Write(data); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write compacted data file").WithPath(s.path)
	}
	if err := s.file.Sync(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to sync compacted data file").WithPath(s.path)
	}

	s.onDiskLength = int64(len(data))
	s.buffer = s.buffer[:0]
	return nil
}

// Len returns the logical length (on-disk plus buffered) of the data file.
func (s *Storage) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.onDiskLength) + uint64(len(s.buffer))
}

// Close flushes any buffered writes, closes the data file, and releases
// the advisory lock.
func (s *Storage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStorageClosed
	}

	s.mu.Lock()
	flushErr := s.flushLocked()
	closeErr := s.file.Close()
	s.mu.Unlock()

	unlockErr := s.lock.Unlock()

	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return errors.NewStorageError(closeErr, errors.ErrorCodeIO, "failed to close data file").WithPath(s.path)
	}
	return unlockErr
}
