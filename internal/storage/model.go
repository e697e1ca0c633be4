package storage

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/rdb/pkg/filesys"
	"github.com/iamNilotpal/rdb/pkg/options"
	"go.uber.org/zap"
)

// dataFileName is the append-only file every engine instance reads and
// writes under its configured data directory.
const dataFileName = ".rdb.data"

// lockFileName is the advisory lock sidecar that prevents a second process
// from opening the same data directory concurrently.
const lockFileName = ".rdb.lock"

// Storage is the append-only data file backing the engine. Reads and writes
// are coordinated through a single mutex; writes land in an in-memory tail
// buffer that is flushed to disk once it would overflow, on explicit
// Persist, or on Close. Locators issued by Append always address bytes that
// either already sit on disk or are about to, so Read never has to care
// which side of that line an offset falls on except to pick where to copy
// from.
type Storage struct {
	mu sync.Mutex

	path string
	file *os.File
	lock *filesys.Lock

	onDiskLength int64
	buffer       []byte
	bufferCap    int

	closed atomic.Bool

	log     *zap.SugaredLogger
	options *options.Options
}

// Config encapsulates the configuration parameters required to initialize
// a Storage instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
