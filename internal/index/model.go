package index

import (
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/rdb/pkg/options"
	"go.uber.org/zap"
)

// Index is the in-memory key -> locator mapping the engine consults on
// every Get/Put/Link/Delete. It wraps a Table (hash map or B-tree) with
// the mutex and lifecycle bookkeeping the engine expects, and knows how
// to persist and reload that table next to the data file.
type Index struct {
	dataDir string
	log     *zap.SugaredLogger
	table   Table
	mu      sync.RWMutex
	closed  atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize
// an Index.
type Config struct {
	DataDir   string
	IndexType options.IndexType
	Logger    *zap.SugaredLogger
}
