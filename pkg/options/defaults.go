package options

const (
	// DefaultDataDir is used only as documentation; the data directory has
	// no sane default in practice and must be supplied with WithDataDir.
	DefaultDataDir = ""

	// DefaultCacheCapacity is the number of values the LFU value cache
	// holds before it starts evicting the least-frequently-used entry.
	DefaultCacheCapacity = 1024

	// DefaultBufferSize is the size, in bytes, of the in-memory tail
	// buffer the data file accumulates before flushing to disk.
	DefaultBufferSize = 4096

	// MinBufferSize is the smallest buffer size accepted by WithBufferSize.
	MinBufferSize = 64

	// MaxBufferSize is the largest buffer size accepted by WithBufferSize
	// (16MB); beyond this, unflushed writes risk an unreasonable exposure
	// window on crash.
	MaxBufferSize = 16 * 1024 * 1024

	// DefaultIndexType is the backing requested when the caller does not
	// ask for a specific one. Like any concrete request, it must agree
	// with an existing type marker on disk, or opening fails with a type
	// mismatch.
	DefaultIndexType = IndexTypeHashMap
)

// Holds the default configuration settings for an engine instance.
var defaultOptions = Options{
	DataDir:            DefaultDataDir,
	CacheCapacity:      DefaultCacheCapacity,
	BufferSize:         DefaultBufferSize,
	IndexType:          DefaultIndexType,
	CreateIfMissing:    false,
	SkipDirectoryCheck: false,
}

// NewDefaultOptions returns a copy of the engine's zero-configuration
// defaults.
func NewDefaultOptions() Options {
	return defaultOptions
}
