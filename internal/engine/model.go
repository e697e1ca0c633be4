package engine

import (
	"sync/atomic"

	"github.com/iamNilotpal/rdb/internal/cache"
	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/storage"
	"github.com/iamNilotpal/rdb/pkg/options"
	"go.uber.org/zap"
)

// Engine is the central coordinator for the key-value store. It owns the
// append-only data file, the key/locator index, and the value cache that
// sits in front of both, and exposes the operations the public API
// delegates to: Get, Put, Link, Delete, Persist, Gc, and Tx.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	storage *storage.Storage
	index   *index.Index
	cache   *cache.Cache
}

// Config holds all the parameters needed to initialize a new Engine
// instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
