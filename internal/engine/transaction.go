package engine

import (
	"sync"

	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/locator"
	"github.com/iamNilotpal/rdb/pkg/errors"
)

// txState tracks a Transaction through its single-use lifecycle: every
// transaction starts Open and ends exactly once, either Committed or
// RolledBack.
type txState string

const (
	txOpen       txState = "Open"
	txCommitted  txState = "Committed"
	txRolledBack txState = "RolledBack"
)

// Transaction batches a series of puts against a snapshot of the index
// taken at the moment it was created, applying them to the live engine
// only on Commit. This is optimistic concurrency: nothing is locked while
// the transaction is open, so a concurrent writer going through Engine
// directly can observe or overwrite the same keys before Commit runs.
// The engine is single-writer by contract (see the package doc), so that
// race is a caller error rather than one this type defends against.
type Transaction struct {
	mu sync.Mutex

	engine   *Engine
	snapshot index.Table

	pending map[string][]byte
	order   []string

	state txState
}

func newTransaction(e *Engine) *Transaction {
	return &Transaction{
		engine:   e,
		snapshot: e.index.Snapshot(),
		pending:  make(map[string][]byte),
		state:    txOpen,
	}
}

// Put buffers a write. It is not visible to Get outside this transaction,
// nor to Get within it via the underlying engine, until Commit succeeds.
func (t *Transaction) Put(key string, value []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != txOpen {
		return errors.NewTransactionFinalizedError(string(t.state))
	}

	if _, exists := t.pending[key]; !exists {
		t.order = append(t.order, key)
	}
	t.pending[key] = value
	return nil
}

// Get returns a buffered write for key if this transaction has one,
// otherwise falls through to the live engine.
func (t *Transaction) Get(key string) ([]byte, error) {
	t.mu.Lock()
	if t.state != txOpen {
		t.mu.Unlock()
		return nil, errors.NewTransactionFinalizedError(string(t.state))
	}
	if value, ok := t.pending[key]; ok {
		t.mu.Unlock()
		return value, nil
	}
	t.mu.Unlock()

	return t.engine.Get(key)
}

// Commit appends every buffered value to the data file as a single
// contiguous write, then records each key's locator within that write in
// the live index. If the append fails, the live index is restored to the
// pre-transaction snapshot and CommitFailed is returned; no partial
// writes are visible either way, since the index is only touched after
// the append succeeds.
func (t *Transaction) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != txOpen {
		return errors.NewTransactionFinalizedError(string(t.state))
	}

	var data []byte
	lengths := make([]int, len(t.order))
	for i, key := range t.order {
		value := t.pending[key]
		lengths[i] = len(value)
		data = append(data, value...)
	}

	base, err := t.engine.storage.Append(data)
	if err != nil {
		t.engine.index.Restore(t.snapshot)
		t.state = txRolledBack
		return errors.NewCommitFailedError(err)
	}

	offset := base.Offset
	for i, key := range t.order {
		length := uint64(lengths[i])
		t.engine.index.Put(key, locator.Locator{Offset: offset, Length: length})
		offset += length
	}

	t.state = txCommitted
	return nil
}

// Rollback discards every buffered write. It is a no-op on the live
// index beyond restoring it to the pre-transaction snapshot, since an
// open (never-committed) transaction never touched the live index in the
// first place; the restore is there for the case a caller rolls back
// after inspecting intermediate state some other code path mutated.
func (t *Transaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == txRolledBack {
		return errors.NewAlreadyRolledBackError()
	}
	if t.state == txCommitted {
		return errors.NewTransactionFinalizedError(string(t.state))
	}

	t.engine.index.Restore(t.snapshot)
	t.state = txRolledBack
	return nil
}
