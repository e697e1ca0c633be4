package rdb

import "github.com/iamNilotpal/rdb/internal/engine"

// Transaction batches writes against a snapshot of the store, applying
// them atomically on Commit. See DB.Tx.
type Transaction struct {
	tx *engine.Transaction
}

// Put buffers a write, invisible outside this transaction until Commit
// succeeds.
func (t *Transaction) Put(key string, value []byte) error {
	return t.tx.Put(key, value)
}

// Get returns a buffered write for key if this transaction has one,
// otherwise falls through to the store's current value.
func (t *Transaction) Get(key string) ([]byte, error) {
	return t.tx.Get(key)
}

// Commit applies every buffered write to the store as a single append.
// On failure the store is left exactly as it was before Tx was called.
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback discards every buffered write.
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}
