package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/internal/engine"
	"github.com/iamNilotpal/rdb/pkg/logger"
	"github.com/iamNilotpal/rdb/pkg/options"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.CreateIfMissing = true
	opts.IndexType = options.IndexTypeHashMap

	e, err := engine.New(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)

	t.Cleanup(func() { _ = e.Close() })
	return e
}

func Test_Engine_Put_Then_Get_RoundTrips(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("value")))

	got, err := e.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func Test_Engine_Get_MissingKey_ReturnsNilNoError(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	got, err := e.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_Engine_Put_Overwrite_ReturnsLatestValue(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("first")))
	require.NoError(t, e.Put("key", []byte("second")))

	got, err := e.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func Test_Engine_Delete_RemovesKey(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("value")))
	require.NoError(t, e.Delete("key"))

	got, err := e.Get("key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_Engine_Link_SharesValue(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("existing", []byte("shared")))
	require.NoError(t, e.Link("existing", "alias"))

	got, err := e.Get("alias")
	require.NoError(t, err)
	assert.Equal(t, []byte("shared"), got)
}

func Test_Engine_Put_Overwrite_InvalidatesOldCacheSlot(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("first")))

	// Prime the cache with the first value's locator.
	_, err := e.Get("key")
	require.NoError(t, err)

	require.NoError(t, e.Put("key", []byte("second")))

	got, err := e.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func Test_Engine_Persist_Then_Reopen_SurvivesRestart(t *testing.T) {
	t.Parallel()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.CreateIfMissing = true

	e, err := engine.New(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)

	require.NoError(t, e.Put("key", []byte("durable")))
	require.NoError(t, e.Close())

	reopened, err := engine.New(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}

func Test_Engine_Gc_ReclaimsOverwrittenBytes_AndPreservesValues(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("stale-value")))
	require.NoError(t, e.Put("key", []byte("fresh")))
	require.NoError(t, e.Put("other", []byte("kept")))

	require.NoError(t, e.Gc())

	got, err := e.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), got)

	other, err := e.Get("other")
	require.NoError(t, err)
	assert.Equal(t, []byte("kept"), other)
}

func Test_Engine_DeadZones_ReportsReclaimableSpace_BeforeGc(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.NoError(t, e.Put("key", []byte("aaaaaaaaaa")))
	require.NoError(t, e.Put("key", []byte("b")))

	zones, err := e.DeadZones()
	require.NoError(t, err)
	require.NotEmpty(t, zones)
}

func Test_Engine_Tx_Commit_AppliesAllPutsAtomically(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	tx := e.Tx()

	require.NoError(t, tx.Put("a", []byte("1")))
	require.NoError(t, tx.Put("b", []byte("2")))

	// Uncommitted writes must not be visible through the engine.
	got, err := e.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, tx.Commit())

	gotA, err := e.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), gotA)

	gotB, err := e.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), gotB)
}

func Test_Engine_Tx_Rollback_DiscardsBufferedWrites(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	tx := e.Tx()

	require.NoError(t, tx.Put("a", []byte("1")))
	require.NoError(t, tx.Rollback())

	got, err := e.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_Engine_Tx_Get_SeesOwnBufferedWrite(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	tx := e.Tx()

	require.NoError(t, tx.Put("a", []byte("1")))

	got, err := tx.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func Test_Engine_Tx_CommitTwice_Fails(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	tx := e.Tx()
	require.NoError(t, tx.Put("a", []byte("1")))
	require.NoError(t, tx.Commit())

	assert.Error(t, tx.Commit())
}

func Test_Engine_Tx_RollbackTwice_Fails(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	tx := e.Tx()
	require.NoError(t, tx.Rollback())
	assert.Error(t, tx.Rollback())
}

func Test_Engine_Close_RejectsFurtherOperations(t *testing.T) {
	t.Parallel()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.CreateIfMissing = true

	e, err := engine.New(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = e.Get("key")
	assert.ErrorIs(t, err, engine.ErrEngineClosed)
}
