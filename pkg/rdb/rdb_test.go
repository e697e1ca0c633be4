package rdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/pkg/options"
	"github.com/iamNilotpal/rdb/pkg/rdb"
)

func openDB(t *testing.T) *rdb.DB {
	t.Helper()

	db, err := rdb.Open(
		"rdb_test",
		options.WithDataDir(t.TempDir()),
		options.WithCreateIfMissing(true),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_DB_Put_Get_Delete_Lifecycle(t *testing.T) {
	t.Parallel()

	db := openDB(t)

	require.NoError(t, db.Put("key", []byte("value")))

	got, err := db.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, db.Delete("key"))

	got, err = db.Get("key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_DB_Tx_CommitAndRollback(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	tx := db.Tx()

	require.NoError(t, tx.Put("a", []byte("1")))
	require.NoError(t, tx.Commit())

	got, err := db.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	tx2 := db.Tx()
	require.NoError(t, tx2.Put("b", []byte("2")))
	require.NoError(t, tx2.Rollback())

	got, err = db.Get("b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func Test_DB_Gc_And_DeadZones(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	require.NoError(t, db.Put("key", []byte("aaaaaaaaaa")))
	require.NoError(t, db.Put("key", []byte("b")))

	zones, err := db.DeadZones()
	require.NoError(t, err)
	require.NotEmpty(t, zones)

	require.NoError(t, db.Gc())

	got, err := db.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func Test_DB_Open_RequiresDataDir(t *testing.T) {
	t.Parallel()

	_, err := rdb.Open("rdb_test")
	assert.Error(t, err)
}
