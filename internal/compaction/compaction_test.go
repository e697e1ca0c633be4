package compaction_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/internal/compaction"
	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/locator"
)

type fakeDataFile struct {
	data []byte
}

func (f *fakeDataFile) ReadAll() ([]byte, error) { return f.data, nil }
func (f *fakeDataFile) Replace(data []byte) error {
	f.data = data
	return nil
}
func (f *fakeDataFile) Len() uint64 { return uint64(len(f.data)) }

type fakeIndexTable struct {
	entries []index.Entry
}

func (f *fakeIndexTable) Entries() []index.Entry    { return f.entries }
func (f *fakeIndexTable) ReplaceAll(e []index.Entry) { f.entries = e }

type fakeCache struct {
	resetCalls int
}

func (f *fakeCache) Reset() { f.resetCalls++ }

func Test_Compactor_Run_RewritesContiguously_AndRemapsLocators(t *testing.T) {
	t.Parallel()

	// data file: "AAA" (dead, overwritten) + "BB" (live, key b) + "C" (live, key a)
	data := &fakeDataFile{data: []byte("AAABBC")}
	idx := &fakeIndexTable{entries: []index.Entry{
		{Key: "a", Locator: locator.Locator{Offset: 5, Length: 1}},
		{Key: "b", Locator: locator.Locator{Offset: 3, Length: 2}},
	}}
	cache := &fakeCache{}

	require.NoError(t, compaction.New(data, idx, cache, "").Run())

	assert.Equal(t, []byte("BBC"), data.data)
	assert.Equal(t, 1, cache.resetCalls)

	byKey := map[string]locator.Locator{}
	for _, e := range idx.entries {
		byKey[e.Key] = e.Locator
	}
	assert.Equal(t, locator.Locator{Offset: 0, Length: 2}, byKey["b"])
	assert.Equal(t, locator.Locator{Offset: 2, Length: 1}, byKey["a"])
}

func Test_Compactor_Run_CollapsesAliasedLocators_OntoSameBytes(t *testing.T) {
	t.Parallel()

	data := &fakeDataFile{data: []byte("value")}
	shared := locator.Locator{Offset: 0, Length: 5}
	idx := &fakeIndexTable{entries: []index.Entry{
		{Key: "a", Locator: shared},
		{Key: "b", Locator: shared},
	}}
	cache := &fakeCache{}

	require.NoError(t, compaction.New(data, idx, cache, "").Run())

	assert.Equal(t, []byte("value"), data.data)

	byKey := map[string]locator.Locator{}
	for _, e := range idx.entries {
		byKey[e.Key] = e.Locator
	}
	assert.Equal(t, byKey["a"], byKey["b"])
}

func Test_Compactor_Run_NoEntries_TruncatesFile(t *testing.T) {
	t.Parallel()

	data := &fakeDataFile{data: []byte("garbage")}
	idx := &fakeIndexTable{}
	cache := &fakeCache{}

	require.NoError(t, compaction.New(data, idx, cache, "").Run())
	assert.Equal(t, []byte{}, data.data)
	assert.Equal(t, 1, cache.resetCalls)
}

func Test_Compactor_Run_WithBackupDir_WritesBackupBeforeReplacing(t *testing.T) {
	t.Parallel()

	backupDir := t.TempDir()
	data := &fakeDataFile{data: []byte("AAB")}
	idx := &fakeIndexTable{entries: []index.Entry{
		{Key: "a", Locator: locator.Locator{Offset: 2, Length: 1}},
	}}
	cache := &fakeCache{}

	require.NoError(t, compaction.New(data, idx, cache, backupDir).Run())

	backups, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)
}

func Test_DeadZones_ReportsGapsBetweenAndAfterEntries(t *testing.T) {
	t.Parallel()

	data := &fakeDataFile{data: make([]byte, 10)}
	idx := &fakeIndexTable{entries: []index.Entry{
		{Key: "a", Locator: locator.Locator{Offset: 2, Length: 2}},
	}}

	zones, err := compaction.New(data, idx, &fakeCache{}, "").DeadZones()
	require.NoError(t, err)

	assert.Equal(t, []compaction.DeadZone{
		{Offset: 0, Length: 2},
		{Offset: 4, Length: 6},
	}, zones)
}
