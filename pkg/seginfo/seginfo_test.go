package seginfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/pkg/seginfo"
)

func Test_GenerateBackupName_DefaultsPrefix_AndIsParsable(t *testing.T) {
	t.Parallel()

	name := seginfo.GenerateBackupName("")
	assert.Contains(t, name, "data_")
	assert.Contains(t, name, ".bak")

	ts, err := seginfo.ParseBackupTimestamp(name)
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

func Test_ParseBackupTimestamp_RejectsMalformedName(t *testing.T) {
	t.Parallel()

	_, err := seginfo.ParseBackupTimestamp("not-a-backup-name")
	assert.Error(t, err)
}

func Test_ListBackups_ReturnsOnlyMatchingPrefix_Sorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	older := seginfo.GenerateBackupName("data")
	require.NoError(t, os.WriteFile(filepath.Join(dir, older), nil, 0644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other_123.bak"), nil, 0644))

	backups, err := seginfo.ListBackups(dir, "data")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, backups[0], older)
}
