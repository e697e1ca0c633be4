// Package seginfo names timestamped backup artifacts. It descends from a
// segment-file naming convention (prefix_sequence_timestamp); the
// single-data-file design this module supports has no segments to
// rotate, so only the timestamped-name half of that convention survives,
// repurposed for naming the safety-net copy compaction can take of the
// data file before rewriting it.
package seginfo

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/iamNilotpal/rdb/pkg/filesys"
)

const backupExtension = ".bak"

// GenerateBackupName creates a timestamped filename for a backup
// artifact. The nanosecond timestamp keeps names unique and sortable
// without needing a sequence counter.
func GenerateBackupName(prefix string) string {
	if prefix == "" {
		prefix = "data"
	}
	return fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), backupExtension)
}

// ParseBackupTimestamp extracts the timestamp embedded in a name
// produced by GenerateBackupName.
func ParseBackupTimestamp(name string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(name), backupExtension)
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("backup filename %s has unexpected format", name)
	}

	nanos, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse backup timestamp in %s: %w", name, err)
	}
	return time.Unix(0, nanos), nil
}

// ListBackups returns every backup artifact under dir matching prefix,
// sorted oldest first (the naming scheme sorts lexicographically in
// timestamp order).
func ListBackups(dir, prefix string) ([]string, error) {
	pattern := filepath.Join(dir, prefix+"_*"+backupExtension)

	files, err := filesys.ReadDir(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory with pattern %s: %w", pattern, err)
	}

	slices.Sort(files)
	return files, nil
}
