package compaction

import (
	"sort"

	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/internal/locator"
)

// DeadZone is a gap in the data file not covered by any surviving index
// entry: bytes a compaction run would reclaim.
type DeadZone struct {
	Offset uint64
	Length uint64
}

// DeadZones reports the gaps between (and after) surviving entries
// without rewriting anything, so callers can decide whether a
// compaction run is worth its cost before triggering one.
func (c *Compactor) DeadZones() ([]DeadZone, error) {
	entries := c.index.Entries()
	return computeDeadZones(entries, c.data.Len()), nil
}

func computeDeadZones(entries []index.Entry, fileSize uint64) []DeadZone {
	sorted := make([]index.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return locator.Less(sorted[i].Locator, sorted[j].Locator)
	})

	var zones []DeadZone
	var lastEnd uint64

	for _, e := range sorted {
		if e.Locator.Offset > lastEnd {
			zones = append(zones, DeadZone{Offset: lastEnd, Length: e.Locator.Offset - lastEnd})
		}
		if end := e.Locator.End(); end > lastEnd {
			lastEnd = end
		}
	}

	if lastEnd < fileSize {
		zones = append(zones, DeadZone{Offset: lastEnd, Length: fileSize - lastEnd})
	}

	return zones
}
