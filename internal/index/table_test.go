package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/internal/locator"
	"github.com/iamNilotpal/rdb/pkg/options"
)

func Test_NewBacking_ConstructsRequestedType_WithoutTouchingDisk(t *testing.T) {
	t.Parallel()

	table := NewBacking(options.IndexTypeBTreeMap)
	assert.Equal(t, TypeBTreeMap, table.Type())
	assert.Equal(t, 0, table.Len())
}

func Test_Tables_Satisfy_CommonContract(t *testing.T) {
	t.Parallel()

	tables := map[Type]Table{
		TypeHashMap:  newHashTable(),
		TypeBTreeMap: newBTreeTable(),
	}

	for name, table := range tables {
		t.Run(string(name), func(t *testing.T) {
			assert.Equal(t, name, table.Type())
			assert.Equal(t, 0, table.Len())

			loc := locator.Locator{Offset: 10, Length: 5}
			table.Insert("a", loc)
			table.Insert("b", locator.Locator{Offset: 20, Length: 1})

			got, ok := table.Get("a")
			require.True(t, ok)
			assert.Equal(t, loc, got)

			assert.Equal(t, 2, table.Len())

			table.Delete("a")
			_, ok = table.Get("a")
			assert.False(t, ok)
			assert.Equal(t, 1, table.Len())

			clone := table.Clone()
			table.Insert("c", locator.Locator{Offset: 30, Length: 1})
			assert.Equal(t, 2, table.Len())
			assert.Equal(t, 1, clone.Len(), "clone must not see writes made after Clone")

			table.ReplaceAll([]Entry{{Key: "z", Locator: locator.Locator{Offset: 1, Length: 1}}})
			assert.Equal(t, 1, table.Len())
			entries := table.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, "z", entries[0].Key)
		})
	}
}

func Test_BTreeTable_Entries_AreKeySorted(t *testing.T) {
	t.Parallel()

	table := newBTreeTable()
	table.Insert("c", locator.Locator{Offset: 2, Length: 1})
	table.Insert("a", locator.Locator{Offset: 0, Length: 1})
	table.Insert("b", locator.Locator{Offset: 1, Length: 1})

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{entries[0].Key, entries[1].Key, entries[2].Key})
}
