package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamNilotpal/rdb/internal/locator"
)

func Test_Locator_End_Returns_OffsetPlusLength(t *testing.T) {
	t.Parallel()

	loc := locator.Locator{Offset: 10, Length: 5}
	assert.Equal(t, uint64(15), loc.End())
}

func Test_Less_Orders_By_Offset_Then_Length(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     locator.Locator
		expected bool
	}{
		{"LowerOffset", locator.Locator{Offset: 1, Length: 10}, locator.Locator{Offset: 2, Length: 1}, true},
		{"HigherOffset", locator.Locator{Offset: 5, Length: 1}, locator.Locator{Offset: 2, Length: 1}, false},
		{"SameOffsetLowerLength", locator.Locator{Offset: 2, Length: 1}, locator.Locator{Offset: 2, Length: 5}, true},
		{"Equal", locator.Locator{Offset: 2, Length: 5}, locator.Locator{Offset: 2, Length: 5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, locator.Less(tc.a, tc.b))
		})
	}
}
