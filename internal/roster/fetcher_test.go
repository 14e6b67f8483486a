package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	rows := [][]interface{}{
		{"8/10/2025 14:03:11", "  alice smith ", " Alice@Example.com ", "2025-08-15 20:00"},
		{"8/10/2025 14:05:42", "Bob", "bob@example.com", "2025-08-15T20:00:00+05:30"},
	}

	candidates := ParseRows(rows, ist)
	require.Len(t, candidates, 2)

	assert.Equal(t, "ALICE SMITH", candidates[0].Name)
	assert.Equal(t, "alice@example.com", candidates[0].Email)
	assert.Equal(t, time.Date(2025, 8, 15, 20, 0, 0, 0, ist), candidates[0].WorkshopTime)

	assert.Equal(t, "BOB", candidates[1].Name)
	assert.True(t, candidates[0].WorkshopTime.Equal(candidates[1].WorkshopTime))
}

func TestParseRowsSkipsBadRows(t *testing.T) {
	rows := [][]interface{}{
		{"ts", "", "noname@example.com", "2025-08-15 20:00"},  // missing name
		{"ts", "Carol", "", "2025-08-15 20:00"},               // missing email
		{"ts", "Dave", "dave@example.com", "next friday"},     // unparseable time
		{"ts", "Eve", "eve@example.com"},                      // short row
		{"ts", "Frank", "frank@example.com", "2025-08-15 20:00"},
	}

	candidates := ParseRows(rows, time.UTC)
	require.Len(t, candidates, 1)
	assert.Equal(t, "frank@example.com", candidates[0].Email)
}

func TestParseRowsPreservesSheetOrder(t *testing.T) {
	rows := [][]interface{}{
		{"ts", "Z", "z@example.com", "2025-08-15 20:00"},
		{"ts", "A", "a@example.com", "2025-08-15 20:00"},
	}

	candidates := ParseRows(rows, time.UTC)
	require.Len(t, candidates, 2)
	assert.Equal(t, "z@example.com", candidates[0].Email)
	assert.Equal(t, "a@example.com", candidates[1].Email)
}

func TestParseRowsNonStringCells(t *testing.T) {
	rows := [][]interface{}{
		{nil, 42, "num@example.com", "2025-08-15 20:00"},
	}

	candidates := ParseRows(rows, time.UTC)
	assert.Empty(t, candidates, "a non-string name cell is treated as blank")
}

func TestParseWorkshopTimeLayouts(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2025-08-15 20:00", time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC)},
		{"2025-08-15 20:00:30", time.Date(2025, 8, 15, 20, 0, 30, 0, time.UTC)},
		{"15/08/2025 20:00:00", time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC)},
		{"2025-08-15T20:00:00Z", time.Date(2025, 8, 15, 20, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseWorkshopTime(tt.value, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := parseWorkshopTime("", time.UTC)
	assert.Error(t, err)
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &FetchError{Op: "get values", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "get values")
}
