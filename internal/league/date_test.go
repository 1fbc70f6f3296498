package league

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", d.String())

	_, err = ParseDate("09-03-2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-03-09T10:00:00Z")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))

	assert.Error(t, json.Unmarshal([]byte(`20250309`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-01")))
	assert.Equal(t, "2024-01-01", d.String())

	// A timestamp column collapses to its calendar date regardless of zone.
	loc := time.FixedZone("UTC+13", 13*60*60)
	require.NoError(t, d.Scan(time.Date(2024, time.June, 1, 23, 30, 0, 0, loc)))
	assert.Equal(t, "2024-06-01", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDeriveStatus(t *testing.T) {
	asOf := NewDate(2025, time.March, 9)

	testCases := []struct {
		name      string
		scheduled Date
		expected  TournamentStatus
	}{
		{"future date", NewDate(2025, time.March, 10), TournamentUpcoming},
		{"same day", NewDate(2025, time.March, 9), TournamentOngoing},
		{"past date", NewDate(2025, time.March, 8), TournamentOngoing},
		{"far future", NewDate(2026, time.January, 1), TournamentUpcoming},
		{"year boundary", NewDate(2024, time.December, 31), TournamentOngoing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveStatus(tc.scheduled, asOf))
		})
	}
}
