package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Run("valid month", func(t *testing.T) {
		m, err := ParseMonth("2025-03")
		require.NoError(t, err)
		assert.Equal(t, 2025, m.Year())
		assert.Equal(t, time.March, m.Month())
		assert.Equal(t, "2025-03", m.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"2025-3", "202503", "2025-13", "march", ""} {
			_, err := ParseMonth(s)
			assert.Error(t, err, s)
		}
	})
}

func TestMonthNext(t *testing.T) {
	m, err := NewMonth(2025, time.December)
	require.NoError(t, err)
	next := m.Next()
	assert.Equal(t, 2026, next.Year())
	assert.Equal(t, time.January, next.Month())
}

func TestMonthDays(t *testing.T) {
	cases := map[string]int{
		"2025-01": 31,
		"2025-02": 28,
		"2024-02": 29,
		"2025-04": 30,
	}
	for s, want := range cases {
		m, err := ParseMonth(s)
		require.NoError(t, err)
		assert.Equal(t, want, m.Days(), s)
	}
}

func TestMonthContains(t *testing.T) {
	m, err := ParseMonth("2025-06")
	require.NoError(t, err)
	assert.True(t, m.Contains(time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthCompact(t *testing.T) {
	m, err := ParseMonth("2025-09")
	require.NoError(t, err)
	assert.Equal(t, "202509", m.Compact())
}

func TestMonthJSON(t *testing.T) {
	m, err := ParseMonth("2025-11")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11"`, string(data))

	var decoded Month
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2025-08-15")
		require.NoError(t, err)
		assert.Equal(t, "2025-08-15", d.String())
		assert.Equal(t, time.Friday, d.Weekday())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"2025-8-15", "15/08/2025", "2025-02-30", ""} {
			_, err := ParseDate(s)
			assert.Error(t, err, s)
		}
	})
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-24", d.AddDays(-7).String())
}

func TestDateOrdering(t *testing.T) {
	a, _ := ParseDate("2025-05-01")
	b, _ := ParseDate("2025-05-02")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a.AddDays(0)))
}
