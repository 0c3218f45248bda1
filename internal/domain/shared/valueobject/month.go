package valueobject

import (
	"encoding/json"
	"fmt"
	"time"
)

// Month is a value object representing a calendar month in "YYYY-MM" form.
// It is immutable - all operations return new Month instances.
type Month struct {
	year  int
	month time.Month
}

// NewMonth creates a Month from a year and a month number
func NewMonth(year int, month time.Month) (Month, error) {
	if year < 2000 || year > 2100 {
		return Month{}, fmt.Errorf("year out of range: %d", year)
	}
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("invalid month: %d", month)
	}
	return Month{year: year, month: month}, nil
}

// ParseMonth parses a "YYYY-MM" string
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return NewMonth(t.Year(), t.Month())
}

// MonthOf returns the Month containing the given time
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// Year returns the calendar year
func (m Month) Year() int {
	return m.year
}

// Month returns the calendar month
func (m Month) Month() time.Month {
	return m.month
}

// First returns the first day of the month in the given location
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, loc)
}

// Next returns the following month
func (m Month) Next() Month {
	if m.month == time.December {
		return Month{year: m.year + 1, month: time.January}
	}
	return Month{year: m.year, month: m.month + 1}
}

// Days returns the number of days in the month
func (m Month) Days() int {
	first := m.First(time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Contains reports whether the given time falls inside the month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.year && t.Month() == m.month
}

// Compact returns the month as "YYYYMM", used in generated document numbers
func (m Month) Compact() string {
	return fmt.Sprintf("%04d%02d", m.year, int(m.month))
}

// String returns the "YYYY-MM" representation
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

// IsZero reports whether the month is the zero value
func (m Month) IsZero() bool {
	return m.year == 0 && m.month == 0
}

// MarshalJSON implements json.Marshaler
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
