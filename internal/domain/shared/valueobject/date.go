package valueobject

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a value object representing a calendar day in "YYYY-MM-DD" form,
// independent of time of day.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// DateOf returns the Date containing the given time in its location
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Time returns midnight of the date in UTC
func (d Date) Time() time.Time {
	return d.t
}

// Year returns the calendar year
func (d Date) Year() int {
	return d.t.Year()
}

// MonthOf returns the Month containing the date
func (d Date) MonthOf() Month {
	return MonthOf(d.t)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays returns the date shifted by the given number of days
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is strictly before other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether both dates are the same day
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// At combines the date with a clock time in the given location
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.t.Month(), d.t.Day(), hour, minute, 0, 0, loc)
}

// IsZero reports whether the date is the zero value
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String returns the "YYYY-MM-DD" representation
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
