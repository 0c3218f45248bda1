package models

import (
	"time"

	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// Dates persist as midnight timestamps and months as their "YYYY-MM"
// string so both survive every driver the repo tests run against.

func dateColumn(d valueobject.Date) time.Time {
	return d.Time()
}

func dateFromColumn(t time.Time) valueobject.Date {
	return valueobject.DateOf(t)
}

func datePtrColumn(d *valueobject.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func datePtrFromColumn(t *time.Time) *valueobject.Date {
	if t == nil {
		return nil
	}
	d := valueobject.DateOf(*t)
	return &d
}

func monthColumn(m valueobject.Month) string {
	return m.String()
}

func monthFromColumn(s string) valueobject.Month {
	m, err := valueobject.ParseMonth(s)
	if err != nil {
		return valueobject.Month{}
	}
	return m
}
