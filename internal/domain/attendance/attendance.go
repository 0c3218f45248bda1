package attendance

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// RecordStatus represents how an attendance record was produced
type RecordStatus string

const (
	RecordNormal   RecordStatus = "normal"
	RecordModified RecordStatus = "modified"
	RecordAbsent   RecordStatus = "absent"
)

// IsValid checks if the record status is a known value
func (s RecordStatus) IsValid() bool {
	return s == RecordNormal || s == RecordModified || s == RecordAbsent
}

// ConfirmStatus represents the review state of an attendance record
type ConfirmStatus string

const (
	ConfirmUnconfirmed ConfirmStatus = "unconfirmed"
	ConfirmConfirmed   ConfirmStatus = "confirmed"
	ConfirmApproved    ConfirmStatus = "approved"
	ConfirmRejected    ConfirmStatus = "rejected"
)

// IsValid checks if the confirm status is a known value
func (s ConfirmStatus) IsValid() bool {
	switch s {
	case ConfirmUnconfirmed, ConfirmConfirmed, ConfirmApproved, ConfirmRejected:
		return true
	}
	return false
}

// Location represents where the member worked
type Location string

const (
	LocationOffice Location = "office"
	LocationRemote Location = "remote"
)

// IsValid checks if the location is a known value
func (l Location) IsValid() bool {
	return l == LocationOffice || l == LocationRemote
}

// DisplayStatus is the derived state shown on read paths, never persisted
type DisplayStatus string

const (
	DisplayAbsent     DisplayStatus = "absent"
	DisplayDone       DisplayStatus = "done"
	DisplayWorking    DisplayStatus = "working"
	DisplayNotStarted DisplayStatus = "not_started"
)

// Attendance is one member's record for one calendar date.
// At most one record exists per (member, date); the repository enforces
// this with a unique constraint and upsert semantics.
type Attendance struct {
	shared.BaseEntity
	MemberID      uuid.UUID
	Date          valueobject.Date
	ClockIn       *time.Time
	ClockOut      *time.Time
	BreakMinutes  int
	WorkMinutes   int
	PlanText      string
	DoneText      string
	TomorrowText  string
	Status        RecordStatus
	ConfirmStatus ConfirmStatus
	Notified      bool
	Location      Location
}

// NewAttendance creates an empty record for a member and date
func NewAttendance(memberID uuid.UUID, date valueobject.Date) (*Attendance, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	return &Attendance{
		BaseEntity:    shared.NewBaseEntity(),
		MemberID:      memberID,
		Date:          date,
		Status:        RecordNormal,
		ConfirmStatus: ConfirmUnconfirmed,
		Location:      LocationOffice,
	}, nil
}

// RecordClockIn fills the clock-in time along with the plan text and
// location. A record that already has a clock-in is left untouched, so
// the earliest submission of the day always wins.
func (a *Attendance) RecordClockIn(at time.Time, plan string, location Location) error {
	if location != "" && !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown location")
	}
	if a.ClockIn != nil {
		return nil
	}
	if location != "" {
		a.Location = location
	}
	a.PlanText = plan
	t := at
	a.ClockIn = &t
	a.Touch()
	return nil
}

// RecordClockOut sets the clock-out time and derives worked minutes.
// Re-submitting the same values is idempotent.
func (a *Attendance) RecordClockOut(at time.Time, breakMinutes int, done, tomorrow string) error {
	if a.ClockIn == nil {
		return shared.ErrNotClockedIn
	}
	if breakMinutes < 0 {
		return shared.NewDomainError("INVALID_BREAK_MINUTES", "Break minutes cannot be negative")
	}
	t := at
	a.ClockOut = &t
	a.BreakMinutes = breakMinutes
	a.WorkMinutes = ComputeWorkMinutes(*a.ClockIn, at, breakMinutes)
	a.DoneText = done
	a.TomorrowText = tomorrow
	a.Touch()
	return nil
}

// Correct resubmits clock values for the record. Nil arguments keep the
// stored value; worked minutes are recomputed from the merged result.
// Every correction resets the record to modified/unconfirmed so it goes
// back through review, even when an admin made the edit.
func (a *Attendance) Correct(clockIn, clockOut *time.Time, breakMinutes *int) error {
	if clockIn != nil {
		t := *clockIn
		a.ClockIn = &t
	}
	if clockOut != nil {
		t := *clockOut
		a.ClockOut = &t
	}
	if breakMinutes != nil {
		if *breakMinutes < 0 {
			return shared.NewDomainError("INVALID_BREAK_MINUTES", "Break minutes cannot be negative")
		}
		a.BreakMinutes = *breakMinutes
	}
	if a.ClockOut != nil && a.ClockIn == nil {
		return shared.NewDomainError("INVALID_INPUT", "Clock-out requires a clock-in")
	}
	if a.ClockIn != nil && a.ClockOut != nil {
		a.WorkMinutes = ComputeWorkMinutes(*a.ClockIn, *a.ClockOut, a.BreakMinutes)
	}
	a.Status = RecordModified
	a.ConfirmStatus = ConfirmUnconfirmed
	a.Touch()
	return nil
}

// MarkAbsent records the day as an absence. Any clock values are
// discarded and the record returns to unconfirmed for review.
func (a *Attendance) MarkAbsent() {
	a.Status = RecordAbsent
	a.ClockIn = nil
	a.ClockOut = nil
	a.BreakMinutes = 0
	a.WorkMinutes = 0
	a.ConfirmStatus = ConfirmUnconfirmed
	a.Touch()
}

// SetConfirmStatus updates only the review state
func (a *Attendance) SetConfirmStatus(status ConfirmStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_CONFIRM_STATUS", "Unknown confirm status")
	}
	a.ConfirmStatus = status
	a.Touch()
	return nil
}

// MarkNotified records that the day's report was announced
func (a *Attendance) MarkNotified() {
	a.Notified = true
	a.Touch()
}

// DisplayStatus derives the state shown to callers from stored fields
func (a *Attendance) DisplayStatus() DisplayStatus {
	switch {
	case a.Status == RecordAbsent:
		return DisplayAbsent
	case a.ClockOut != nil:
		return DisplayDone
	case a.ClockIn != nil:
		return DisplayWorking
	default:
		return DisplayNotStarted
	}
}

// IsReviewed reports whether the record counts toward closing confirmation
func (a *Attendance) IsReviewed() bool {
	return a.ConfirmStatus == ConfirmConfirmed || a.ConfirmStatus == ConfirmApproved
}

// ComputeWorkMinutes derives worked minutes from clock times and a break.
// The elapsed span is rounded to whole minutes half-up; the result never
// goes negative even when the break exceeds the span.
func ComputeWorkMinutes(clockIn, clockOut time.Time, breakMinutes int) int {
	elapsed := int(math.Round(clockOut.Sub(clockIn).Minutes()))
	worked := elapsed - breakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseClockOnDate interprets an "HH:MM" string against the given calendar
// date in the given location. Corrections use this so resubmitted times
// land on the record's own date rather than the submission date.
func ParseClockOnDate(s string, date valueobject.Date, loc *time.Location) (time.Time, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q: expected HH:MM", s))
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return date.At(hour, minute, loc), nil
}
