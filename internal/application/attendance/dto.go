package attendance

import (
	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// ClockInInput contains the input for a clock-in submission
type ClockInInput struct {
	MemberID uuid.UUID
	Plan     string
	Location attendance.Location
}

// ClockOutInput contains the input for a clock-out submission
type ClockOutInput struct {
	MemberID     uuid.UUID
	BreakMinutes int
	Done         string
	Tomorrow     string
}

// CorrectInput resubmits clock values for a record. Nil fields keep the
// stored value. Times are "HH:MM" against the record's own date.
type CorrectInput struct {
	AttendanceID uuid.UUID
	ClockIn      *string
	ClockOut     *string
	BreakMinutes *int
}

// MarkAbsentInput records a member's day as an absence
type MarkAbsentInput struct {
	MemberID uuid.UUID
	Date     valueobject.Date
}

// ConfirmInput sets the review state of a record
type ConfirmInput struct {
	AttendanceID uuid.UUID
	Status       attendance.ConfirmStatus
}

// DayView is one attendance row with its derived display status
type DayView struct {
	Record        *attendance.Attendance
	DisplayStatus attendance.DisplayStatus
}

// ScheduleEntryInput is one (date, working hours) entry for upsert
type ScheduleEntryInput struct {
	Date      valueobject.Date
	DayOff    bool
	StartTime string
	EndTime   string
	Location  attendance.Location
}

// SubmitScheduleInput upserts a batch of schedule entries for a member
type SubmitScheduleInput struct {
	MemberID uuid.UUID
	Entries  []ScheduleEntryInput
}

// CalendarDay merges one member's schedule, attendance and assignments
// for a single date
type CalendarDay struct {
	Date          valueobject.Date
	MemberID      uuid.UUID
	Schedule      *attendance.WorkSchedule
	Attendance    *attendance.Attendance
	DisplayStatus attendance.DisplayStatus
	Assignments   []*project.ProjectAssignment
}

// Calendar is the aggregation over an inclusive date range
type Calendar struct {
	From     valueobject.Date
	To       valueobject.Date
	Days     []CalendarDay
	Projects map[uuid.UUID]*project.Project
}

// UnsubmittedReport lists members with no schedule rows for next week
type UnsubmittedReport struct {
	WeekStart valueobject.Date
	WeekEnd   valueobject.Date
	Members   []*identity.Member
}
