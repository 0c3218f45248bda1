package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// WorkSchedule is a member's planned attendance for one date, independent
// of whether the member actually clocked in. One row per (member, date).
type WorkSchedule struct {
	shared.BaseEntity
	MemberID  uuid.UUID
	Date      valueobject.Date
	DayOff    bool
	StartTime string
	EndTime   string
	Location  Location
}

// NewWorkSchedule creates a schedule entry. Working days need both start
// and end times in "HH:MM" form; day-off entries carry neither.
func NewWorkSchedule(memberID uuid.UUID, date valueobject.Date, dayOff bool, startTime, endTime string, location Location) (*WorkSchedule, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	s := &WorkSchedule{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		Date:       date,
		DayOff:     dayOff,
		Location:   LocationOffice,
	}
	if location != "" {
		if !location.IsValid() {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Unknown location")
		}
		s.Location = location
	}
	if dayOff {
		return s, nil
	}
	if !clockPattern.MatchString(startTime) || !clockPattern.MatchString(endTime) {
		return nil, shared.NewDomainError("INVALID_TIME", "Start and end times must be HH:MM")
	}
	s.StartTime = startTime
	s.EndTime = endTime
	return s, nil
}

// Reschedule replaces the entry's planned values in place
func (s *WorkSchedule) Reschedule(dayOff bool, startTime, endTime string, location Location) error {
	replacement, err := NewWorkSchedule(s.MemberID, s.Date, dayOff, startTime, endTime, location)
	if err != nil {
		return err
	}
	s.DayOff = replacement.DayOff
	s.StartTime = replacement.StartTime
	s.EndTime = replacement.EndTime
	s.Location = replacement.Location
	s.Touch()
	return nil
}

// NextWeekRange returns the Monday through Sunday of the week after the
// given date. The Monday is always strictly after the date: on a Sunday
// the window starts the very next day, and on a Monday it starts in
// seven days.
func NextWeekRange(today valueobject.Date) (start, end valueobject.Date) {
	offset := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	start = today.AddDays(offset)
	return start, start.AddDays(6)
}
