package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/notify"
)

// AttendanceService handles daily clock-in/out, corrections and review
type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	memberRepo     identity.MemberRepository
	notifier       notify.Notifier
	loc            *time.Location
	logger         *zap.Logger
	now            func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	memberRepo identity.MemberRepository,
	notifier notify.Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		notifier:       notifier,
		loc:            loc,
		logger:         logger,
		now:            time.Now,
	}
}

// ClockIn records the start of the member's day. An earlier clock-in on
// the same date is never overwritten; only the plan text and location
// are refreshed. The Slack announcement happens after the write.
func (s *AttendanceService) ClockIn(ctx context.Context, input ClockInInput) (*attendance.Attendance, error) {
	now := s.now().In(s.loc)
	today := valueobject.DateOf(now)

	record, err := s.attendanceRepo.FindByMemberAndDate(ctx, input.MemberID, today)
	if errors.Is(err, shared.ErrNotFound) {
		record, err = attendance.NewAttendance(input.MemberID, today)
	}
	if err != nil {
		return nil, err
	}

	if err := record.RecordClockIn(now, input.Plan, input.Location); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.announce(ctx, record.MemberID, fmt.Sprintf("出勤しました (%s)", now.Format("15:04")))
	return record, nil
}

// ClockOut records the end of the day and derives worked minutes.
// Without a prior clock-in the submission is rejected.
func (s *AttendanceService) ClockOut(ctx context.Context, input ClockOutInput) (*attendance.Attendance, error) {
	now := s.now().In(s.loc)
	today := valueobject.DateOf(now)

	record, err := s.attendanceRepo.FindByMemberAndDate(ctx, input.MemberID, today)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}

	if err := record.RecordClockOut(now, input.BreakMinutes, input.Done, input.Tomorrow); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.announce(ctx, record.MemberID, fmt.Sprintf("退勤しました (%s, 実働%d分)", now.Format("15:04"), record.WorkMinutes))
	return record, nil
}

// Correct resubmits clock values against the record's own date. The
// record always returns to modified/unconfirmed for another review pass.
func (s *AttendanceService) Correct(ctx context.Context, input CorrectInput) (*attendance.Attendance, error) {
	record, err := s.attendanceRepo.FindByID(ctx, input.AttendanceID)
	if err != nil {
		return nil, err
	}

	var clockIn, clockOut *time.Time
	if input.ClockIn != nil {
		t, err := attendance.ParseClockOnDate(*input.ClockIn, record.Date, s.loc)
		if err != nil {
			return nil, err
		}
		clockIn = &t
	}
	if input.ClockOut != nil {
		t, err := attendance.ParseClockOnDate(*input.ClockOut, record.Date, s.loc)
		if err != nil {
			return nil, err
		}
		clockOut = &t
	}

	if err := record.Correct(clockIn, clockOut, input.BreakMinutes); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// MarkAbsent records a member's day as an absence. The day row is
// created when none exists, and any recorded clock values are dropped.
func (s *AttendanceService) MarkAbsent(ctx context.Context, input MarkAbsentInput) (*attendance.Attendance, error) {
	record, err := s.attendanceRepo.FindByMemberAndDate(ctx, input.MemberID, input.Date)
	if errors.Is(err, shared.ErrNotFound) {
		record, err = attendance.NewAttendance(input.MemberID, input.Date)
	}
	if err != nil {
		return nil, err
	}

	record.MarkAbsent()
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Confirm sets only the review state of a record
func (s *AttendanceService) Confirm(ctx context.Context, input ConfirmInput) (*attendance.Attendance, error) {
	record, err := s.attendanceRepo.FindByID(ctx, input.AttendanceID)
	if err != nil {
		return nil, err
	}
	if err := record.SetConfirmStatus(input.Status); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns one record by ID
func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (*attendance.Attendance, error) {
	return s.attendanceRepo.FindByID(ctx, id)
}

// Today returns the member's record for the current date, if any
func (s *AttendanceService) Today(ctx context.Context, memberID uuid.UUID) (*attendance.Attendance, error) {
	today := valueobject.DateOf(s.now().In(s.loc))
	return s.attendanceRepo.FindByMemberAndDate(ctx, memberID, today)
}

// Month lists a member's records for a month with derived display status
func (s *AttendanceService) Month(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]DayView, error) {
	records, err := s.attendanceRepo.FindByMemberAndMonth(ctx, memberID, month)
	if err != nil {
		return nil, err
	}
	views := make([]DayView, len(records))
	for i, record := range records {
		views[i] = DayView{Record: record, DisplayStatus: record.DisplayStatus()}
	}
	return views, nil
}

// announce posts a best-effort Slack message. Failures are logged and
// never surfaced to the caller.
func (s *AttendanceService) announce(ctx context.Context, memberID uuid.UUID, text string) {
	name := memberID.String()
	if member, err := s.memberRepo.FindByID(ctx, memberID); err == nil {
		name = member.Name
	}
	if err := s.notifier.Notify(ctx, notify.CategoryAttendance, fmt.Sprintf("%s: %s", name, text)); err != nil {
		s.logger.Warn("attendance notification failed", zap.Error(err))
	}
}
