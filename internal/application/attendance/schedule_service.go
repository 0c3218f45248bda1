package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/notify"
)

// ScheduleService handles work schedules, the calendar aggregation and
// the unsubmitted-schedule report
type ScheduleService struct {
	scheduleRepo   attendance.WorkScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	memberRepo     identity.MemberRepository
	assignmentRepo project.AssignmentRepository
	projectRepo    project.ProjectRepository
	notifier       notify.Notifier
	loc            *time.Location
	logger         *zap.Logger
	now            func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	scheduleRepo attendance.WorkScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	memberRepo identity.MemberRepository,
	assignmentRepo project.AssignmentRepository,
	projectRepo project.ProjectRepository,
	notifier notify.Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		notifier:       notifier,
		loc:            loc,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit upserts a batch of schedule entries for one member
func (s *ScheduleService) Submit(ctx context.Context, input SubmitScheduleInput) ([]*attendance.WorkSchedule, error) {
	schedules := make([]*attendance.WorkSchedule, 0, len(input.Entries))
	for _, entry := range input.Entries {
		schedule, err := attendance.NewWorkSchedule(input.MemberID, entry.Date,
			entry.DayOff, entry.StartTime, entry.EndTime, entry.Location)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := s.scheduleRepo.UpsertAll(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// MemberMonth returns a member's schedule entries for a month
func (s *ScheduleService) MemberMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.WorkSchedule, error) {
	return s.scheduleRepo.FindByMemberAndMonth(ctx, memberID, month)
}

// Calendar aggregates schedules, attendance and active assignments for
// every member day in the inclusive range, plus the referenced projects.
func (s *ScheduleService) Calendar(ctx context.Context, from, to valueobject.Date) (*Calendar, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Range end cannot precede start")
	}

	schedules, err := s.scheduleRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	type dayKey struct {
		member uuid.UUID
		date   string
	}
	scheduleByDay := make(map[dayKey]*attendance.WorkSchedule, len(schedules))
	for _, entry := range schedules {
		scheduleByDay[dayKey{entry.MemberID, entry.Date.String()}] = entry
	}
	recordByDay := make(map[dayKey]*attendance.Attendance, len(records))
	for _, record := range records {
		recordByDay[dayKey{record.MemberID, record.Date.String()}] = record
	}
	assignmentsByMember := make(map[uuid.UUID][]*project.ProjectAssignment)
	for _, a := range assignments {
		assignmentsByMember[a.MemberID] = append(assignmentsByMember[a.MemberID], a)
	}

	memberIDs := make(map[uuid.UUID]bool)
	for k := range scheduleByDay {
		memberIDs[k.member] = true
	}
	for k := range recordByDay {
		memberIDs[k.member] = true
	}

	cal := &Calendar{From: from, To: to, Projects: make(map[uuid.UUID]*project.Project)}
	projectIDs := make(map[uuid.UUID]bool)

	for d := from; !d.After(to); d = d.AddDays(1) {
		for memberID := range memberIDs {
			key := dayKey{memberID, d.String()}
			schedule := scheduleByDay[key]
			record := recordByDay[key]
			if schedule == nil && record == nil {
				continue
			}

			var active []*project.ProjectAssignment
			for _, a := range assignmentsByMember[memberID] {
				if a.ActiveOn(d) {
					active = append(active, a)
					projectIDs[a.ProjectID] = true
				}
			}

			day := CalendarDay{
				Date:        d,
				MemberID:    memberID,
				Schedule:    schedule,
				Attendance:  record,
				Assignments: active,
			}
			if record != nil {
				day.DisplayStatus = record.DisplayStatus()
			} else {
				day.DisplayStatus = attendance.DisplayNotStarted
			}
			cal.Days = append(cal.Days, day)
		}
	}

	if len(projectIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(projectIDs))
		for id := range projectIDs {
			ids = append(ids, id)
		}
		projects, err := s.projectRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			cal.Projects[p.ID] = p
		}
	}
	return cal, nil
}

// Unsubmitted reports active members with zero schedule entries in next
// week's Monday to Sunday window, optionally announcing them to Slack.
func (s *ScheduleService) Unsubmitted(ctx context.Context, announce bool) (*UnsubmittedReport, error) {
	today := valueobject.DateOf(s.now().In(s.loc))
	start, end := attendance.NextWeekRange(today)

	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &UnsubmittedReport{WeekStart: start, WeekEnd: end}
	for _, member := range members {
		count, err := s.scheduleRepo.CountByMemberInRange(ctx, member.ID, start, end)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			report.Members = append(report.Members, member)
		}
	}

	if announce && len(report.Members) > 0 {
		names := make([]string, len(report.Members))
		for i, m := range report.Members {
			names[i] = m.Name
		}
		message := fmt.Sprintf("来週(%s〜%s)の勤務予定が未提出です: %s",
			start.String(), end.String(), strings.Join(names, ", "))
		if err := s.notifier.Notify(ctx, notify.CategorySchedule, message); err != nil {
			s.logger.Warn("schedule notification failed", zap.Error(err))
		}
	}
	return report, nil
}
