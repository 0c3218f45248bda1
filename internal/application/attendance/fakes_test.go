package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/notify"
)

// In-memory repositories and a recording notifier for the tests in this
// package.

type memoryAttendanceRepo struct {
	records map[uuid.UUID]*attendance.Attendance
}

func newMemoryAttendanceRepo() *memoryAttendanceRepo {
	return &memoryAttendanceRepo{records: make(map[uuid.UUID]*attendance.Attendance)}
}

func (r *memoryAttendanceRepo) Upsert(_ context.Context, record *attendance.Attendance) error {
	for id, existing := range r.records {
		if existing.MemberID == record.MemberID && existing.Date.Equal(record.Date) && id != record.ID {
			delete(r.records, id)
		}
	}
	r.records[record.ID] = record
	return nil
}

func (r *memoryAttendanceRepo) Update(_ context.Context, record *attendance.Attendance) error {
	if _, ok := r.records[record.ID]; !ok {
		return shared.ErrNotFound
	}
	r.records[record.ID] = record
	return nil
}

func (r *memoryAttendanceRepo) FindByID(_ context.Context, id uuid.UUID) (*attendance.Attendance, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

func (r *memoryAttendanceRepo) FindByMemberAndDate(_ context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.Attendance, error) {
	for _, record := range r.records {
		if record.MemberID == memberID && record.Date.Equal(date) {
			return record, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAttendanceRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, record := range r.records {
		if record.MemberID == memberID && record.Date.MonthOf() == month {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *memoryAttendanceRepo) FindByDateRange(_ context.Context, from, to valueobject.Date) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, record := range r.records {
		if !record.Date.Before(from) && !to.Before(record.Date) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *memoryAttendanceRepo) FindByMembersAndMonth(ctx context.Context, memberIDs []uuid.UUID, month valueobject.Month) (map[uuid.UUID][]*attendance.Attendance, error) {
	out := make(map[uuid.UUID][]*attendance.Attendance)
	for _, id := range memberIDs {
		records, err := r.FindByMemberAndMonth(ctx, id, month)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			out[id] = records
		}
	}
	return out, nil
}

type memoryScheduleRepo struct {
	entries map[uuid.UUID]*attendance.WorkSchedule
}

func newMemoryScheduleRepo() *memoryScheduleRepo {
	return &memoryScheduleRepo{entries: make(map[uuid.UUID]*attendance.WorkSchedule)}
}

func (r *memoryScheduleRepo) Upsert(_ context.Context, schedule *attendance.WorkSchedule) error {
	for id, existing := range r.entries {
		if existing.MemberID == schedule.MemberID && existing.Date.Equal(schedule.Date) && id != schedule.ID {
			delete(r.entries, id)
		}
	}
	r.entries[schedule.ID] = schedule
	return nil
}

func (r *memoryScheduleRepo) UpsertAll(ctx context.Context, schedules []*attendance.WorkSchedule) error {
	for _, schedule := range schedules {
		if err := r.Upsert(ctx, schedule); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryScheduleRepo) FindByMemberAndDate(_ context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.WorkSchedule, error) {
	for _, entry := range r.entries {
		if entry.MemberID == memberID && entry.Date.Equal(date) {
			return entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryScheduleRepo) FindByDateRange(_ context.Context, from, to valueobject.Date) ([]*attendance.WorkSchedule, error) {
	var out []*attendance.WorkSchedule
	for _, entry := range r.entries {
		if !entry.Date.Before(from) && !to.Before(entry.Date) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.WorkSchedule, error) {
	var out []*attendance.WorkSchedule
	for _, entry := range r.entries {
		if entry.MemberID == memberID && entry.Date.MonthOf() == month {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) CountByMemberInRange(_ context.Context, memberID uuid.UUID, from, to valueobject.Date) (int64, error) {
	var count int64
	for _, entry := range r.entries {
		if entry.MemberID == memberID && !entry.Date.Before(from) && !to.Before(entry.Date) {
			count++
		}
	}
	return count, nil
}

type memoryMemberRepo struct {
	members map[uuid.UUID]*identity.Member
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{members: make(map[uuid.UUID]*identity.Member)}
}

func (r *memoryMemberRepo) Create(_ context.Context, member *identity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) Update(_ context.Context, member *identity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return member, nil
}

func (r *memoryMemberRepo) FindAll(_ context.Context, _ identity.MemberFilter) ([]*identity.Member, int64, error) {
	var out []*identity.Member
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *memoryMemberRepo) FindActive(_ context.Context) ([]*identity.Member, error) {
	var out []*identity.Member
	for _, m := range r.members {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

type memoryAssignmentRepo struct {
	assignments map[uuid.UUID]*project.ProjectAssignment
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uuid.UUID]*project.ProjectAssignment)}
}

func (r *memoryAssignmentRepo) Create(_ context.Context, a *project.ProjectAssignment) error {
	r.assignments[a.ID] = a
	return nil
}

func (r *memoryAssignmentRepo) Update(_ context.Context, a *project.ProjectAssignment) error {
	r.assignments[a.ID] = a
	return nil
}

func (r *memoryAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.assignments, id)
	return nil
}

func (r *memoryAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*project.ProjectAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (r *memoryAssignmentRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) ([]*project.ProjectAssignment, error) {
	var out []*project.ProjectAssignment
	for _, a := range r.assignments {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAssignmentRepo) FindByProjectID(_ context.Context, projectID uuid.UUID) ([]*project.ProjectAssignment, error) {
	var out []*project.ProjectAssignment
	for _, a := range r.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryAssignmentRepo) FindAll(_ context.Context) ([]*project.ProjectAssignment, error) {
	var out []*project.ProjectAssignment
	for _, a := range r.assignments {
		out = append(out, a)
	}
	return out, nil
}

type memoryProjectRepo struct {
	projects map[uuid.UUID]*project.Project
}

func newMemoryProjectRepo() *memoryProjectRepo {
	return &memoryProjectRepo{projects: make(map[uuid.UUID]*project.Project)}
}

func (r *memoryProjectRepo) Create(_ context.Context, p *project.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memoryProjectRepo) Update(_ context.Context, p *project.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memoryProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *memoryProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryProjectRepo) FindAll(_ context.Context, activeOnly bool) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range r.projects {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProjectRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*project.Project, error) {
	var out []*project.Project
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// recordingNotifier captures every message for assertion
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ notify.Category, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func testMember(t *testing.T, name string) *identity.Member {
	t.Helper()
	member, err := identity.NewMember(name, identity.CompanyAltius,
		identity.EmploymentEmployee, identity.SalaryMonthly,
		decimal.NewFromInt(300000), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}
