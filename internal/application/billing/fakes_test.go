package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/notify"
)

type memoryInvoiceRepo struct {
	invoices map[uuid.UUID]*billing.Invoice
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{invoices: make(map[uuid.UUID]*billing.Invoice)}
}

func (r *memoryInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *memoryInvoiceRepo) UpdateStatus(_ context.Context, invoice *billing.Invoice) error {
	if _, ok := r.invoices[invoice.ID]; !ok {
		return shared.ErrNotFound
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *memoryInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	if inv, ok := r.invoices[id]; ok {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryInvoiceRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) (*billing.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.MemberID == memberID && inv.Month == month {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryInvoiceRepo) FindByMonth(_ context.Context, month valueobject.Month) ([]*billing.Invoice, error) {
	out := make([]*billing.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.Month == month {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memoryInvoiceRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) ([]*billing.Invoice, error) {
	out := make([]*billing.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.MemberID == memberID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memoryInvoiceRepo) NextSequence(_ context.Context, month valueobject.Month) (int, error) {
	count := 0
	for _, inv := range r.invoices {
		if inv.Month == month {
			count++
		}
	}
	return count + 1, nil
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
	if _, ok := r.members[member.ID]; !ok {
		return shared.ErrNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Member, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryMemberRepo) FindAll(_ context.Context, filter identity.MemberFilter) ([]*identity.Member, int64, error) {
	out := make([]*identity.Member, 0)
	for _, m := range r.members {
		if !filter.IncludeRetired && !m.IsActive() {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *memoryMemberRepo) FindActive(_ context.Context) ([]*identity.Member, error) {
	out := make([]*identity.Member, 0)
	for _, m := range r.members {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

type memoryAttendanceRepo struct {
	records map[uuid.UUID]*attendance.Attendance
}

func newMemoryAttendanceRepo() *memoryAttendanceRepo {
	return &memoryAttendanceRepo{records: make(map[uuid.UUID]*attendance.Attendance)}
}

func (r *memoryAttendanceRepo) Upsert(_ context.Context, record *attendance.Attendance) error {
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
	if rec, ok := r.records[id]; ok {
		return rec, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAttendanceRepo) FindByMemberAndDate(_ context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.Attendance, error) {
	for _, rec := range r.records {
		if rec.MemberID == memberID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAttendanceRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.Attendance, error) {
	out := make([]*attendance.Attendance, 0)
	for _, rec := range r.records {
		if rec.MemberID == memberID && rec.Date.MonthOf() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryAttendanceRepo) FindByDateRange(_ context.Context, from, to valueobject.Date) ([]*attendance.Attendance, error) {
	out := make([]*attendance.Attendance, 0)
	for _, rec := range r.records {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryAttendanceRepo) FindByMembersAndMonth(ctx context.Context, memberIDs []uuid.UUID, month valueobject.Month) (map[uuid.UUID][]*attendance.Attendance, error) {
	out := make(map[uuid.UUID][]*attendance.Attendance, len(memberIDs))
	for _, id := range memberIDs {
		records, err := r.FindByMemberAndMonth(ctx, id, month)
		if err != nil {
			return nil, err
		}
		out[id] = records
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
	r.entries[schedule.ID] = schedule
	return nil
}

func (r *memoryScheduleRepo) UpsertAll(ctx context.Context, schedules []*attendance.WorkSchedule) error {
	for _, s := range schedules {
		if err := r.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryScheduleRepo) FindByMemberAndDate(_ context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.WorkSchedule, error) {
	for _, s := range r.entries {
		if s.MemberID == memberID && s.Date.Equal(date) {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryScheduleRepo) FindByDateRange(_ context.Context, from, to valueobject.Date) ([]*attendance.WorkSchedule, error) {
	out := make([]*attendance.WorkSchedule, 0)
	for _, s := range r.entries {
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) FindByMemberAndMonth(_ context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.WorkSchedule, error) {
	out := make([]*attendance.WorkSchedule, 0)
	for _, s := range r.entries {
		if s.MemberID == memberID && s.Date.MonthOf() == month {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryScheduleRepo) CountByMemberInRange(_ context.Context, memberID uuid.UUID, from, to valueobject.Date) (int64, error) {
	var count int64
	for _, s := range r.entries {
		if s.MemberID == memberID && !s.Date.Before(from) && !s.Date.After(to) {
			count++
		}
	}
	return count, nil
}

type stubRenderer struct {
	payload []byte
	err     error
}

func (r *stubRenderer) Render(_ *billing.Invoice, _ *identity.Member) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.payload, nil
}

type sentMail struct {
	to          string
	subject     string
	body        string
	attachments []notify.Attachment
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string, attachments ...notify.Attachment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body, attachments: attachments})
	return nil
}

func (m *recordingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func testMember(t *testing.T, name string, salaryType identity.SalaryType, amount int64) *identity.Member {
	t.Helper()
	member, err := identity.NewMember(name, identity.CompanyAltius, identity.EmploymentEmployee,
		salaryType, decimal.NewFromInt(amount), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}

func mustMonth(t *testing.T, year int, month time.Month) valueobject.Month {
	t.Helper()
	m, err := valueobject.NewMonth(year, month)
	require.NoError(t, err)
	return m
}
