package attendance

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// AttendanceRepository defines the interface for attendance persistence
type AttendanceRepository interface {
	// Upsert inserts the record or replaces the existing (member, date) row.
	// The unique constraint on that pair resolves concurrent submissions.
	Upsert(ctx context.Context, record *Attendance) error

	// Update updates an existing record by ID
	Update(ctx context.Context, record *Attendance) error

	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error)

	// FindByMemberAndDate finds the record for one member and date
	FindByMemberAndDate(ctx context.Context, memberID uuid.UUID, date valueobject.Date) (*Attendance, error)

	// FindByMemberAndMonth returns a member's records for a month, ordered by date
	FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*Attendance, error)

	// FindByDateRange returns all records between from and to inclusive
	FindByDateRange(ctx context.Context, from, to valueobject.Date) ([]*Attendance, error)

	// FindByMembersAndMonth returns records for a set of members in a month,
	// grouped by member
	FindByMembersAndMonth(ctx context.Context, memberIDs []uuid.UUID, month valueobject.Month) (map[uuid.UUID][]*Attendance, error)
}

// WorkScheduleRepository defines the interface for schedule persistence
type WorkScheduleRepository interface {
	// Upsert inserts or replaces the (member, date) schedule entry
	Upsert(ctx context.Context, schedule *WorkSchedule) error

	// UpsertAll upserts a batch of entries in one transaction
	UpsertAll(ctx context.Context, schedules []*WorkSchedule) error

	// FindByMemberAndDate finds one member's entry for a date
	FindByMemberAndDate(ctx context.Context, memberID uuid.UUID, date valueobject.Date) (*WorkSchedule, error)

	// FindByDateRange returns all entries between from and to inclusive
	FindByDateRange(ctx context.Context, from, to valueobject.Date) ([]*WorkSchedule, error)

	// FindByMemberAndMonth returns a member's entries for a month, ordered by date
	FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*WorkSchedule, error)

	// CountByMemberInRange counts a member's entries between from and to inclusive
	CountByMemberInRange(ctx context.Context, memberID uuid.UUID, from, to valueobject.Date) (int64, error)
}
