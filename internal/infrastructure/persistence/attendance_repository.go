package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// monthRange returns the first and last calendar dates of a month as
// midnight timestamps for range queries against date columns.
func monthRange(m valueobject.Month) (from, to valueobject.Date) {
	from = valueobject.NewDate(m.Year(), m.Month(), 1)
	to = from.AddDays(m.Days() - 1)
	return from, to
}

// GormAttendanceRepository implements AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

var _ attendance.AttendanceRepository = (*GormAttendanceRepository)(nil)

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Upsert inserts the record or replaces the existing (member, date) row
func (r *GormAttendanceRepository) Upsert(ctx context.Context, record *attendance.Attendance) error {
	model := models.AttendanceModelFromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"clock_in", "clock_out", "break_minutes", "work_minutes",
				"plan_text", "done_text", "tomorrow_text",
				"status", "confirm_status", "notified", "location", "updated_at",
			}),
		}).
		Create(model).Error
}

// Update updates an existing record by ID
func (r *GormAttendanceRepository) Update(ctx context.Context, record *attendance.Attendance) error {
	model := models.AttendanceModelFromDomain(record)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a record by ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberAndDate finds the record for one member and date
func (r *GormAttendanceRepository) FindByMemberAndDate(ctx context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, date.Time()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberAndMonth returns a member's records for a month, ordered by date
func (r *GormAttendanceRepository) FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.Attendance, error) {
	from, to := monthRange(month)
	var rows []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND date BETWEEN ? AND ?", memberID, from.Time(), to.Time()).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return attendanceRowsToDomain(rows), nil
}

// FindByDateRange returns all records between from and to inclusive
func (r *GormAttendanceRepository) FindByDateRange(ctx context.Context, from, to valueobject.Date) ([]*attendance.Attendance, error) {
	var rows []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from.Time(), to.Time()).
		Order("date ASC, member_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return attendanceRowsToDomain(rows), nil
}

// FindByMembersAndMonth returns records for a set of members in a month,
// grouped by member
func (r *GormAttendanceRepository) FindByMembersAndMonth(ctx context.Context, memberIDs []uuid.UUID, month valueobject.Month) (map[uuid.UUID][]*attendance.Attendance, error) {
	grouped := make(map[uuid.UUID][]*attendance.Attendance, len(memberIDs))
	if len(memberIDs) == 0 {
		return grouped, nil
	}
	from, to := monthRange(month)
	var rows []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("member_id IN ? AND date BETWEEN ? AND ?", memberIDs, from.Time(), to.Time()).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		record := rows[i].ToDomain()
		grouped[record.MemberID] = append(grouped[record.MemberID], record)
	}
	return grouped, nil
}

func attendanceRowsToDomain(rows []models.AttendanceModel) []*attendance.Attendance {
	records := make([]*attendance.Attendance, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records
}

// GormWorkScheduleRepository implements WorkScheduleRepository using GORM
type GormWorkScheduleRepository struct {
	db *gorm.DB
}

var _ attendance.WorkScheduleRepository = (*GormWorkScheduleRepository)(nil)

// NewGormWorkScheduleRepository creates a new GormWorkScheduleRepository
func NewGormWorkScheduleRepository(db *gorm.DB) *GormWorkScheduleRepository {
	return &GormWorkScheduleRepository{db: db}
}

// Upsert inserts or replaces the (member, date) schedule entry
func (r *GormWorkScheduleRepository) Upsert(ctx context.Context, schedule *attendance.WorkSchedule) error {
	model := models.WorkScheduleModelFromDomain(schedule)
	return r.db.WithContext(ctx).
		Clauses(scheduleConflictClause()).
		Create(model).Error
}

// UpsertAll upserts a batch of entries in one transaction
func (r *GormWorkScheduleRepository) UpsertAll(ctx context.Context, schedules []*attendance.WorkSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	rows := make([]*models.WorkScheduleModel, len(schedules))
	for i, s := range schedules {
		rows[i] = models.WorkScheduleModelFromDomain(s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(scheduleConflictClause()).Create(&rows).Error
	})
}

func scheduleConflictClause() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "member_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"day_off", "start_time", "end_time", "location", "updated_at",
		}),
	}
}

// FindByMemberAndDate finds one member's entry for a date
func (r *GormWorkScheduleRepository) FindByMemberAndDate(ctx context.Context, memberID uuid.UUID, date valueobject.Date) (*attendance.WorkSchedule, error) {
	var model models.WorkScheduleModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, date.Time()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDateRange returns all entries between from and to inclusive
func (r *GormWorkScheduleRepository) FindByDateRange(ctx context.Context, from, to valueobject.Date) ([]*attendance.WorkSchedule, error) {
	var rows []models.WorkScheduleModel
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from.Time(), to.Time()).
		Order("date ASC, member_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return scheduleRowsToDomain(rows), nil
}

// FindByMemberAndMonth returns a member's entries for a month, ordered by date
func (r *GormWorkScheduleRepository) FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*attendance.WorkSchedule, error) {
	from, to := monthRange(month)
	var rows []models.WorkScheduleModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND date BETWEEN ? AND ?", memberID, from.Time(), to.Time()).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return scheduleRowsToDomain(rows), nil
}

// CountByMemberInRange counts a member's entries between from and to inclusive
func (r *GormWorkScheduleRepository) CountByMemberInRange(ctx context.Context, memberID uuid.UUID, from, to valueobject.Date) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkScheduleModel{}).
		Where("member_id = ? AND date BETWEEN ? AND ?", memberID, from.Time(), to.Time()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func scheduleRowsToDomain(rows []models.WorkScheduleModel) []*attendance.WorkSchedule {
	schedules := make([]*attendance.WorkSchedule, len(rows))
	for i := range rows {
		schedules[i] = rows[i].ToDomain()
	}
	return schedules
}
