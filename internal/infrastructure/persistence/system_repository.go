package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/system"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormConfigRepository implements ConfigRepository using GORM
type GormConfigRepository struct {
	db *gorm.DB
}

var _ system.ConfigRepository = (*GormConfigRepository)(nil)

// NewGormConfigRepository creates a new GormConfigRepository
func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

// Upsert inserts or replaces the entry for its key
func (r *GormConfigRepository) Upsert(ctx context.Context, cfg *system.SystemConfig) error {
	model := models.SystemConfigModelFromDomain(cfg)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"value", "secret", "description", "updated_at",
			}),
		}).
		Create(model).Error
}

// FindByKey finds a config entry by key
func (r *GormConfigRepository) FindByKey(ctx context.Context, key string) (*system.SystemConfig, error) {
	var model models.SystemConfigModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all config entries sorted by key
func (r *GormConfigRepository) FindAll(ctx context.Context) ([]*system.SystemConfig, error) {
	var rows []models.SystemConfigModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	configs := make([]*system.SystemConfig, len(rows))
	for i := range rows {
		configs[i] = rows[i].ToDomain()
	}
	return configs, nil
}

// GormToolRepository implements ToolRepository using GORM
type GormToolRepository struct {
	db *gorm.DB
}

var _ system.ToolRepository = (*GormToolRepository)(nil)

// NewGormToolRepository creates a new GormToolRepository
func NewGormToolRepository(db *gorm.DB) *GormToolRepository {
	return &GormToolRepository{db: db}
}

// Create creates a new tool entry
func (r *GormToolRepository) Create(ctx context.Context, tool *system.MemberTool) error {
	model := models.MemberToolModelFromDomain(tool)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing tool entry
func (r *GormToolRepository) Update(ctx context.Context, tool *system.MemberTool) error {
	model := models.MemberToolModelFromDomain(tool)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a tool entry
func (r *GormToolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberToolModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a tool entry by ID
func (r *GormToolRepository) FindByID(ctx context.Context, id uuid.UUID) (*system.MemberTool, error) {
	var model models.MemberToolModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID returns a member's tool entries
func (r *GormToolRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*system.MemberTool, error) {
	var rows []models.MemberToolModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toolRowsToDomain(rows), nil
}

// FindAll returns all tool entries
func (r *GormToolRepository) FindAll(ctx context.Context) ([]*system.MemberTool, error) {
	var rows []models.MemberToolModel
	if err := r.db.WithContext(ctx).
		Order("member_id ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toolRowsToDomain(rows), nil
}

func toolRowsToDomain(rows []models.MemberToolModel) []*system.MemberTool {
	tools := make([]*system.MemberTool, len(rows))
	for i := range rows {
		tools[i] = rows[i].ToDomain()
	}
	return tools
}

// GormAuditRepository implements the audit Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

var _ audit.Repository = (*GormAuditRepository)(nil)

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append adds an entry to the trail
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.AuditLog) error {
	model := models.AuditLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindAll returns entries matching the filter, newest first, with the total count
func (r *GormAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]*audit.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogModel{})
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []models.AuditLogModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*audit.AuditLog, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, total, nil
}
