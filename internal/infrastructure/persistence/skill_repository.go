package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/domain/skill"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

var _ skill.CategoryRepository = (*GormCategoryRepository)(nil)

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *skill.SkillCategory) error {
	model := models.SkillCategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing category
func (r *GormCategoryRepository) Update(ctx context.Context, category *skill.SkillCategory) error {
	model := models.SkillCategoryModelFromDomain(category)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the category, its skills and all member skill
// history in one transaction
func (r *GormCategoryRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var skillIDs []uuid.UUID
		if err := tx.Model(&models.SkillModel{}).
			Where("category_id = ?", id).
			Pluck("id", &skillIDs).Error; err != nil {
			return err
		}
		if len(skillIDs) > 0 {
			if err := tx.Where("skill_id IN ?", skillIDs).
				Delete(&models.MemberSkillModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).
				Delete(&models.SkillModel{}).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.SkillCategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*skill.SkillCategory, error) {
	var model models.SkillCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all categories in sort order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*skill.SkillCategory, error) {
	var rows []models.SkillCategoryModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*skill.SkillCategory, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

// ExistsByName checks if a category name is already taken
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SkillCategoryModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormSkillRepository implements SkillRepository using GORM
type GormSkillRepository struct {
	db *gorm.DB
}

var _ skill.SkillRepository = (*GormSkillRepository)(nil)

// NewGormSkillRepository creates a new GormSkillRepository
func NewGormSkillRepository(db *gorm.DB) *GormSkillRepository {
	return &GormSkillRepository{db: db}
}

// Create creates a new skill
func (r *GormSkillRepository) Create(ctx context.Context, s *skill.Skill) error {
	model := models.SkillModelFromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteCascade removes the skill and its member skill history
func (r *GormSkillRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).
			Delete(&models.MemberSkillModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SkillModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a skill by ID
func (r *GormSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	var model models.SkillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategoryID returns a category's skills
func (r *GormSkillRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*skill.Skill, error) {
	var rows []models.SkillModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return skillRowsToDomain(rows), nil
}

// FindAll returns all skills
func (r *GormSkillRepository) FindAll(ctx context.Context) ([]*skill.Skill, error) {
	var rows []models.SkillModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return skillRowsToDomain(rows), nil
}

// ExistsByNameInCategory checks if a skill name is taken within a category
func (r *GormSkillRepository) ExistsByNameInCategory(ctx context.Context, categoryID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SkillModel{}).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func skillRowsToDomain(rows []models.SkillModel) []*skill.Skill {
	skills := make([]*skill.Skill, len(rows))
	for i := range rows {
		skills[i] = rows[i].ToDomain()
	}
	return skills
}

// GormMemberSkillRepository implements MemberSkillRepository using GORM
type GormMemberSkillRepository struct {
	db *gorm.DB
}

var _ skill.MemberSkillRepository = (*GormMemberSkillRepository)(nil)

// NewGormMemberSkillRepository creates a new GormMemberSkillRepository
func NewGormMemberSkillRepository(db *gorm.DB) *GormMemberSkillRepository {
	return &GormMemberSkillRepository{db: db}
}

// Append adds a new evaluation; history is never rewritten
func (r *GormMemberSkillRepository) Append(ctx context.Context, entry *skill.MemberSkill) error {
	model := models.MemberSkillModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByMemberID returns a member's full evaluation history, newest first
func (r *GormMemberSkillRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*skill.MemberSkill, error) {
	return r.findMemberSkills(ctx, "member_id = ?", memberID)
}

// FindByMemberAndSkill returns a member's history for one skill, newest first
func (r *GormMemberSkillRepository) FindByMemberAndSkill(ctx context.Context, memberID, skillID uuid.UUID) ([]*skill.MemberSkill, error) {
	var rows []models.MemberSkillModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND skill_id = ?", memberID, skillID).
		Order("evaluated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return memberSkillRowsToDomain(rows), nil
}

func (r *GormMemberSkillRepository) findMemberSkills(ctx context.Context, query string, arg any) ([]*skill.MemberSkill, error) {
	var rows []models.MemberSkillModel
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("evaluated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return memberSkillRowsToDomain(rows), nil
}

func memberSkillRowsToDomain(rows []models.MemberSkillModel) []*skill.MemberSkill {
	entries := make([]*skill.MemberSkill, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries
}

// GormEvaluationRepository implements EvaluationRepository using GORM
type GormEvaluationRepository struct {
	db *gorm.DB
}

var _ skill.EvaluationRepository = (*GormEvaluationRepository)(nil)

// NewGormEvaluationRepository creates a new GormEvaluationRepository
func NewGormEvaluationRepository(db *gorm.DB) *GormEvaluationRepository {
	return &GormEvaluationRepository{db: db}
}

// Upsert inserts or replaces the (member, month) evaluation
func (r *GormEvaluationRepository) Upsert(ctx context.Context, evaluation *skill.PersonnelEvaluation) error {
	model := models.EvaluationModelFromDomain(evaluation)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"performance", "attitude", "skill_score", "comment", "evaluated_by_id", "updated_at",
			}),
		}).
		Create(model).Error
}

// FindByMemberAndMonth finds the evaluation for one member and month
func (r *GormEvaluationRepository) FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*skill.PersonnelEvaluation, error) {
	var model models.EvaluationModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND month = ?", memberID, month.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID returns a member's evaluations across months
func (r *GormEvaluationRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*skill.PersonnelEvaluation, error) {
	var rows []models.EvaluationModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("month DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return evaluationRowsToDomain(rows), nil
}

// FindByMonth returns all members' evaluations for a month
func (r *GormEvaluationRepository) FindByMonth(ctx context.Context, month valueobject.Month) ([]*skill.PersonnelEvaluation, error) {
	var rows []models.EvaluationModel
	if err := r.db.WithContext(ctx).
		Where("month = ?", month.String()).
		Order("member_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return evaluationRowsToDomain(rows), nil
}

func evaluationRowsToDomain(rows []models.EvaluationModel) []*skill.PersonnelEvaluation {
	evaluations := make([]*skill.PersonnelEvaluation, len(rows))
	for i := range rows {
		evaluations[i] = rows[i].ToDomain()
	}
	return evaluations
}
