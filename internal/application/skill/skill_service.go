package skill

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/skill"
)

// SkillService handles skill categories, skills and member evaluations
type SkillService struct {
	categoryRepo    skill.CategoryRepository
	skillRepo       skill.SkillRepository
	memberSkillRepo skill.MemberSkillRepository
	logger          *zap.Logger
}

// NewSkillService creates a new skill service
func NewSkillService(
	categoryRepo skill.CategoryRepository,
	skillRepo skill.SkillRepository,
	memberSkillRepo skill.MemberSkillRepository,
	logger *zap.Logger,
) *SkillService {
	return &SkillService{
		categoryRepo:    categoryRepo,
		skillRepo:       skillRepo,
		memberSkillRepo: memberSkillRepo,
		logger:          logger,
	}
}

// CreateCategory creates a skill category with a unique name
func (s *SkillService) CreateCategory(ctx context.Context, name string, sortOrder int) (*skill.SkillCategory, error) {
	taken, err := s.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category name is already in use")
	}
	category, err := skill.NewSkillCategory(name, sortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or reorders a category
func (s *SkillService) UpdateCategory(ctx context.Context, id uuid.UUID, name string, sortOrder int) (*skill.SkillCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}
	category.SortOrder = sortOrder
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category, its skills and all member skill
// history in one transaction
func (s *SkillService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.DeleteCascade(ctx, id)
}

// ListCategories returns all categories in sort order
func (s *SkillService) ListCategories(ctx context.Context) ([]*skill.SkillCategory, error) {
	return s.categoryRepo.FindAll(ctx)
}

// CreateSkill creates a skill under a category; the name must be unique
// within that category
func (s *SkillService) CreateSkill(ctx context.Context, categoryID uuid.UUID, name string) (*skill.Skill, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	taken, err := s.skillRepo.ExistsByNameInCategory(ctx, categoryID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Skill name is already in use in this category")
	}
	entry, err := skill.NewSkill(categoryID, name)
	if err != nil {
		return nil, err
	}
	if err := s.skillRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteSkill removes the skill and its member skill history
func (s *SkillService) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return s.skillRepo.DeleteCascade(ctx, id)
}

// ListSkills returns skills, optionally restricted to one category
func (s *SkillService) ListSkills(ctx context.Context, categoryID *uuid.UUID) ([]*skill.Skill, error) {
	if categoryID != nil {
		return s.skillRepo.FindByCategoryID(ctx, *categoryID)
	}
	return s.skillRepo.FindAll(ctx)
}

// Evaluate appends a member skill score to the history
func (s *SkillService) Evaluate(ctx context.Context, memberID, skillID uuid.UUID, score int, note string) (*skill.MemberSkill, error) {
	if _, err := s.skillRepo.FindByID(ctx, skillID); err != nil {
		return nil, err
	}
	entry, err := skill.NewMemberSkill(memberID, skillID, score, note)
	if err != nil {
		return nil, err
	}
	if err := s.memberSkillRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("skill evaluated",
		zap.String("member_id", memberID.String()),
		zap.String("skill_id", skillID.String()),
		zap.Int("score", score))
	return entry, nil
}

// History returns a member's full evaluation history, newest first
func (s *SkillService) History(ctx context.Context, memberID uuid.UUID) ([]*skill.MemberSkill, error) {
	return s.memberSkillRepo.FindByMemberID(ctx, memberID)
}

// SkillHistory returns a member's history for one skill, newest first
func (s *SkillService) SkillHistory(ctx context.Context, memberID, skillID uuid.UUID) ([]*skill.MemberSkill, error) {
	return s.memberSkillRepo.FindByMemberAndSkill(ctx, memberID, skillID)
}
