package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
)

// SkillCategory groups skills, e.g. languages, frameworks, soft skills
type SkillCategory struct {
	shared.BaseEntity
	Name      string
	SortOrder int
}

// NewSkillCategory creates a category
func NewSkillCategory(name string, sortOrder int) (*SkillCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return &SkillCategory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		SortOrder:  sortOrder,
	}, nil
}

// Rename changes the category name
func (c *SkillCategory) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// Skill is one evaluable skill, unique by name within its category
type Skill struct {
	shared.BaseEntity
	CategoryID uuid.UUID
	Name       string
}

// NewSkill creates a skill under a category
func NewSkill(categoryID uuid.UUID, name string) (*Skill, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Skill name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Skill name cannot exceed 100 characters")
	}
	return &Skill{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: categoryID,
		Name:       name,
	}, nil
}

// MemberSkill is one evaluation of a member on a skill. History is
// append-only; newer evaluations never overwrite older ones.
type MemberSkill struct {
	shared.BaseEntity
	MemberID    uuid.UUID
	SkillID     uuid.UUID
	Score       int
	Note        string
	EvaluatedAt time.Time
}

// NewMemberSkill appends an evaluation for a member. Scores run 1 to 5.
func NewMemberSkill(memberID, skillID uuid.UUID, score int, note string) (*MemberSkill, error) {
	if memberID == uuid.Nil || skillID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member and skill are required")
	}
	if score < 1 || score > 5 {
		return nil, shared.NewDomainError("INVALID_SCORE", "Score must be between 1 and 5")
	}
	return &MemberSkill{
		BaseEntity:  shared.NewBaseEntity(),
		MemberID:    memberID,
		SkillID:     skillID,
		Score:       score,
		Note:        note,
		EvaluatedAt: time.Now(),
	}, nil
}
