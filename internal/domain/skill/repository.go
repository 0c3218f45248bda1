package skill

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// CategoryRepository defines the interface for skill category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *SkillCategory) error
	Update(ctx context.Context, category *SkillCategory) error

	// DeleteCascade removes the category, its skills and all member skill
	// history in one transaction
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*SkillCategory, error)
	FindAll(ctx context.Context) ([]*SkillCategory, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// SkillRepository defines the interface for skill persistence
type SkillRepository interface {
	Create(ctx context.Context, skill *Skill) error

	// DeleteCascade removes the skill and its member skill history
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Skill, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*Skill, error)
	FindAll(ctx context.Context) ([]*Skill, error)
	ExistsByNameInCategory(ctx context.Context, categoryID uuid.UUID, name string) (bool, error)
}

// MemberSkillRepository defines the interface for evaluation history
type MemberSkillRepository interface {
	// Append adds a new evaluation; history is never rewritten
	Append(ctx context.Context, entry *MemberSkill) error

	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*MemberSkill, error)
	FindByMemberAndSkill(ctx context.Context, memberID, skillID uuid.UUID) ([]*MemberSkill, error)
}

// EvaluationRepository defines the interface for personnel evaluations
type EvaluationRepository interface {
	// Upsert inserts or replaces the (member, month) evaluation
	Upsert(ctx context.Context, evaluation *PersonnelEvaluation) error

	FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*PersonnelEvaluation, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*PersonnelEvaluation, error)
	FindByMonth(ctx context.Context, month valueobject.Month) ([]*PersonnelEvaluation, error)
}
