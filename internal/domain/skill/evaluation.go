package skill

import (
	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// PersonnelEvaluation is a monthly performance/attitude/skill score
// triple for one member. Unique per (member, month); admin-only writes.
type PersonnelEvaluation struct {
	shared.BaseEntity
	MemberID      uuid.UUID
	Month         valueobject.Month
	Performance   int
	Attitude      int
	SkillScore    int
	Comment       string
	EvaluatedByID uuid.UUID
}

// NewPersonnelEvaluation creates a monthly evaluation. Scores run 1 to 5.
func NewPersonnelEvaluation(memberID uuid.UUID, month valueobject.Month, performance, attitude, skillScore int, comment string, evaluatedBy uuid.UUID) (*PersonnelEvaluation, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}
	for _, score := range []int{performance, attitude, skillScore} {
		if score < 1 || score > 5 {
			return nil, shared.NewDomainError("INVALID_SCORE", "Scores must be between 1 and 5")
		}
	}
	return &PersonnelEvaluation{
		BaseEntity:    shared.NewBaseEntity(),
		MemberID:      memberID,
		Month:         month,
		Performance:   performance,
		Attitude:      attitude,
		SkillScore:    skillScore,
		Comment:       comment,
		EvaluatedByID: evaluatedBy,
	}, nil
}

// Revise replaces the scores and comment
func (e *PersonnelEvaluation) Revise(performance, attitude, skillScore int, comment string, evaluatedBy uuid.UUID) error {
	for _, score := range []int{performance, attitude, skillScore} {
		if score < 1 || score > 5 {
			return shared.NewDomainError("INVALID_SCORE", "Scores must be between 1 and 5")
		}
	}
	e.Performance = performance
	e.Attitude = attitude
	e.SkillScore = skillScore
	e.Comment = comment
	e.EvaluatedByID = evaluatedBy
	e.Touch()
	return nil
}
