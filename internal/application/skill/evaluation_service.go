package skill

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/domain/skill"
)

// UpsertEvaluationInput contains the input for a monthly evaluation
type UpsertEvaluationInput struct {
	MemberID    uuid.UUID
	Month       valueobject.Month
	Performance int
	Attitude    int
	SkillScore  int
	Comment     string
	EvaluatedBy uuid.UUID
}

// EvaluationService handles monthly personnel evaluations
type EvaluationService struct {
	evaluationRepo skill.EvaluationRepository
	logger         *zap.Logger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(evaluationRepo skill.EvaluationRepository, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{evaluationRepo: evaluationRepo, logger: logger}
}

// Upsert inserts or revises the (member, month) evaluation
func (s *EvaluationService) Upsert(ctx context.Context, input UpsertEvaluationInput) (*skill.PersonnelEvaluation, error) {
	existing, err := s.evaluationRepo.FindByMemberAndMonth(ctx, input.MemberID, input.Month)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		evaluation, err := skill.NewPersonnelEvaluation(input.MemberID, input.Month,
			input.Performance, input.Attitude, input.SkillScore, input.Comment, input.EvaluatedBy)
		if err != nil {
			return nil, err
		}
		if err := s.evaluationRepo.Upsert(ctx, evaluation); err != nil {
			return nil, err
		}
		return evaluation, nil
	case err != nil:
		return nil, err
	}

	if err := existing.Revise(input.Performance, input.Attitude, input.SkillScore,
		input.Comment, input.EvaluatedBy); err != nil {
		return nil, err
	}
	if err := s.evaluationRepo.Upsert(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Info("evaluation revised",
		zap.String("member_id", input.MemberID.String()),
		zap.String("month", input.Month.String()))
	return existing, nil
}

// MemberMonth returns the evaluation for one member and month
func (s *EvaluationService) MemberMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*skill.PersonnelEvaluation, error) {
	return s.evaluationRepo.FindByMemberAndMonth(ctx, memberID, month)
}

// MemberHistory returns a member's evaluations across months
func (s *EvaluationService) MemberHistory(ctx context.Context, memberID uuid.UUID) ([]*skill.PersonnelEvaluation, error) {
	return s.evaluationRepo.FindByMemberID(ctx, memberID)
}

// Month returns every member's evaluation for a month
func (s *EvaluationService) Month(ctx context.Context, month valueobject.Month) ([]*skill.PersonnelEvaluation, error) {
	return s.evaluationRepo.FindByMonth(ctx, month)
}
