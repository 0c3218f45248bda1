package skill

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

func evaluationInput(t *testing.T, memberID uuid.UUID) UpsertEvaluationInput {
	t.Helper()
	month, err := valueobject.NewMonth(2025, time.June)
	require.NoError(t, err)
	return UpsertEvaluationInput{
		MemberID:    memberID,
		Month:       month,
		Performance: 4,
		Attitude:    3,
		SkillScore:  4,
		Comment:     "安定して成果を出している",
		EvaluatedBy: uuid.New(),
	}
}

func TestEvaluationUpsertCreates(t *testing.T) {
	svc := NewEvaluationService(newMemoryEvaluationRepo(), zap.NewNop())
	ctx := context.Background()
	memberID := uuid.New()

	input := evaluationInput(t, memberID)
	created, err := svc.Upsert(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 4, created.Performance)
	assert.Equal(t, input.EvaluatedBy, created.EvaluatedByID)

	stored, err := svc.MemberMonth(ctx, memberID, input.Month)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
}

func TestEvaluationUpsertRevisesExisting(t *testing.T) {
	svc := NewEvaluationService(newMemoryEvaluationRepo(), zap.NewNop())
	ctx := context.Background()
	memberID := uuid.New()

	input := evaluationInput(t, memberID)
	created, err := svc.Upsert(ctx, input)
	require.NoError(t, err)

	reviser := uuid.New()
	input.Performance = 5
	input.Comment = "期待以上"
	input.EvaluatedBy = reviser
	revised, err := svc.Upsert(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, created.ID, revised.ID)
	assert.Equal(t, 5, revised.Performance)
	assert.Equal(t, "期待以上", revised.Comment)
	assert.Equal(t, reviser, revised.EvaluatedByID)

	all, err := svc.Month(ctx, input.Month)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEvaluationUpsertRejectsBadScore(t *testing.T) {
	svc := NewEvaluationService(newMemoryEvaluationRepo(), zap.NewNop())
	input := evaluationInput(t, uuid.New())
	input.Attitude = 0

	_, err := svc.Upsert(context.Background(), input)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SCORE", domainErr.Code)
}

func TestEvaluationMemberHistorySpansMonths(t *testing.T) {
	svc := NewEvaluationService(newMemoryEvaluationRepo(), zap.NewNop())
	ctx := context.Background()
	memberID := uuid.New()

	for _, m := range []time.Month{time.May, time.June} {
		input := evaluationInput(t, memberID)
		month, err := valueobject.NewMonth(2025, m)
		require.NoError(t, err)
		input.Month = month
		_, err = svc.Upsert(ctx, input)
		require.NoError(t, err)
	}

	history, err := svc.MemberHistory(ctx, memberID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
