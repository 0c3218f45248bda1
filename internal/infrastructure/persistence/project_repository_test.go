package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

func TestProjectRepositoryActiveFilter(t *testing.T) {
	db := newTestDB(t)
	projects := NewGormProjectRepository(db)
	ctx := context.Background()

	alpha, err := project.NewProject("Alpha", "Acme")
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, alpha))

	beta, err := project.NewProject("Beta", "Globex")
	require.NoError(t, err)
	beta.Deactivate()
	require.NoError(t, projects.Create(ctx, beta))

	active, err := projects.FindAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Alpha", active[0].Name)

	all, err := projects.FindAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	start := valueobject.NewDate(2025, time.April, 1)
	require.NoError(t, alpha.SetPeriod(&start, nil))
	require.NoError(t, projects.Update(ctx, alpha))

	found, err := projects.FindByID(ctx, alpha.ID)
	require.NoError(t, err)
	require.NotNil(t, found.StartDate)
	assert.True(t, found.StartDate.Equal(start))
	assert.Nil(t, found.EndDate)

	require.NoError(t, projects.Delete(ctx, beta.ID))
	_, err = projects.FindByID(ctx, beta.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAssignmentRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	projects := NewGormProjectRepository(db)
	positions := NewGormPositionRepository(db)
	assignments := NewGormAssignmentRepository(db)
	ctx := context.Background()

	member := newTestMember(t, "Assignee")
	p, err := project.NewProject("Gamma", "Initech")
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))
	pos, err := project.NewPosition("Backend Engineer", "API work")
	require.NoError(t, err)
	require.NoError(t, positions.Create(ctx, pos))

	a, err := project.NewProjectAssignment(member.ID, p.ID, pos.ID, decimal.NewFromInt(80))
	require.NoError(t, err)
	require.NoError(t, assignments.Create(ctx, a))

	byMember, err := assignments.FindByMemberID(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, byMember, 1)
	assert.Equal(t, p.ID, byMember[0].ProjectID)
	assert.True(t, byMember[0].WorkloadHours.Equal(decimal.NewFromInt(80)))

	byProject, err := assignments.FindByProjectID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, byProject, 1)

	require.NoError(t, assignments.Delete(ctx, a.ID))
	assert.ErrorIs(t, assignments.Delete(ctx, a.ID), shared.ErrNotFound)
}

func TestPLRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	projects := NewGormProjectRepository(db)
	pl := NewGormPLRepository(db)
	ctx := context.Background()

	p, err := project.NewProject("Delta", "Umbrella")
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))

	month, err := valueobject.NewMonth(2025, time.August)
	require.NoError(t, err)

	record, err := project.NewPLRecord(p.ID, month,
		decimal.NewFromInt(1000000), decimal.NewFromInt(600000),
		decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	require.NoError(t, err)
	require.NoError(t, pl.Upsert(ctx, record))

	// Second upsert for the same project and month overwrites
	revised, err := project.NewPLRecord(p.ID, month,
		decimal.NewFromInt(1200000), decimal.NewFromInt(600000),
		decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	require.NoError(t, err)
	require.NoError(t, pl.Upsert(ctx, revised))

	found, err := pl.FindByProjectAndMonth(ctx, p.ID, month)
	require.NoError(t, err)
	assert.True(t, found.Revenue.Equal(decimal.NewFromInt(1200000)))

	byMonth, err := pl.FindByMonth(ctx, month)
	require.NoError(t, err)
	assert.Len(t, byMonth, 1)
}

func TestSelfReportRepositoryUpsertAll(t *testing.T) {
	db := newTestDB(t)
	projects := NewGormProjectRepository(db)
	reports := NewGormSelfReportRepository(db)
	ctx := context.Background()

	member := newTestMember(t, "Reporter")
	p, err := project.NewProject("Epsilon", "Hooli")
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))

	month, err := valueobject.NewMonth(2025, time.September)
	require.NoError(t, err)

	first, err := project.NewSelfReport(member.ID, p.ID, month, decimal.NewFromInt(120))
	require.NoError(t, err)
	require.NoError(t, reports.UpsertAll(ctx, []*project.SelfReport{first}))

	// Resubmitting the same (member, project, month) replaces the hours
	second, err := project.NewSelfReport(member.ID, p.ID, month, decimal.NewFromInt(140))
	require.NoError(t, err)
	second.Notes = "includes release support"
	require.NoError(t, reports.UpsertAll(ctx, []*project.SelfReport{second}))

	mine, err := reports.FindByMemberAndMonth(ctx, member.ID, month)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Hours.Equal(decimal.NewFromInt(140)))
	assert.Equal(t, "includes release support", mine[0].Notes)
}
