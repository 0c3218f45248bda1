package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/system"
)

func TestConfigRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	configs := NewGormConfigRepository(db)
	ctx := context.Background()

	cfg, err := system.NewSystemConfig("slack.webhook_url", "https://hooks.example.com/a", true, "Slack incoming webhook")
	require.NoError(t, err)
	require.NoError(t, configs.Upsert(ctx, cfg))

	// Upserting the same key replaces the value, not adds a row
	replacement, err := system.NewSystemConfig("slack.webhook_url", "https://hooks.example.com/b", true, "Slack incoming webhook")
	require.NoError(t, err)
	require.NoError(t, configs.Upsert(ctx, replacement))

	found, err := configs.FindByKey(ctx, "slack.webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/b", found.Value)
	assert.True(t, found.Secret)

	all, err := configs.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = configs.FindByKey(ctx, "missing.key")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestToolRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	tools := NewGormToolRepository(db)
	ctx := context.Background()

	member := newTestMember(t, "Tool Owner")
	tool, err := system.NewMemberTool(member.ID, "GitHub Copilot", decimal.NewFromInt(3000))
	require.NoError(t, err)
	tool.AccountInfo = "org seat"
	require.NoError(t, tools.Create(ctx, tool))

	tool.Deactivate()
	tool.Notes = "returned at offboarding"
	require.NoError(t, tools.Update(ctx, tool))

	found, err := tools.FindByID(ctx, tool.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)
	assert.Equal(t, "returned at offboarding", found.Notes)
	assert.True(t, found.MonthlyCost.Equal(decimal.NewFromInt(3000)))

	mine, err := tools.FindByMemberID(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, tools.Delete(ctx, tool.ID))
	_, err = tools.FindByID(ctx, tool.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, tools.Delete(ctx, tool.ID), shared.ErrNotFound)
}

func TestAuditRepositoryAppendAndFilter(t *testing.T) {
	db := newTestDB(t)
	logs := NewGormAuditRepository(db)
	ctx := context.Background()

	alice := newTestMember(t, "Alice")
	bob := newTestMember(t, "Bob")

	base := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	first, err := audit.NewAuditLog(alice.ID, audit.ActionCreate, "member", bob.ID, `{"name":"Bob"}`)
	require.NoError(t, err)
	first.CreatedAt = base
	require.NoError(t, logs.Append(ctx, first))

	second, err := audit.NewAuditLog(alice.ID, audit.ActionUpdate, "member", bob.ID, `{"name_kana":"ぼぶ"}`)
	require.NoError(t, err)
	second.CreatedAt = base.Add(time.Hour)
	require.NoError(t, logs.Append(ctx, second))

	third, err := audit.NewAuditLog(bob.ID, audit.ActionCreate, "invoice", bob.ID, `{}`)
	require.NoError(t, err)
	third.CreatedAt = base.Add(2 * time.Hour)
	require.NoError(t, logs.Append(ctx, third))

	t.Run("unfiltered newest first", func(t *testing.T) {
		entries, total, err := logs.FindAll(ctx, audit.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 3)
		assert.Equal(t, "invoice", entries[0].EntityType)
		assert.Equal(t, audit.ActionCreate, entries[2].Action)
	})

	t.Run("by actor", func(t *testing.T) {
		entries, total, err := logs.FindAll(ctx, audit.Filter{ActorID: &alice.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, entries, 2)
	})

	t.Run("by entity type", func(t *testing.T) {
		entries, total, err := logs.FindAll(ctx, audit.Filter{EntityType: "invoice"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, bob.ID, entries[0].ActorID)
	})

	t.Run("paged", func(t *testing.T) {
		entries, total, err := logs.FindAll(ctx, audit.Filter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionUpdate, entries[0].Action)
	})
}
