package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

func TestMemberRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberRepository(db)
	ctx := context.Background()

	member := newTestMember(t, "山田 太郎")
	member.NameKana = "やまだ たろう"
	member.SetContact("090-1234-5678", "Tokyo", "Taro@Example.com")
	member.SetBank(identity.BankAccount{
		BankName:      "みずほ銀行",
		BranchName:    "渋谷支店",
		AccountType:   "普通",
		AccountNumber: "1234567",
		AccountHolder: "ヤマダ タロウ",
	})
	require.NoError(t, repo.Create(ctx, member))

	found, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "山田 太郎", found.Name)
	assert.Equal(t, "taro@example.com", found.ContactEmail)
	assert.Equal(t, "渋谷支店", found.Bank.BranchName)
	assert.True(t, found.JoinDate.Equal(valueobject.NewDate(2024, time.April, 1)))
}

func TestMemberRepositoryFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberRepository(db)

	_, err := repo.FindByID(context.Background(), newTestMember(t, "ghost").ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemberRepositoryFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberRepository(db)
	ctx := context.Background()

	active := newTestMember(t, "Active Member")
	active.NameKana = "あくてぃぶ"
	require.NoError(t, repo.Create(ctx, active))

	retired := newTestMember(t, "Retired Member")
	require.NoError(t, retired.Retire(valueobject.NewDate(2025, time.March, 31)))
	require.NoError(t, repo.Create(ctx, retired))

	t.Run("default excludes retired", func(t *testing.T) {
		members, total, err := repo.FindAll(ctx, identity.MemberFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, members, 1)
		assert.Equal(t, active.ID, members[0].ID)
	})

	t.Run("include retired", func(t *testing.T) {
		_, total, err := repo.FindAll(ctx, identity.MemberFilter{IncludeRetired: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("keyword matches kana", func(t *testing.T) {
		members, _, err := repo.FindAll(ctx, identity.MemberFilter{Keyword: "あくてぃ"})
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, active.ID, members[0].ID)
	})

	t.Run("company mismatch excludes", func(t *testing.T) {
		brextia := identity.CompanyBrextia
		_, total, err := repo.FindAll(ctx, identity.MemberFilter{Company: &brextia})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("paging", func(t *testing.T) {
		members, total, err := repo.FindAll(ctx, identity.MemberFilter{IncludeRetired: true, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, members, 1)
	})
}

func TestMemberRepositoryFindActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMemberRepository(db)
	ctx := context.Background()

	active := newTestMember(t, "Active")
	require.NoError(t, repo.Create(ctx, active))
	retired := newTestMember(t, "Retired")
	require.NoError(t, retired.Retire(valueobject.NewDate(2025, time.June, 30)))
	require.NoError(t, repo.Create(ctx, retired))

	members, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, active.ID, members[0].ID)
}

func TestUserAccountRepository(t *testing.T) {
	db := newTestDB(t)
	members := NewGormMemberRepository(db)
	accounts := NewGormUserAccountRepository(db)
	ctx := context.Background()

	member := newTestMember(t, "Account Owner")
	require.NoError(t, members.Create(ctx, member))

	account, err := identity.NewUserAccount(member.ID, "Owner@Example.com", "password123!", identity.RoleMember)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, account))

	t.Run("find by email is case insensitive", func(t *testing.T) {
		found, err := accounts.FindByEmail(ctx, "OWNER@example.COM")
		require.NoError(t, err)
		assert.Equal(t, account.ID, found.ID)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := accounts.ExistsByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = accounts.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find by member", func(t *testing.T) {
		found, err := accounts.FindByMemberID(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, account.ID, found.ID)
	})

	t.Run("update not found", func(t *testing.T) {
		stray, err := identity.NewUserAccount(member.ID, "x@example.com", "password123!", identity.RoleMember)
		require.NoError(t, err)
		assert.ErrorIs(t, accounts.Update(ctx, stray), shared.ErrNotFound)
	})
}
