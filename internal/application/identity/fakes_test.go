package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// In-memory repositories shared by the tests in this package. They run
// under NoOpTransactionScope, which executes without a database.

type memoryMemberRepo struct {
	members map[uuid.UUID]*identity.Member
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{members: make(map[uuid.UUID]*identity.Member)}
}

func (r *memoryMemberRepo) Create(_ context.Context, member *identity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) Update(_ context.Context, member *identity.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return shared.ErrNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return member, nil
}

func (r *memoryMemberRepo) FindAll(_ context.Context, filter identity.MemberFilter) ([]*identity.Member, int64, error) {
	var out []*identity.Member
	for _, m := range r.members {
		if !filter.IncludeRetired && !m.IsActive() {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(m.Name, filter.Keyword) {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *memoryMemberRepo) FindActive(_ context.Context) ([]*identity.Member, error) {
	var out []*identity.Member
	for _, m := range r.members {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

type memoryAccountRepo struct {
	accounts map[uuid.UUID]*identity.UserAccount
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[uuid.UUID]*identity.UserAccount)}
}

func (r *memoryAccountRepo) Create(_ context.Context, account *identity.UserAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryAccountRepo) Update(_ context.Context, account *identity.UserAccount) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return shared.ErrNotFound
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.UserAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*identity.UserAccount, error) {
	for _, a := range r.accounts {
		if a.Email == strings.ToLower(email) {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAccountRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) (*identity.UserAccount, error) {
	for _, a := range r.accounts {
		if a.MemberID == memberID {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == strings.ToLower(email) {
			return true, nil
		}
	}
	return false, nil
}

type memoryAuditRepo struct {
	entries []*audit.AuditLog
}

func (r *memoryAuditRepo) Append(_ context.Context, entry *audit.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryAuditRepo) FindAll(_ context.Context, _ audit.Filter) ([]*audit.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func testMember(t *testing.T, name string) *identity.Member {
	t.Helper()
	member, err := identity.NewMember(name, identity.CompanyAltius,
		identity.EmploymentEmployee, identity.SalaryMonthly,
		decimal.NewFromInt(300000), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}
