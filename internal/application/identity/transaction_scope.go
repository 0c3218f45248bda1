package identity

import (
	"context"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to identity repositories.
// Member creation writes the member, its login account and an audit entry
// atomically; a duplicate email rolls the whole group back.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to identity repositories that
// share one underlying database transaction.
type TransactionalRepositories interface {
	MemberRepo() identity.MemberRepository
	AccountRepo() identity.UserAccountRepository
	AuditRepo() audit.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests backed by repositories that manage their own writes.
type NoOpTransactionScope struct {
	memberRepo  identity.MemberRepository
	accountRepo identity.UserAccountRepository
	auditRepo   audit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	memberRepo identity.MemberRepository,
	accountRepo identity.UserAccountRepository,
	auditRepo audit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MemberRepo returns the member repository
func (s *NoOpTransactionScope) MemberRepo() identity.MemberRepository {
	return s.memberRepo
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() identity.UserAccountRepository {
	return s.accountRepo
}

// AuditRepo returns the audit repository
func (s *NoOpTransactionScope) AuditRepo() audit.Repository {
	return s.auditRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
