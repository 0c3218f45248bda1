package persistence

import (
	"context"

	"gorm.io/gorm"

	appidentity "github.com/hrm/backend/internal/application/identity"
	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/identity"
)

// GormIdentityTransactionScope implements the identity TransactionScope
// using GORM transactions.
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs the function within one database transaction. Repositories
// handed to the function all write through the same transaction handle.
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&identityTxRepositories{tx: tx})
	})
}

type identityTxRepositories struct {
	tx *gorm.DB
}

func (r *identityTxRepositories) MemberRepo() identity.MemberRepository {
	return NewGormMemberRepository(r.tx)
}

func (r *identityTxRepositories) AccountRepo() identity.UserAccountRepository {
	return NewGormUserAccountRepository(r.tx)
}

func (r *identityTxRepositories) AuditRepo() audit.Repository {
	return NewGormAuditRepository(r.tx)
}

var _ appidentity.TransactionScope = (*GormIdentityTransactionScope)(nil)
var _ appidentity.TransactionalRepositories = (*identityTxRepositories)(nil)
