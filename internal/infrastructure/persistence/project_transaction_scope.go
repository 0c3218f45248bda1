package persistence

import (
	"context"

	"gorm.io/gorm"

	appproject "github.com/hrm/backend/internal/application/project"
	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/project"
)

// GormProjectTransactionScope implements the project TransactionScope
// using GORM transactions.
type GormProjectTransactionScope struct {
	db *gorm.DB
}

// NewGormProjectTransactionScope creates a new GormProjectTransactionScope
func NewGormProjectTransactionScope(db *gorm.DB) *GormProjectTransactionScope {
	return &GormProjectTransactionScope{db: db}
}

// Execute runs the function within one database transaction
func (s *GormProjectTransactionScope) Execute(ctx context.Context, fn func(repos appproject.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&projectTxRepositories{tx: tx})
	})
}

type projectTxRepositories struct {
	tx *gorm.DB
}

func (r *projectTxRepositories) ProjectRepo() project.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

func (r *projectTxRepositories) AssignmentRepo() project.AssignmentRepository {
	return NewGormAssignmentRepository(r.tx)
}

func (r *projectTxRepositories) AuditRepo() audit.Repository {
	return NewGormAuditRepository(r.tx)
}

var _ appproject.TransactionScope = (*GormProjectTransactionScope)(nil)
var _ appproject.TransactionalRepositories = (*projectTxRepositories)(nil)
