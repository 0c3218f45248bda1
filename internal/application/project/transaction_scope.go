package project

import (
	"context"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/project"
)

// TransactionScope provides transactional access to project repositories.
// Hard deletes remove the project together with its staffing entries and
// write the audit entry in the same transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to project repositories that
// share one underlying database transaction.
type TransactionalRepositories interface {
	ProjectRepo() project.ProjectRepository
	AssignmentRepo() project.AssignmentRepository
	AuditRepo() audit.Repository
}

// NoOpTransactionScope runs the function without a real transaction
type NoOpTransactionScope struct {
	projectRepo    project.ProjectRepository
	assignmentRepo project.AssignmentRepository
	auditRepo      audit.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	projectRepo project.ProjectRepository,
	assignmentRepo project.AssignmentRepository,
	auditRepo audit.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		auditRepo:      auditRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProjectRepo returns the project repository
func (s *NoOpTransactionScope) ProjectRepo() project.ProjectRepository {
	return s.projectRepo
}

// AssignmentRepo returns the assignment repository
func (s *NoOpTransactionScope) AssignmentRepo() project.AssignmentRepository {
	return s.assignmentRepo
}

// AuditRepo returns the audit repository
func (s *NoOpTransactionScope) AuditRepo() audit.Repository {
	return s.auditRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
