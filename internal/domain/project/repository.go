package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error

	// Delete hard-deletes a project; admin-only by policy
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindAll returns projects, optionally restricted to active ones
	FindAll(ctx context.Context, activeOnly bool) ([]*Project, error)

	// FindByIDs returns the projects with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Project, error)
}

// PositionRepository defines the interface for position persistence
type PositionRepository interface {
	Create(ctx context.Context, position *Position) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)
	FindAll(ctx context.Context) ([]*Position, error)
}

// AssignmentRepository defines the interface for staffing persistence
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *ProjectAssignment) error
	Update(ctx context.Context, assignment *ProjectAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProjectAssignment, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*ProjectAssignment, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*ProjectAssignment, error)
	FindAll(ctx context.Context) ([]*ProjectAssignment, error)
}

// PLRepository defines the interface for monthly P&L persistence
type PLRepository interface {
	// Upsert inserts or replaces the (project, month) record
	Upsert(ctx context.Context, record *PLRecord) error

	FindByProjectAndMonth(ctx context.Context, projectID uuid.UUID, month valueobject.Month) (*PLRecord, error)
	FindByMonth(ctx context.Context, month valueobject.Month) ([]*PLRecord, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*PLRecord, error)
}

// SelfReportRepository defines the interface for self-report persistence
type SelfReportRepository interface {
	// UpsertAll replaces the (member, month, project) rows in one transaction
	UpsertAll(ctx context.Context, reports []*SelfReport) error

	FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*SelfReport, error)
	FindByMonth(ctx context.Context, month valueobject.Month) ([]*SelfReport, error)
}
