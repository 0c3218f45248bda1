package project

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

const projectEntityType = "project"

// ProjectService handles projects, positions, staffing and monthly P&L
type ProjectService struct {
	projectRepo    project.ProjectRepository
	positionRepo   project.PositionRepository
	assignmentRepo project.AssignmentRepository
	plRepo         project.PLRepository
	txScope        TransactionScope
	logger         *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo project.ProjectRepository,
	positionRepo project.PositionRepository,
	assignmentRepo project.AssignmentRepository,
	plRepo project.PLRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		positionRepo:   positionRepo,
		assignmentRepo: assignmentRepo,
		plRepo:         plRepo,
		txScope:        txScope,
		logger:         logger,
	}
}

// Create creates a new active project
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*project.Project, error) {
	p, err := project.NewProject(input.Name, input.ClientName)
	if err != nil {
		return nil, err
	}
	p.Description = input.Description
	if input.StartDate != nil || input.EndDate != nil {
		if err := p.SetPeriod(input.StartDate, input.EndDate); err != nil {
			return nil, err
		}
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("project_id", p.ID.String()), zap.String("name", p.Name))
	return p, nil
}

// Update applies the provided fields to a project
func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*project.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := p.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.ClientName != nil {
		p.ClientName = *input.ClientName
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.ClearDates {
		if err := p.SetPeriod(nil, nil); err != nil {
			return nil, err
		}
	} else if input.StartDate != nil || input.EndDate != nil {
		start, end := p.StartDate, p.EndDate
		if input.StartDate != nil {
			start = input.StartDate
		}
		if input.EndDate != nil {
			end = input.EndDate
		}
		if err := p.SetPeriod(start, end); err != nil {
			return nil, err
		}
	}
	if input.Active != nil {
		if *input.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hard-deletes a project, its staffing entries and writes the
// audit entry in one transaction
func (s *ProjectService) Delete(ctx context.Context, actorID, projectID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.ProjectRepo().FindByID(ctx, projectID)
		if err != nil {
			return err
		}
		assignments, err := repos.AssignmentRepo().FindByProjectID(ctx, projectID)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			if err := repos.AssignmentRepo().Delete(ctx, a.ID); err != nil {
				return err
			}
		}
		if err := repos.ProjectRepo().Delete(ctx, projectID); err != nil {
			return err
		}

		detail, err := json.Marshal(map[string]any{"name": p.Name, "client": p.ClientName})
		if err != nil {
			return err
		}
		entry, err := audit.NewAuditLog(actorID, audit.ActionDelete, projectEntityType, projectID, string(detail))
		if err != nil {
			return err
		}
		return repos.AuditRepo().Append(ctx, entry)
	})
}

// Get returns one project
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// List returns projects, optionally only active ones
func (s *ProjectService) List(ctx context.Context, activeOnly bool) ([]*project.Project, error) {
	return s.projectRepo.FindAll(ctx, activeOnly)
}

// CreatePosition creates a position
func (s *ProjectService) CreatePosition(ctx context.Context, name, description string) (*project.Position, error) {
	position, err := project.NewPosition(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

// DeletePosition removes a position
func (s *ProjectService) DeletePosition(ctx context.Context, id uuid.UUID) error {
	return s.positionRepo.Delete(ctx, id)
}

// ListPositions returns all positions
func (s *ProjectService) ListPositions(ctx context.Context) ([]*project.Position, error) {
	return s.positionRepo.FindAll(ctx)
}

// Assign creates a staffing entry
func (s *ProjectService) Assign(ctx context.Context, input CreateAssignmentInput) (*project.ProjectAssignment, error) {
	assignment, err := project.NewProjectAssignment(input.MemberID, input.ProjectID, input.PositionID, input.WorkloadHours)
	if err != nil {
		return nil, err
	}
	if input.StartDate != nil || input.EndDate != nil {
		if err := assignment.SetPeriod(input.StartDate, input.EndDate); err != nil {
			return nil, err
		}
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// UpdateAssignment applies the provided fields to a staffing entry
func (s *ProjectService) UpdateAssignment(ctx context.Context, input UpdateAssignmentInput) (*project.ProjectAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, input.AssignmentID)
	if err != nil {
		return nil, err
	}
	if input.PositionID != nil {
		assignment.PositionID = *input.PositionID
	}
	if input.WorkloadHours != nil {
		if err := assignment.SetWorkload(*input.WorkloadHours); err != nil {
			return nil, err
		}
	}
	if input.ClearDates {
		if err := assignment.SetPeriod(nil, nil); err != nil {
			return nil, err
		}
	} else if input.StartDate != nil || input.EndDate != nil {
		start, end := assignment.StartDate, assignment.EndDate
		if input.StartDate != nil {
			start = input.StartDate
		}
		if input.EndDate != nil {
			end = input.EndDate
		}
		if err := assignment.SetPeriod(start, end); err != nil {
			return nil, err
		}
	}
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// RemoveAssignment deletes a staffing entry
func (s *ProjectService) RemoveAssignment(ctx context.Context, id uuid.UUID) error {
	return s.assignmentRepo.Delete(ctx, id)
}

// MemberAssignments returns a member's staffing entries
func (s *ProjectService) MemberAssignments(ctx context.Context, memberID uuid.UUID) ([]*project.ProjectAssignment, error) {
	return s.assignmentRepo.FindByMemberID(ctx, memberID)
}

// ProjectAssignments returns a project's staffing entries
func (s *ProjectService) ProjectAssignments(ctx context.Context, projectID uuid.UUID) ([]*project.ProjectAssignment, error) {
	return s.assignmentRepo.FindByProjectID(ctx, projectID)
}

// Workload builds the staffing matrix for a month: every assignment
// active on at least one day of the month, with totals per member and
// per project.
func (s *ProjectService) Workload(ctx context.Context, month valueobject.Month) (*WorkloadMatrix, error) {
	assignments, err := s.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	first := valueobject.NewDate(month.Year(), month.Month(), 1)
	last := first.AddDays(month.Days() - 1)

	matrix := &WorkloadMatrix{
		Month:        month,
		MemberTotals: make(map[uuid.UUID]decimal.Decimal),
		ProjectTotal: make(map[uuid.UUID]decimal.Decimal),
	}
	for _, a := range assignments {
		if !a.ActiveOn(first) && !a.ActiveOn(last) && !activeWithin(a, first, last) {
			continue
		}
		matrix.Cells = append(matrix.Cells, WorkloadCell{
			MemberID:      a.MemberID,
			ProjectID:     a.ProjectID,
			PositionID:    a.PositionID,
			WorkloadHours: a.WorkloadHours,
		})
		matrix.MemberTotals[a.MemberID] = matrix.MemberTotals[a.MemberID].Add(a.WorkloadHours)
		matrix.ProjectTotal[a.ProjectID] = matrix.ProjectTotal[a.ProjectID].Add(a.WorkloadHours)
	}
	return matrix, nil
}

// activeWithin covers assignments whose whole range sits inside the month
func activeWithin(a *project.ProjectAssignment, first, last valueobject.Date) bool {
	if a.StartDate == nil {
		return false
	}
	return !a.StartDate.Before(first) && !a.StartDate.After(last)
}

// UpsertPL inserts or replaces the (project, month) P&L record
func (s *ProjectService) UpsertPL(ctx context.Context, input UpsertPLInput) (*PLView, error) {
	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	record, err := project.NewPLRecord(input.ProjectID, input.Month,
		input.Revenue, input.LaborCost, input.OutsourcingCost, input.OtherCost)
	if err != nil {
		return nil, err
	}
	record.Notes = input.Notes
	if err := s.plRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return plView(record), nil
}

// MonthPL returns every project's P&L for a month with derived figures
func (s *ProjectService) MonthPL(ctx context.Context, month valueobject.Month) ([]*PLView, error) {
	records, err := s.plRepo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	views := make([]*PLView, len(records))
	for i, record := range records {
		views[i] = plView(record)
	}
	return views, nil
}

// ProjectPL returns one project's P&L history with derived figures
func (s *ProjectService) ProjectPL(ctx context.Context, projectID uuid.UUID) ([]*PLView, error) {
	records, err := s.plRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	views := make([]*PLView, len(records))
	for i, record := range records {
		views[i] = plView(record)
	}
	return views, nil
}

func plView(record *project.PLRecord) *PLView {
	return &PLView{
		Record:        record,
		GrossProfit:   record.GrossProfit(),
		MarginPercent: record.MarginPercent(),
	}
}
