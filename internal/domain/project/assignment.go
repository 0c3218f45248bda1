package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// ProjectAssignment staffs a member on a project in a position, with a
// monthly workload allocation. Unique per (member, project, position).
type ProjectAssignment struct {
	shared.BaseEntity
	MemberID      uuid.UUID
	ProjectID     uuid.UUID
	PositionID    uuid.UUID
	WorkloadHours decimal.Decimal
	StartDate     *valueobject.Date
	EndDate       *valueobject.Date
}

// NewProjectAssignment creates a staffing entry
func NewProjectAssignment(memberID, projectID, positionID uuid.UUID, workloadHours decimal.Decimal) (*ProjectAssignment, error) {
	if memberID == uuid.Nil || projectID == uuid.Nil || positionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member, project and position are required")
	}
	if workloadHours.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WORKLOAD", "Workload hours cannot be negative")
	}
	return &ProjectAssignment{
		BaseEntity:    shared.NewBaseEntity(),
		MemberID:      memberID,
		ProjectID:     projectID,
		PositionID:    positionID,
		WorkloadHours: workloadHours,
	}, nil
}

// SetWorkload updates the monthly hour allocation
func (a *ProjectAssignment) SetWorkload(hours decimal.Decimal) error {
	if hours.IsNegative() {
		return shared.NewDomainError("INVALID_WORKLOAD", "Workload hours cannot be negative")
	}
	a.WorkloadHours = hours
	a.Touch()
	return nil
}

// SetPeriod sets the staffing date range
func (a *ProjectAssignment) SetPeriod(start, end *valueobject.Date) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_PERIOD", "End date cannot precede start date")
	}
	a.StartDate = start
	a.EndDate = end
	a.Touch()
	return nil
}

// ActiveOn reports whether the assignment covers the given date.
// Open-ended ranges cover everything on the open side.
func (a *ProjectAssignment) ActiveOn(date valueobject.Date) bool {
	if a.StartDate != nil && date.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && date.After(*a.EndDate) {
		return false
	}
	return true
}
