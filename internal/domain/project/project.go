package project

import (
	"strings"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// Project represents a client engagement members are staffed on
type Project struct {
	shared.BaseEntity
	Name        string
	ClientName  string
	Description string
	StartDate   *valueobject.Date
	EndDate     *valueobject.Date
	Active      bool
}

// NewProject creates a new active project
func NewProject(name, clientName string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	return &Project{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		ClientName: strings.TrimSpace(clientName),
		Active:     true,
	}, nil
}

// Rename changes the project name
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetPeriod sets the engagement date range
func (p *Project) SetPeriod(start, end *valueobject.Date) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_PERIOD", "End date cannot precede start date")
	}
	p.StartDate = start
	p.EndDate = end
	p.Touch()
	return nil
}

// Deactivate marks the project as no longer active
func (p *Project) Deactivate() {
	p.Active = false
	p.Touch()
}

// Activate marks the project as active
func (p *Project) Activate() {
	p.Active = true
	p.Touch()
}

// Position is a role a member can hold on a project, shared across projects
type Position struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewPosition creates a new position
func NewPosition(name, description string) (*Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Position name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Position name cannot exceed 100 characters")
	}
	return &Position{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}
