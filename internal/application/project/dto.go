package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// CreateProjectInput contains the input for project creation
type CreateProjectInput struct {
	ActorID     uuid.UUID
	Name        string
	ClientName  string
	Description string
	StartDate   *valueobject.Date
	EndDate     *valueobject.Date
}

// UpdateProjectInput contains the mutable project fields. Nil pointers
// leave the stored value unchanged; SetPeriod applies when either date
// pointer is present.
type UpdateProjectInput struct {
	ActorID     uuid.UUID
	ProjectID   uuid.UUID
	Name        *string
	ClientName  *string
	Description *string
	StartDate   *valueobject.Date
	EndDate     *valueobject.Date
	ClearDates  bool
	Active      *bool
}

// CreateAssignmentInput contains the input for a staffing entry
type CreateAssignmentInput struct {
	MemberID      uuid.UUID
	ProjectID     uuid.UUID
	PositionID    uuid.UUID
	WorkloadHours decimal.Decimal
	StartDate     *valueobject.Date
	EndDate       *valueobject.Date
}

// UpdateAssignmentInput contains the mutable assignment fields
type UpdateAssignmentInput struct {
	AssignmentID  uuid.UUID
	PositionID    *uuid.UUID
	WorkloadHours *decimal.Decimal
	StartDate     *valueobject.Date
	EndDate       *valueobject.Date
	ClearDates    bool
}

// UpsertPLInput contains the input for a monthly P&L entry
type UpsertPLInput struct {
	ProjectID       uuid.UUID
	Month           valueobject.Month
	Revenue         decimal.Decimal
	LaborCost       decimal.Decimal
	OutsourcingCost decimal.Decimal
	OtherCost       decimal.Decimal
	Notes           string
}

// PLView is a P&L record with its derived figures
type PLView struct {
	Record        *project.PLRecord
	GrossProfit   decimal.Decimal
	MarginPercent decimal.Decimal
}

// WorkloadCell is one member's planned hours on one project in the matrix
type WorkloadCell struct {
	MemberID      uuid.UUID
	ProjectID     uuid.UUID
	PositionID    uuid.UUID
	WorkloadHours decimal.Decimal
}

// WorkloadMatrix is the staffing view for one month: every assignment
// active at any point in the month, with per-member and per-project sums
type WorkloadMatrix struct {
	Month        valueobject.Month
	Cells        []WorkloadCell
	MemberTotals map[uuid.UUID]decimal.Decimal
	ProjectTotal map[uuid.UUID]decimal.Decimal
}

// SelfReportEntryInput is one (project, hours) line of a monthly report
type SelfReportEntryInput struct {
	ProjectID uuid.UUID
	Hours     decimal.Decimal
	Notes     string
}

// SubmitSelfReportInput replaces a member's report lines for a month
type SubmitSelfReportInput struct {
	MemberID uuid.UUID
	Month    valueobject.Month
	Entries  []SelfReportEntryInput
}
