package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/project"
)

// ProjectModel is the persistence model for a Project
type ProjectModel struct {
	BaseColumns
	Name        string     `gorm:"type:varchar(200);not null"`
	ClientName  string     `gorm:"type:varchar(200)"`
	Description string     `gorm:"type:text"`
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Active      bool       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		BaseEntity:  m.BaseColumns.entity(),
		Name:        m.Name,
		ClientName:  m.ClientName,
		Description: m.Description,
		StartDate:   datePtrFromColumn(m.StartDate),
		EndDate:     datePtrFromColumn(m.EndDate),
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain Project
func (m *ProjectModel) FromDomain(e *project.Project) {
	m.setEntity(e.BaseEntity)
	m.Name = e.Name
	m.ClientName = e.ClientName
	m.Description = e.Description
	m.StartDate = datePtrColumn(e.StartDate)
	m.EndDate = datePtrColumn(e.EndDate)
	m.Active = e.Active
}

// ProjectModelFromDomain creates a new persistence model from a domain entity
func ProjectModelFromDomain(e *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(e)
	return m
}

// PositionModel is the persistence model for a Position
type PositionModel struct {
	BaseColumns
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PositionModel) TableName() string {
	return "positions"
}

// ToDomain converts the persistence model to a domain Position entity
func (m *PositionModel) ToDomain() *project.Position {
	return &project.Position{
		BaseEntity:  m.BaseColumns.entity(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Position
func (m *PositionModel) FromDomain(e *project.Position) {
	m.setEntity(e.BaseEntity)
	m.Name = e.Name
	m.Description = e.Description
}

// PositionModelFromDomain creates a new persistence model from a domain entity
func PositionModelFromDomain(e *project.Position) *PositionModel {
	m := &PositionModel{}
	m.FromDomain(e)
	return m
}

// AssignmentModel is the persistence model for a ProjectAssignment
type AssignmentModel struct {
	BaseColumns
	MemberID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PositionID    uuid.UUID       `gorm:"type:uuid;not null"`
	WorkloadHours decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	StartDate     *time.Time      `gorm:"type:date"`
	EndDate       *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (AssignmentModel) TableName() string {
	return "project_assignments"
}

// ToDomain converts the persistence model to a domain ProjectAssignment
func (m *AssignmentModel) ToDomain() *project.ProjectAssignment {
	return &project.ProjectAssignment{
		BaseEntity:    m.BaseColumns.entity(),
		MemberID:      m.MemberID,
		ProjectID:     m.ProjectID,
		PositionID:    m.PositionID,
		WorkloadHours: m.WorkloadHours,
		StartDate:     datePtrFromColumn(m.StartDate),
		EndDate:       datePtrFromColumn(m.EndDate),
	}
}

// FromDomain populates the persistence model from a domain ProjectAssignment
func (m *AssignmentModel) FromDomain(e *project.ProjectAssignment) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.ProjectID = e.ProjectID
	m.PositionID = e.PositionID
	m.WorkloadHours = e.WorkloadHours
	m.StartDate = datePtrColumn(e.StartDate)
	m.EndDate = datePtrColumn(e.EndDate)
}

// AssignmentModelFromDomain creates a new persistence model from a domain entity
func AssignmentModelFromDomain(e *project.ProjectAssignment) *AssignmentModel {
	m := &AssignmentModel{}
	m.FromDomain(e)
	return m
}

// PLRecordModel is the persistence model for a monthly project P&L record
type PLRecordModel struct {
	BaseColumns
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pl_project_month"`
	Month           string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_pl_project_month;index"`
	Revenue         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LaborCost       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OutsourcingCost decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OtherCost       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PLRecordModel) TableName() string {
	return "project_pl_records"
}

// ToDomain converts the persistence model to a domain PLRecord entity
func (m *PLRecordModel) ToDomain() *project.PLRecord {
	return &project.PLRecord{
		BaseEntity:      m.BaseColumns.entity(),
		ProjectID:       m.ProjectID,
		Month:           monthFromColumn(m.Month),
		Revenue:         m.Revenue,
		LaborCost:       m.LaborCost,
		OutsourcingCost: m.OutsourcingCost,
		OtherCost:       m.OtherCost,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain PLRecord
func (m *PLRecordModel) FromDomain(e *project.PLRecord) {
	m.setEntity(e.BaseEntity)
	m.ProjectID = e.ProjectID
	m.Month = monthColumn(e.Month)
	m.Revenue = e.Revenue
	m.LaborCost = e.LaborCost
	m.OutsourcingCost = e.OutsourcingCost
	m.OtherCost = e.OtherCost
	m.Notes = e.Notes
}

// PLRecordModelFromDomain creates a new persistence model from a domain entity
func PLRecordModelFromDomain(e *project.PLRecord) *PLRecordModel {
	m := &PLRecordModel{}
	m.FromDomain(e)
	return m
}

// SelfReportModel is the persistence model for a monthly SelfReport entry
type SelfReportModel struct {
	BaseColumns
	MemberID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_selfreport_member_project_month"`
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_selfreport_member_project_month"`
	Month     string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_selfreport_member_project_month;index"`
	Hours     decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SelfReportModel) TableName() string {
	return "self_reports"
}

// ToDomain converts the persistence model to a domain SelfReport entity
func (m *SelfReportModel) ToDomain() *project.SelfReport {
	return &project.SelfReport{
		BaseEntity: m.BaseColumns.entity(),
		MemberID:   m.MemberID,
		ProjectID:  m.ProjectID,
		Month:      monthFromColumn(m.Month),
		Hours:      m.Hours,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain SelfReport
func (m *SelfReportModel) FromDomain(e *project.SelfReport) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.ProjectID = e.ProjectID
	m.Month = monthColumn(e.Month)
	m.Hours = e.Hours
	m.Notes = e.Notes
}

// SelfReportModelFromDomain creates a new persistence model from a domain entity
func SelfReportModelFromDomain(e *project.SelfReport) *SelfReportModel {
	m := &SelfReportModel{}
	m.FromDomain(e)
	return m
}
