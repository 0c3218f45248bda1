package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/system"
)

// SystemConfigModel is the persistence model for a SystemConfig entry
type SystemConfigModel struct {
	BaseColumns
	Key         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value       string `gorm:"type:text"`
	Secret      bool   `gorm:"not null;default:false"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SystemConfigModel) TableName() string {
	return "system_configs"
}

// ToDomain converts the persistence model to a domain SystemConfig
func (m *SystemConfigModel) ToDomain() *system.SystemConfig {
	return &system.SystemConfig{
		BaseEntity:  m.BaseColumns.entity(),
		Key:         m.Key,
		Value:       m.Value,
		Secret:      m.Secret,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain SystemConfig
func (m *SystemConfigModel) FromDomain(e *system.SystemConfig) {
	m.setEntity(e.BaseEntity)
	m.Key = e.Key
	m.Value = e.Value
	m.Secret = e.Secret
	m.Description = e.Description
}

// SystemConfigModelFromDomain creates a new persistence model from a domain entity
func SystemConfigModelFromDomain(e *system.SystemConfig) *SystemConfigModel {
	m := &SystemConfigModel{}
	m.FromDomain(e)
	return m
}

// MemberToolModel is the persistence model for a MemberTool entry
type MemberToolModel struct {
	BaseColumns
	MemberID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	MonthlyCost decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AccountInfo string          `gorm:"type:varchar(500)"`
	Notes       string          `gorm:"type:text"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MemberToolModel) TableName() string {
	return "member_tools"
}

// ToDomain converts the persistence model to a domain MemberTool
func (m *MemberToolModel) ToDomain() *system.MemberTool {
	return &system.MemberTool{
		BaseEntity:  m.BaseColumns.entity(),
		MemberID:    m.MemberID,
		Name:        m.Name,
		MonthlyCost: m.MonthlyCost,
		AccountInfo: m.AccountInfo,
		Notes:       m.Notes,
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain MemberTool
func (m *MemberToolModel) FromDomain(e *system.MemberTool) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Name = e.Name
	m.MonthlyCost = e.MonthlyCost
	m.AccountInfo = e.AccountInfo
	m.Notes = e.Notes
	m.Active = e.Active
}

// MemberToolModelFromDomain creates a new persistence model from a domain entity
func MemberToolModelFromDomain(e *system.MemberTool) *MemberToolModel {
	m := &MemberToolModel{}
	m.FromDomain(e)
	return m
}

// AuditLogModel is the persistence model for an append-only audit entry
type AuditLogModel struct {
	BaseColumns
	ActorID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Action     audit.Action `gorm:"type:varchar(20);not null"`
	EntityType string       `gorm:"type:varchar(50);not null;index"`
	EntityID   uuid.UUID    `gorm:"type:uuid;not null"`
	Detail     string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		BaseEntity: m.BaseColumns.entity(),
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Detail:     m.Detail,
	}
}

// FromDomain populates the persistence model from a domain AuditLog
func (m *AuditLogModel) FromDomain(e *audit.AuditLog) {
	m.setEntity(e.BaseEntity)
	m.ActorID = e.ActorID
	m.Action = e.Action
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Detail = e.Detail
}

// AuditLogModelFromDomain creates a new persistence model from a domain entity
func AuditLogModelFromDomain(e *audit.AuditLog) *AuditLogModel {
	m := &AuditLogModel{}
	m.FromDomain(e)
	return m
}
