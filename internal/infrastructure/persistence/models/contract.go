package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/contract"
)

// ContractModel is the persistence model for a MemberContract
type ContractModel struct {
	BaseColumns
	MemberID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	TemplateKey string                  `gorm:"type:varchar(100);not null"`
	Title       string                  `gorm:"type:varchar(200);not null"`
	Status      contract.ContractStatus `gorm:"type:varchar(20);not null"`
	EnvelopeID  string                  `gorm:"type:varchar(100);index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "member_contracts"
}

// ToDomain converts the persistence model to a domain MemberContract
func (m *ContractModel) ToDomain() *contract.MemberContract {
	return &contract.MemberContract{
		BaseEntity:  m.BaseColumns.entity(),
		MemberID:    m.MemberID,
		TemplateKey: m.TemplateKey,
		Title:       m.Title,
		Status:      m.Status,
		EnvelopeID:  m.EnvelopeID,
		CompletedAt: m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain MemberContract
func (m *ContractModel) FromDomain(e *contract.MemberContract) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.TemplateKey = e.TemplateKey
	m.Title = e.Title
	m.Status = e.Status
	m.EnvelopeID = e.EnvelopeID
	m.CompletedAt = e.CompletedAt
}

// ContractModelFromDomain creates a new persistence model from a domain entity
func ContractModelFromDomain(e *contract.MemberContract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(e)
	return m
}
