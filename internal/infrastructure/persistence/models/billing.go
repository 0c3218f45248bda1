package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for an Invoice
type InvoiceModel struct {
	BaseColumns
	MemberID         uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_member_month"`
	Month            string                `gorm:"type:varchar(7);not null;uniqueIndex:idx_invoice_member_month;index"`
	Number           string                `gorm:"type:varchar(20);not null;uniqueIndex"`
	TaxableAmount    decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	NonTaxableAmount decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	TaxAmount        decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	TotalAmount      decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	Status           billing.InvoiceStatus `gorm:"type:varchar(20);not null"`
	IssuedAt         time.Time             `gorm:"not null"`
	Items            []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	items := make([]billing.InvoiceItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = it.ToDomain()
	}
	return &billing.Invoice{
		BaseEntity:       m.BaseColumns.entity(),
		MemberID:         m.MemberID,
		Month:            monthFromColumn(m.Month),
		Number:           m.Number,
		Items:            items,
		TaxableAmount:    m.TaxableAmount,
		NonTaxableAmount: m.NonTaxableAmount,
		TaxAmount:        m.TaxAmount,
		TotalAmount:      m.TotalAmount,
		Status:           m.Status,
		IssuedAt:         m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(e *billing.Invoice) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Month = monthColumn(e.Month)
	m.Number = e.Number
	m.TaxableAmount = e.TaxableAmount
	m.NonTaxableAmount = e.NonTaxableAmount
	m.TaxAmount = e.TaxAmount
	m.TotalAmount = e.TotalAmount
	m.Status = e.Status
	m.IssuedAt = e.IssuedAt
	m.Items = make([]InvoiceItemModel, len(e.Items))
	for i, it := range e.Items {
		m.Items[i] = InvoiceItemModelFromDomain(e.ID, it)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain entity
func InvoiceModelFromDomain(e *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(e)
	return m
}

// InvoiceItemModel is the persistence model for one invoice line
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Taxable     bool            `gorm:"not null;default:true"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() billing.InvoiceItem {
	return billing.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Amount:      m.Amount,
		Taxable:     m.Taxable,
		SortOrder:   m.SortOrder,
	}
}

// InvoiceItemModelFromDomain creates a line model attached to an invoice
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, it billing.InvoiceItem) InvoiceItemModel {
	return InvoiceItemModel{
		ID:          it.ID,
		InvoiceID:   invoiceID,
		Description: it.Description,
		Amount:      it.Amount,
		Taxable:     it.Taxable,
		SortOrder:   it.SortOrder,
	}
}
