package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// PLRecord holds one project's revenue and cost breakdown for one month.
// Unique per (project, month); gross profit and margin are derived, never
// stored independently of the inputs.
type PLRecord struct {
	shared.BaseEntity
	ProjectID       uuid.UUID
	Month           valueobject.Month
	Revenue         decimal.Decimal
	LaborCost       decimal.Decimal
	OutsourcingCost decimal.Decimal
	OtherCost       decimal.Decimal
	Notes           string
}

// NewPLRecord creates a monthly P&L entry for a project
func NewPLRecord(projectID uuid.UUID, month valueobject.Month, revenue, laborCost, outsourcingCost, otherCost decimal.Decimal) (*PLRecord, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT_ID", "Project ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}
	for _, v := range []decimal.Decimal{revenue, laborCost, outsourcingCost, otherCost} {
		if v.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "P&L amounts cannot be negative")
		}
	}
	return &PLRecord{
		BaseEntity:      shared.NewBaseEntity(),
		ProjectID:       projectID,
		Month:           month,
		Revenue:         revenue,
		LaborCost:       laborCost,
		OutsourcingCost: outsourcingCost,
		OtherCost:       otherCost,
	}, nil
}

// TotalCost returns the sum of all cost categories
func (r *PLRecord) TotalCost() decimal.Decimal {
	return r.LaborCost.Add(r.OutsourcingCost).Add(r.OtherCost)
}

// GrossProfit returns revenue minus total cost; may be negative
func (r *PLRecord) GrossProfit() decimal.Decimal {
	return r.Revenue.Sub(r.TotalCost())
}

// MarginPercent returns gross profit over revenue as a percentage rounded
// to one decimal. Zero revenue yields a zero margin rather than dividing.
func (r *PLRecord) MarginPercent() decimal.Decimal {
	if r.Revenue.IsZero() {
		return decimal.Zero
	}
	return r.GrossProfit().Div(r.Revenue).Mul(decimal.NewFromInt(100)).Round(1)
}

// Revise replaces the revenue and cost figures
func (r *PLRecord) Revise(revenue, laborCost, outsourcingCost, otherCost decimal.Decimal) error {
	for _, v := range []decimal.Decimal{revenue, laborCost, outsourcingCost, otherCost} {
		if v.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "P&L amounts cannot be negative")
		}
	}
	r.Revenue = revenue
	r.LaborCost = laborCost
	r.OutsourcingCost = outsourcingCost
	r.OtherCost = otherCost
	r.Touch()
	return nil
}
