package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// InvoiceItemInput is one line of an invoice generation request
type InvoiceItemInput struct {
	Description string
	Amount      decimal.Decimal
	Taxable     bool
}

// GenerateInvoiceInput creates or regenerates the (member, month) invoice
type GenerateInvoiceInput struct {
	MemberID uuid.UUID
	Month    valueobject.Month
	Items    []InvoiceItemInput
}

// MemberClosing is one member's monthly closing row
type MemberClosing struct {
	Member  *identity.Member
	Month   valueobject.Month
	Summary billing.ClosingSummary
}
