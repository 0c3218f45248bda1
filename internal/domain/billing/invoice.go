package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents how far an invoice has moved through its
// lifecycle. Absence of an invoice reads as "none" on closing views.
type InvoiceStatus string

const (
	InvoiceGenerated      InvoiceStatus = "generated"
	InvoiceSent           InvoiceStatus = "sent"
	InvoiceAccountingSent InvoiceStatus = "accounting_sent"
)

// IsValid checks if the invoice status is a known value
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceGenerated || s == InvoiceSent || s == InvoiceAccountingSent
}

// TaxRate is the consumption tax applied to taxable invoice lines
var TaxRate = decimal.NewFromFloat(0.10)

// InvoiceItem is one line of an invoice. Items are fully replaced when
// an invoice is regenerated, never edited in place.
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Amount      decimal.Decimal
	Taxable     bool
	SortOrder   int
}

// NewInvoiceItem creates an invoice line
func NewInvoiceItem(description string, amount decimal.Decimal, taxable bool, sortOrder int) (InvoiceItem, error) {
	if description == "" {
		return InvoiceItem{}, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if amount.IsNegative() {
		return InvoiceItem{}, shared.NewDomainError("INVALID_ITEM", "Item amount cannot be negative")
	}
	return InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount,
		Taxable:     taxable,
		SortOrder:   sortOrder,
	}, nil
}

// Invoice is one member's invoice for one month. Unique per (member,
// month); regeneration replaces the items and recomputes the totals.
type Invoice struct {
	shared.BaseEntity
	MemberID         uuid.UUID
	Month            valueobject.Month
	Number           string
	Items            []InvoiceItem
	TaxableAmount    decimal.Decimal
	NonTaxableAmount decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	Status           InvoiceStatus
	IssuedAt         time.Time
}

// NewInvoice builds an invoice from its lines. The tax-inclusive total is
// round(taxable × 1.1) plus the non-taxable sum; rounding is half-up to
// whole yen because these figures feed accounting.
func NewInvoice(memberID uuid.UUID, month valueobject.Month, sequence int, items []InvoiceItem) (*Invoice, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}
	if sequence < 1 || sequence > 9999 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Invoice sequence out of range")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice needs at least one item")
	}

	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		Month:      month,
		Number:     FormatInvoiceNumber(month, sequence),
		Status:     InvoiceGenerated,
		IssuedAt:   time.Now(),
	}
	inv.replaceItems(items)
	return inv, nil
}

// Regenerate replaces all items and recomputes totals; the invoice drops
// back to the generated state
func (inv *Invoice) Regenerate(items []InvoiceItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Invoice needs at least one item")
	}
	inv.replaceItems(items)
	inv.Status = InvoiceGenerated
	inv.IssuedAt = time.Now()
	inv.Touch()
	return nil
}

func (inv *Invoice) replaceItems(items []InvoiceItem) {
	taxable := decimal.Zero
	nonTaxable := decimal.Zero
	for i := range items {
		items[i].InvoiceID = inv.ID
		if items[i].Taxable {
			taxable = taxable.Add(items[i].Amount)
		} else {
			nonTaxable = nonTaxable.Add(items[i].Amount)
		}
	}
	inclTaxable := taxable.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(0)
	inv.Items = items
	inv.TaxableAmount = taxable
	inv.NonTaxableAmount = nonTaxable
	inv.TaxAmount = inclTaxable.Sub(taxable)
	inv.TotalAmount = inclTaxable.Add(nonTaxable)
}

// MarkSent advances a generated invoice to sent
func (inv *Invoice) MarkSent() error {
	if inv.Status != InvoiceGenerated {
		return shared.NewDomainError("INVALID_STATE", "Only generated invoices can be sent")
	}
	inv.Status = InvoiceSent
	inv.Touch()
	return nil
}

// MarkAccountingSent records that the invoice went out to accounting
func (inv *Invoice) MarkAccountingSent() error {
	if inv.Status == InvoiceAccountingSent {
		return shared.NewDomainError("INVALID_STATE", "Invoice was already sent to accounting")
	}
	inv.Status = InvoiceAccountingSent
	inv.Touch()
	return nil
}

// FormatInvoiceNumber renders the canonical invoice number
func FormatInvoiceNumber(month valueobject.Month, sequence int) string {
	return fmt.Sprintf("INV-%s-%04d", month.Compact(), sequence)
}
