package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// InvoiceRepository defines the interface for invoice persistence.
// Saving an invoice replaces its items atomically.
type InvoiceRepository interface {
	// Save inserts the invoice or, for an existing (member, month) pair,
	// replaces the row and all of its items in one transaction
	Save(ctx context.Context, invoice *Invoice) error

	// UpdateStatus persists only a status transition
	UpdateStatus(ctx context.Context, invoice *Invoice) error

	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*Invoice, error)
	FindByMonth(ctx context.Context, month valueobject.Month) ([]*Invoice, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*Invoice, error)

	// NextSequence returns the next per-month invoice sequence number
	NextSequence(ctx context.Context, month valueobject.Month) (int, error)
}
