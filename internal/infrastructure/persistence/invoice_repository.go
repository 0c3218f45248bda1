package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save inserts the invoice or, for an existing (member, month) pair,
// replaces the row and all of its items in one transaction
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.InvoiceModel
		err := tx.Where("member_id = ? AND month = ?", model.MemberID, model.Month).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("invoice_id = ?", existing.ID).
				Delete(&models.InvoiceItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.InvoiceModel{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		}
		return tx.Create(model).Error
	})
}

// UpdateStatus persists only a status transition
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"status":     invoice.Status,
			"updated_at": invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an invoice with its items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberAndMonth finds the invoice for one member and month
func (r *GormInvoiceRepository) FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("member_id = ? AND month = ?", memberID, month.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMonth returns all invoices for a month ordered by number
func (r *GormInvoiceRepository) FindByMonth(ctx context.Context, month valueobject.Month) ([]*billing.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("month = ?", month.String()).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return invoiceRowsToDomain(rows), nil
}

// FindByMemberID returns a member's invoices across months, newest first
func (r *GormInvoiceRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*billing.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("member_id = ?", memberID).
		Order("month DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return invoiceRowsToDomain(rows), nil
}

// NextSequence returns the next per-month invoice sequence number.
// Sequences come from the numeric suffix of stored invoice numbers, so
// the counter never reuses a value even after a regeneration.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, month valueobject.Month) (int, error) {
	var maxNumber *string
	err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("month = ?", month.String()).
		Select("MAX(number)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil || *maxNumber == "" {
		return 1, nil
	}
	idx := strings.LastIndex(*maxNumber, "-")
	if idx < 0 || idx+1 >= len(*maxNumber) {
		return 1, nil
	}
	seq, err := strconv.Atoi((*maxNumber)[idx+1:])
	if err != nil {
		return 1, nil
	}
	return seq + 1, nil
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func invoiceRowsToDomain(rows []models.InvoiceModel) []*billing.Invoice {
	invoices := make([]*billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToDomain()
	}
	return invoices
}
