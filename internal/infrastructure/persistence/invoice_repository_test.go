package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

func testMonth(t *testing.T) valueobject.Month {
	t.Helper()
	month, err := valueobject.NewMonth(2025, time.October)
	require.NoError(t, err)
	return month
}

func newTestInvoice(t *testing.T, sequence int, amounts ...int64) *billing.Invoice {
	t.Helper()
	member := newTestMember(t, "Invoice Member")
	var items []billing.InvoiceItem
	for i, amount := range amounts {
		item, err := billing.NewInvoiceItem("Line", decimal.NewFromInt(amount), true, i+1)
		require.NoError(t, err)
		items = append(items, item)
	}
	invoice, err := billing.NewInvoice(member.ID, testMonth(t), sequence, items)
	require.NoError(t, err)
	return invoice
}

func TestInvoiceRepositorySaveAndLoad(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, 1, 100000, 50000)
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-202510-0001", found.Number)
	require.Len(t, found.Items, 2)
	assert.Equal(t, 1, found.Items[0].SortOrder)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(165000)))
}

func TestInvoiceRepositorySaveReplacesItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, 1, 100000, 50000)
	require.NoError(t, repo.Save(ctx, invoice))

	item, err := billing.NewInvoiceItem("Replacement", decimal.NewFromInt(200000), true, 1)
	require.NoError(t, err)
	require.NoError(t, invoice.Regenerate([]billing.InvoiceItem{item}))
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByMemberAndMonth(ctx, invoice.MemberID, invoice.Month)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Replacement", found.Items[0].Description)

	// Stale items from the first save are gone entirely
	var itemCount int64
	require.NoError(t, db.Table("invoice_items").Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestInvoiceRepositoryNextSequence(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	month := testMonth(t)

	seq, err := repo.NextSequence(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	first := newTestInvoice(t, seq, 10000)
	require.NoError(t, repo.Save(ctx, first))

	seq, err = repo.NextSequence(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)

	second := newTestInvoice(t, seq, 20000)
	require.NoError(t, repo.Save(ctx, second))

	seq, err = repo.NextSequence(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 3, seq)

	// Another month starts its own sequence
	other, err := valueobject.NewMonth(2025, time.November)
	require.NoError(t, err)
	seq, err = repo.NextSequence(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}

func TestInvoiceRepositoryUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice := newTestInvoice(t, 1, 10000)
	require.NoError(t, repo.Save(ctx, invoice))

	require.NoError(t, invoice.MarkSent())
	require.NoError(t, repo.UpdateStatus(ctx, invoice))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceSent, found.Status)
}

func TestInvoiceRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	_, err := repo.FindByMemberAndMonth(ctx, newTestMember(t, "None").ID, testMonth(t))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
