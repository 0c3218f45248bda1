package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/config"
)

func testInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	month, err := valueobject.ParseMonth("2025-06")
	require.NoError(t, err)

	work, err := billing.NewInvoiceItem("業務委託費", decimal.NewFromInt(300000), true, 1)
	require.NoError(t, err)
	transport, err := billing.NewInvoiceItem("交通費", decimal.NewFromInt(5000), false, 2)
	require.NoError(t, err)

	inv, err := billing.NewInvoice(uuid.New(), month, 1, []billing.InvoiceItem{work, transport})
	require.NoError(t, err)
	return inv
}

func testMember(t *testing.T) *identity.Member {
	t.Helper()
	member, err := identity.NewMember("山田太郎", identity.CompanyAltius,
		identity.EmploymentEmployee, identity.SalaryHourly,
		decimal.NewFromInt(3000), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}

func TestInvoiceWorkbook_Render(t *testing.T) {
	issuer := config.IssuerConfig{
		Name:          "株式会社アルティウス",
		Address:       "東京都千代田区1-1-1",
		BankName:      "みずほ銀行",
		BankBranch:    "本店",
		AccountType:   "普通",
		AccountNumber: "1234567",
		AccountHolder: "カ)アルティウス",
	}
	renderer := NewInvoiceWorkbook(issuer)
	inv := testInvoice(t)

	data, err := renderer.Render(inv, testMember(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(invoiceSheet, ref)
		require.NoError(t, err)
		return v
	}

	t.Run("title and metadata", func(t *testing.T) {
		assert.Equal(t, "請求書", cell("A1"))
		assert.Equal(t, inv.Number, cell("B3"))
		assert.Equal(t, "2025-06", cell("B4"))
		assert.Equal(t, "山田太郎", cell("B6"))
	})

	t.Run("taxable section with subtotal", func(t *testing.T) {
		assert.Equal(t, "課税対象", cell("A8"))
		assert.Equal(t, "業務委託費", cell("A9"))
		assert.Equal(t, "300000", cell("C9"))
		assert.Equal(t, "小計", cell("A10"))
		assert.Equal(t, "300000", cell("C10"))
	})

	t.Run("non-taxable section with subtotal", func(t *testing.T) {
		assert.Equal(t, "非課税", cell("A12"))
		assert.Equal(t, "交通費", cell("A13"))
		assert.Equal(t, "5000", cell("C13"))
		assert.Equal(t, "小計", cell("A14"))
		assert.Equal(t, "5000", cell("C14"))
	})

	t.Run("tax line and grand total", func(t *testing.T) {
		assert.Equal(t, "消費税(10%)", cell("A16"))
		assert.Equal(t, "30000", cell("C16"))
		assert.Equal(t, "合計金額", cell("A17"))
		assert.Equal(t, "335000", cell("C17"))
	})

	t.Run("issuer footer", func(t *testing.T) {
		assert.Equal(t, "株式会社アルティウス", cell("A19"))
		assert.Contains(t, cell("A21"), "みずほ銀行")
		assert.Contains(t, cell("A21"), "1234567")
	})
}

func TestFilename(t *testing.T) {
	inv := testInvoice(t)
	assert.Equal(t, inv.Number+".xlsx", Filename(inv))
}
