package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/infrastructure/config"
)

const invoiceSheet = "Invoice"

// InvoiceWorkbook renders an invoice into a fixed-layout xlsx workbook:
// title, invoice metadata, the taxable and non-taxable line sections with
// subtotals, the tax line, the grand total and the issuer banking footer.
type InvoiceWorkbook struct {
	issuer config.IssuerConfig
}

// NewInvoiceWorkbook creates a renderer with the issuer footer details
func NewInvoiceWorkbook(issuer config.IssuerConfig) *InvoiceWorkbook {
	return &InvoiceWorkbook{issuer: issuer}
}

// Render produces the workbook bytes for one invoice
func (w *InvoiceWorkbook) Render(inv *billing.Invoice, member *identity.Member) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(invoiceSheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("spreadsheet: drop default sheet: %w", err)
	}

	set := func(cell string, value any) {
		// excelize only errors on invalid coordinates, which are fixed here
		_ = f.SetCellValue(invoiceSheet, cell, value)
	}

	set("A1", "請求書")
	set("A3", "請求書番号")
	set("B3", inv.Number)
	set("A4", "対象月")
	set("B4", inv.Month.String())
	set("A5", "発行日")
	set("B5", inv.IssuedAt.Format("2006-01-02"))
	set("A6", "請求元")
	set("B6", member.Name)

	row := 8
	set(fmt.Sprintf("A%d", row), "課税対象")
	row++
	for _, item := range inv.Items {
		if !item.Taxable {
			continue
		}
		set(fmt.Sprintf("A%d", row), item.Description)
		set(fmt.Sprintf("C%d", row), amount(item.Amount.String()))
		row++
	}
	set(fmt.Sprintf("A%d", row), "小計")
	set(fmt.Sprintf("C%d", row), amount(inv.TaxableAmount.String()))
	row += 2

	set(fmt.Sprintf("A%d", row), "非課税")
	row++
	for _, item := range inv.Items {
		if item.Taxable {
			continue
		}
		set(fmt.Sprintf("A%d", row), item.Description)
		set(fmt.Sprintf("C%d", row), amount(item.Amount.String()))
		row++
	}
	set(fmt.Sprintf("A%d", row), "小計")
	set(fmt.Sprintf("C%d", row), amount(inv.NonTaxableAmount.String()))
	row += 2

	set(fmt.Sprintf("A%d", row), "消費税(10%)")
	set(fmt.Sprintf("C%d", row), amount(inv.TaxAmount.String()))
	row++
	set(fmt.Sprintf("A%d", row), "合計金額")
	set(fmt.Sprintf("C%d", row), amount(inv.TotalAmount.String()))
	row += 2

	set(fmt.Sprintf("A%d", row), w.issuer.Name)
	row++
	set(fmt.Sprintf("A%d", row), w.issuer.Address)
	row++
	set(fmt.Sprintf("A%d", row), fmt.Sprintf("%s %s %s %s %s",
		w.issuer.BankName, w.issuer.BankBranch, w.issuer.AccountType,
		w.issuer.AccountNumber, w.issuer.AccountHolder))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("spreadsheet: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for an invoice workbook
func Filename(inv *billing.Invoice) string {
	return fmt.Sprintf("%s.xlsx", inv.Number)
}

// amount parses a decimal string into a float cell value so spreadsheet
// consumers see numbers rather than text
func amount(s string) any {
	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return s
	}
	return v
}
