package billing

import (
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/identity"
)

// ClosingConfirmStatus tags how far a member's month has moved through
// attendance review. "forced" is reserved in the taxonomy but the
// derivation never produces it.
type ClosingConfirmStatus string

const (
	ClosingNotSent   ClosingConfirmStatus = "not_sent"
	ClosingWaiting   ClosingConfirmStatus = "waiting"
	ClosingConfirmed ClosingConfirmStatus = "confirmed"
	ClosingForced    ClosingConfirmStatus = "forced"
)

// ClosingInvoiceStatus is the invoice state shown on closing views
type ClosingInvoiceStatus string

const (
	ClosingInvoiceNone           ClosingInvoiceStatus = "none"
	ClosingInvoiceGenerated      ClosingInvoiceStatus = "generated"
	ClosingInvoiceSent           ClosingInvoiceStatus = "sent"
	ClosingInvoiceAccountingSent ClosingInvoiceStatus = "accounting_sent"
)

// ClosingSummary is one member's monthly rollup of hours, review state
// and estimated payout
type ClosingSummary struct {
	WorkDays        int
	TotalHours      decimal.Decimal
	MissingDays     int
	EstimatedAmount decimal.Decimal
	ConfirmStatus   ClosingConfirmStatus
	InvoiceStatus   ClosingInvoiceStatus
}

// ComputeClosing derives a member's monthly closing summary from their
// attendance rows, schedule entries and invoice, if any. It is a pure
// function of its inputs so the figures are reproducible at any time.
//
// The estimated amount prefers an existing invoice total; without one it
// falls back to hourly rate times total hours rounded to whole yen, or
// the flat amount for monthly salaried members.
func ComputeClosing(member *identity.Member, records []*attendance.Attendance, schedules []*attendance.WorkSchedule, invoice *Invoice) ClosingSummary {
	var summary ClosingSummary

	totalMinutes := 0
	notifiedCount := 0
	confirmedCount := 0
	attendedDates := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.ClockIn == nil {
			continue
		}
		summary.WorkDays++
		totalMinutes += rec.WorkMinutes
		attendedDates[rec.Date.String()] = true
		if rec.Notified {
			notifiedCount++
		}
		if rec.IsReviewed() {
			confirmedCount++
		}
	}

	for _, sch := range schedules {
		if sch.DayOff {
			continue
		}
		if !attendedDates[sch.Date.String()] {
			summary.MissingDays++
		}
	}

	summary.TotalHours = decimal.NewFromInt(int64(totalMinutes)).
		Div(decimal.NewFromInt(60)).Round(1)

	switch {
	case invoice != nil:
		summary.EstimatedAmount = invoice.TotalAmount
	case member.SalaryType == identity.SalaryHourly:
		summary.EstimatedAmount = summary.TotalHours.Mul(member.SalaryAmount).Round(0)
	default:
		summary.EstimatedAmount = member.SalaryAmount
	}

	switch {
	case summary.WorkDays > 0 && confirmedCount >= summary.WorkDays:
		summary.ConfirmStatus = ClosingConfirmed
	case notifiedCount > 0:
		summary.ConfirmStatus = ClosingWaiting
	default:
		summary.ConfirmStatus = ClosingNotSent
	}

	if invoice == nil {
		summary.InvoiceStatus = ClosingInvoiceNone
	} else {
		summary.InvoiceStatus = ClosingInvoiceStatus(invoice.Status)
	}

	return summary
}
