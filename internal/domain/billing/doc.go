// Package billing provides domain models for member invoicing and monthly
// closing.
//
// Invoices are issued per member per month. Line items are split into
// taxable and non-taxable amounts; consumption tax is computed on the
// taxable subtotal and rounded half away from zero. Invoice numbers are
// sequenced within a month ("INV-202506-0001").
//
// The monthly closing aggregates attendance, schedules and invoices into a
// per-member summary: worked days, missing days against the submitted
// schedule, total hours and the estimated payout. The estimate prefers the
// invoice total when one exists and otherwise derives from the member's
// salary terms.
package billing
