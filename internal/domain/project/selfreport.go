package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// SelfReport is a member's self-declared hours on one project for one
// month, independent of attendance records. Unique per (member, month,
// project).
type SelfReport struct {
	shared.BaseEntity
	MemberID  uuid.UUID
	ProjectID uuid.UUID
	Month     valueobject.Month
	Hours     decimal.Decimal
	Notes     string
}

// NewSelfReport creates a monthly self-report entry
func NewSelfReport(memberID, projectID uuid.UUID, month valueobject.Month, hours decimal.Decimal) (*SelfReport, error) {
	if memberID == uuid.Nil || projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member and project are required")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month is required")
	}
	if hours.IsNegative() {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours cannot be negative")
	}
	if hours.GreaterThan(decimal.NewFromInt(744)) {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours exceed the length of a month")
	}
	return &SelfReport{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		ProjectID:  projectID,
		Month:      month,
		Hours:      hours,
	}, nil
}

// SetHours replaces the declared hours
func (s *SelfReport) SetHours(hours decimal.Decimal) error {
	if hours.IsNegative() || hours.GreaterThan(decimal.NewFromInt(744)) {
		return shared.NewDomainError("INVALID_HOURS", "Hours out of range")
	}
	s.Hours = hours
	s.Touch()
	return nil
}
