package system

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
)

// MemberTool is one tool or subscription issued to a member, tracked for
// inventory and cost purposes
type MemberTool struct {
	shared.BaseEntity
	MemberID    uuid.UUID
	Name        string
	MonthlyCost decimal.Decimal
	AccountInfo string
	Notes       string
	Active      bool
}

// NewMemberTool creates a tool inventory entry
func NewMemberTool(memberID uuid.UUID, name string, monthlyCost decimal.Decimal) (*MemberTool, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tool name cannot be empty")
	}
	if monthlyCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Monthly cost cannot be negative")
	}
	return &MemberTool{
		BaseEntity:  shared.NewBaseEntity(),
		MemberID:    memberID,
		Name:        name,
		MonthlyCost: monthlyCost,
		Active:      true,
	}, nil
}

// Deactivate marks the tool as returned or cancelled
func (t *MemberTool) Deactivate() {
	t.Active = false
	t.Touch()
}
