package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
)

// ContractStatus represents a contract's e-signature lifecycle state
type ContractStatus string

const (
	StatusDraft       ContractStatus = "draft"
	StatusSent        ContractStatus = "sent"
	StatusWaitingSign ContractStatus = "waiting_sign"
	StatusCompleted   ContractStatus = "completed"
	StatusVoided      ContractStatus = "voided"
)

// MemberContract tracks one document sent to a member for signature
// through the external e-signature provider
type MemberContract struct {
	shared.BaseEntity
	MemberID    uuid.UUID
	TemplateKey string
	Title       string
	Status      ContractStatus
	EnvelopeID  string
	CompletedAt *time.Time
}

// NewMemberContract creates a draft contract from a template
func NewMemberContract(memberID uuid.UUID, templateKey, title string) (*MemberContract, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	templateKey = strings.TrimSpace(templateKey)
	if templateKey == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template key cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Contract title cannot be empty")
	}
	return &MemberContract{
		BaseEntity:  shared.NewBaseEntity(),
		MemberID:    memberID,
		TemplateKey: templateKey,
		Title:       title,
		Status:      StatusDraft,
	}, nil
}

// MarkSent records that an envelope was created for a draft contract
func (c *MemberContract) MarkSent(envelopeID string) error {
	if c.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be sent")
	}
	if envelopeID == "" {
		return shared.NewDomainError("INVALID_ENVELOPE", "Envelope ID cannot be empty")
	}
	c.EnvelopeID = envelopeID
	c.Status = StatusSent
	c.Touch()
	return nil
}

// Void cancels a contract that has not completed
func (c *MemberContract) Void() error {
	if c.Status == StatusVoided || c.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Contract cannot be voided in its current state")
	}
	c.Status = StatusVoided
	c.Touch()
	return nil
}

// CanDownload reports whether the signed document is retrievable
func (c *MemberContract) CanDownload() bool {
	return c.Status == StatusCompleted
}

// ApplyProviderStatus maps an e-signature provider status string onto the
// contract. Unknown statuses are ignored so webhook replays of newer
// provider vocabularies stay harmless; the boolean reports whether the
// contract changed.
func (c *MemberContract) ApplyProviderStatus(providerStatus string, at time.Time) bool {
	switch strings.ToLower(providerStatus) {
	case "sent":
		c.Status = StatusSent
	case "delivered":
		c.Status = StatusWaitingSign
	case "completed":
		c.Status = StatusCompleted
		t := at
		c.CompletedAt = &t
	// A declined envelope is treated as voided; the distinction lives
	// only on the provider side.
	case "declined", "voided":
		c.Status = StatusVoided
	default:
		return false
	}
	c.Touch()
	return true
}
