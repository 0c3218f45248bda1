package contract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/contract"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/infrastructure/esign"
)

// CreateContractInput contains the input for a draft contract
type CreateContractInput struct {
	MemberID    uuid.UUID
	TemplateKey string
	Title       string
}

// WebhookEvent is an inbound provider status notification
type WebhookEvent struct {
	EnvelopeID string `json:"envelope_id"`
	Status     string `json:"status"`
}

// ContractService tracks member contracts through the e-signature provider
type ContractService struct {
	contractRepo contract.ContractRepository
	memberRepo   identity.MemberRepository
	provider     esign.Provider
	logger       *zap.Logger
}

// NewContractService creates a new contract service
func NewContractService(
	contractRepo contract.ContractRepository,
	memberRepo identity.MemberRepository,
	provider esign.Provider,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		memberRepo:   memberRepo,
		provider:     provider,
		logger:       logger,
	}
}

// Create creates a draft contract from a template
func (s *ContractService) Create(ctx context.Context, input CreateContractInput) (*contract.MemberContract, error) {
	if _, err := s.memberRepo.FindByID(ctx, input.MemberID); err != nil {
		return nil, err
	}
	c, err := contract.NewMemberContract(input.MemberID, input.TemplateKey, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Send creates a provider envelope for a draft contract. Only drafts can
// be sent; the envelope ID is recorded with the status transition.
func (s *ContractService) Send(ctx context.Context, id uuid.UUID) (*contract.MemberContract, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != contract.StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft contracts can be sent")
	}
	member, err := s.memberRepo.FindByID(ctx, c.MemberID)
	if err != nil {
		return nil, err
	}

	envelopeID, err := s.provider.CreateEnvelope(ctx, esign.CreateEnvelopeInput{
		TemplateKey:    c.TemplateKey,
		Title:          c.Title,
		RecipientName:  member.Name,
		RecipientEmail: member.ContactEmail,
	})
	if err != nil {
		s.logger.Error("envelope creation failed", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("PROVIDER_ERROR", "Failed to create signature envelope")
	}

	if err := c.MarkSent(envelopeID); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("contract sent",
		zap.String("contract_id", c.ID.String()),
		zap.String("envelope_id", envelopeID))
	return c, nil
}

// Void cancels a contract locally and at the provider when an envelope exists
func (s *ContractService) Void(ctx context.Context, id uuid.UUID) (*contract.MemberContract, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Void(); err != nil {
		return nil, err
	}
	if c.EnvelopeID != "" {
		if err := s.provider.VoidEnvelope(ctx, c.EnvelopeID); err != nil {
			// Local state wins; the provider side is retried manually
			s.logger.Warn("provider void failed",
				zap.String("envelope_id", c.EnvelopeID), zap.Error(err))
		}
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DocumentURL returns a link to the signed document of a completed contract
func (s *ContractService) DocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !c.CanDownload() {
		return "", shared.NewDomainError("INVALID_STATE", "Contract is not completed")
	}
	url, err := s.provider.DocumentURL(ctx, c.EnvelopeID)
	if err != nil {
		return "", shared.NewDomainError("PROVIDER_ERROR", "Failed to fetch document link")
	}
	return url, nil
}

// HandleWebhook applies a provider status notification. Unknown envelope
// IDs and unknown statuses are both ignored so the provider never retries.
func (s *ContractService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	c, err := s.contractRepo.FindByEnvelopeID(ctx, event.EnvelopeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("webhook for unknown envelope", zap.String("envelope_id", event.EnvelopeID))
			return nil
		}
		return err
	}
	if !c.ApplyProviderStatus(event.Status, time.Now()) {
		s.logger.Debug("webhook status ignored",
			zap.String("envelope_id", event.EnvelopeID),
			zap.String("status", event.Status))
		return nil
	}
	if err := s.contractRepo.Update(ctx, c); err != nil {
		return err
	}
	s.logger.Info("contract status updated",
		zap.String("contract_id", c.ID.String()),
		zap.String("status", string(c.Status)))
	return nil
}

// Get returns one contract
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*contract.MemberContract, error) {
	return s.contractRepo.FindByID(ctx, id)
}

// MemberContracts returns a member's contracts, newest first
func (s *ContractService) MemberContracts(ctx context.Context, memberID uuid.UUID) ([]*contract.MemberContract, error) {
	return s.contractRepo.FindByMemberID(ctx, memberID)
}

// List returns all contracts, newest first
func (s *ContractService) List(ctx context.Context) ([]*contract.MemberContract, error) {
	return s.contractRepo.FindAll(ctx)
}
