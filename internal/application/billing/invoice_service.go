package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/notify"
)

// WorkbookRenderer renders an invoice into xlsx bytes
type WorkbookRenderer interface {
	Render(inv *billing.Invoice, member *identity.Member) ([]byte, error)
}

// InvoiceService handles invoice generation, download and delivery
type InvoiceService struct {
	invoiceRepo     billing.InvoiceRepository
	memberRepo      identity.MemberRepository
	renderer        WorkbookRenderer
	mailer          notify.Mailer
	accountingEmail string
	logger          *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	memberRepo identity.MemberRepository,
	renderer WorkbookRenderer,
	mailer notify.Mailer,
	accountingEmail string,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		memberRepo:      memberRepo,
		renderer:        renderer,
		mailer:          mailer,
		accountingEmail: accountingEmail,
		logger:          logger,
	}
}

// Generate creates the (member, month) invoice or replaces its items.
// Regeneration keeps the invoice number and resets the status; new
// invoices get the next per-month sequence.
func (s *InvoiceService) Generate(ctx context.Context, input GenerateInvoiceInput) (*billing.Invoice, error) {
	if _, err := s.memberRepo.FindByID(ctx, input.MemberID); err != nil {
		return nil, err
	}

	items := make([]billing.InvoiceItem, 0, len(input.Items))
	for i, line := range input.Items {
		item, err := billing.NewInvoiceItem(line.Description, line.Amount, line.Taxable, i+1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	existing, err := s.invoiceRepo.FindByMemberAndMonth(ctx, input.MemberID, input.Month)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		sequence, err := s.invoiceRepo.NextSequence(ctx, input.Month)
		if err != nil {
			return nil, err
		}
		invoice, err := billing.NewInvoice(input.MemberID, input.Month, sequence, items)
		if err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return nil, err
		}
		s.logger.Info("invoice generated",
			zap.String("number", invoice.Number),
			zap.String("member_id", input.MemberID.String()))
		return invoice, nil
	case err != nil:
		return nil, err
	}

	if err := existing.Regenerate(items); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Info("invoice regenerated", zap.String("number", existing.Number))
	return existing, nil
}

// Get returns one invoice
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// MemberMonth returns the invoice for one member and month
func (s *InvoiceService) MemberMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*billing.Invoice, error) {
	return s.invoiceRepo.FindByMemberAndMonth(ctx, memberID, month)
}

// Month returns all invoices for a month
func (s *InvoiceService) Month(ctx context.Context, month valueobject.Month) ([]*billing.Invoice, error) {
	return s.invoiceRepo.FindByMonth(ctx, month)
}

// MemberHistory returns a member's invoices, newest first
func (s *InvoiceService) MemberHistory(ctx context.Context, memberID uuid.UUID) ([]*billing.Invoice, error) {
	return s.invoiceRepo.FindByMemberID(ctx, memberID)
}

// Workbook renders the invoice as an xlsx download
func (s *InvoiceService) Workbook(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	member, err := s.memberRepo.FindByID(ctx, invoice.MemberID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.Render(invoice, member)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.xlsx", invoice.Number), nil
}

// SendToAccounting emails the workbook to the accounting address and
// advances the invoice status. The email must succeed before the status
// moves.
func (s *InvoiceService) SendToAccounting(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByID(ctx, invoice.MemberID)
	if err != nil {
		return nil, err
	}
	if s.accountingEmail == "" {
		return nil, shared.NewDomainError("NOT_CONFIGURED", "Accounting email is not configured")
	}

	data, err := s.renderer.Render(invoice, member)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("請求書 %s (%s)", invoice.Number, member.Name)
	body := fmt.Sprintf("%s の %s 分請求書を送付します。", member.Name, invoice.Month.String())
	if err := s.mailer.Send(ctx, s.accountingEmail, subject, body, notify.Attachment{
		Filename: fmt.Sprintf("%s.xlsx", invoice.Number),
		Content:  data,
	}); err != nil {
		return nil, shared.NewDomainError("EMAIL_FAILED", "Failed to send invoice email")
	}

	if err := invoice.MarkAccountingSent(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, invoice); err != nil {
		return nil, err
	}
	s.logger.Info("invoice sent to accounting", zap.String("number", invoice.Number))
	return invoice, nil
}

// MarkSent records that the invoice went out to the client
func (s *InvoiceService) MarkSent(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
