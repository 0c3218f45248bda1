package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/attendance"
	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// ClosingService derives the monthly closing board. Summaries are pure
// functions of attendance, schedules and invoices; nothing is stored.
type ClosingService struct {
	memberRepo     identity.MemberRepository
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   attendance.WorkScheduleRepository
	invoiceRepo    billing.InvoiceRepository
	logger         *zap.Logger
}

// NewClosingService creates a new closing service
func NewClosingService(
	memberRepo identity.MemberRepository,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo attendance.WorkScheduleRepository,
	invoiceRepo billing.InvoiceRepository,
	logger *zap.Logger,
) *ClosingService {
	return &ClosingService{
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		invoiceRepo:    invoiceRepo,
		logger:         logger,
	}
}

// Member computes the closing summary for one member and month
func (s *ClosingService) Member(ctx context.Context, memberID uuid.UUID, month valueobject.Month) (*MemberClosing, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.closingFor(ctx, member, month)
}

// Month computes the closing board for every active member
func (s *ClosingService) Month(ctx context.Context, month valueobject.Month) ([]*MemberClosing, error) {
	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	board := make([]*MemberClosing, 0, len(members))
	for _, member := range members {
		row, err := s.closingFor(ctx, member, month)
		if err != nil {
			return nil, err
		}
		board = append(board, row)
	}
	return board, nil
}

func (s *ClosingService) closingFor(ctx context.Context, member *identity.Member, month valueobject.Month) (*MemberClosing, error) {
	records, err := s.attendanceRepo.FindByMemberAndMonth(ctx, member.ID, month)
	if err != nil {
		return nil, err
	}
	schedules, err := s.scheduleRepo.FindByMemberAndMonth(ctx, member.ID, month)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByMemberAndMonth(ctx, member.ID, month)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return &MemberClosing{
		Member:  member,
		Month:   month,
		Summary: billing.ComputeClosing(member, records, schedules, invoice),
	}, nil
}
