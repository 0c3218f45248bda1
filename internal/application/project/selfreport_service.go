package project

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// SelfReportService handles monthly per-project hour reports
type SelfReportService struct {
	reportRepo  project.SelfReportRepository
	projectRepo project.ProjectRepository
	logger      *zap.Logger
}

// NewSelfReportService creates a new self-report service
func NewSelfReportService(
	reportRepo project.SelfReportRepository,
	projectRepo project.ProjectRepository,
	logger *zap.Logger,
) *SelfReportService {
	return &SelfReportService{
		reportRepo:  reportRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Submit replaces a member's report lines for a month in one batch
func (s *SelfReportService) Submit(ctx context.Context, input SubmitSelfReportInput) ([]*project.SelfReport, error) {
	reports := make([]*project.SelfReport, 0, len(input.Entries))
	for _, entry := range input.Entries {
		if _, err := s.projectRepo.FindByID(ctx, entry.ProjectID); err != nil {
			return nil, err
		}
		report, err := project.NewSelfReport(input.MemberID, entry.ProjectID, input.Month, entry.Hours)
		if err != nil {
			return nil, err
		}
		report.Notes = entry.Notes
		reports = append(reports, report)
	}
	if err := s.reportRepo.UpsertAll(ctx, reports); err != nil {
		return nil, err
	}
	s.logger.Info("self report submitted",
		zap.String("member_id", input.MemberID.String()),
		zap.String("month", input.Month.String()),
		zap.Int("lines", len(reports)))
	return reports, nil
}

// MemberMonth returns one member's report lines for a month
func (s *SelfReportService) MemberMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*project.SelfReport, error) {
	return s.reportRepo.FindByMemberAndMonth(ctx, memberID, month)
}

// Month returns every member's report lines for a month
func (s *SelfReportService) Month(ctx context.Context, month valueobject.Month) ([]*project.SelfReport, error) {
	return s.reportRepo.FindByMonth(ctx, month)
}
