package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/audit"
)

// ListInput contains filter options for browsing the audit trail
type ListInput struct {
	ActorID    *uuid.UUID
	EntityType string
	Limit      int
	Offset     int
}

// LogPage is one page of audit entries with the unfiltered total
type LogPage struct {
	Entries []*audit.AuditLog `json:"entries"`
	Total   int64             `json:"total"`
}

// AuditService exposes read access to the append-only change trail.
// Writes happen inside the mutating services' transactions, not here.
type AuditService struct {
	repo audit.Repository
}

// NewAuditService creates a new audit service
func NewAuditService(repo audit.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns audit entries newest first, optionally filtered by actor
// and entity type
func (s *AuditService) List(ctx context.Context, input ListInput) (*LogPage, error) {
	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, total, err := s.repo.FindAll(ctx, audit.Filter{
		ActorID:    input.ActorID,
		EntityType: input.EntityType,
		Limit:      limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &LogPage{Entries: entries, Total: total}, nil
}
