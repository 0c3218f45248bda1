package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
)

// Action is the kind of mutation an audit entry records
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AuditLog is one append-only entry in the change trail. Entries are
// written inside the same transaction as the mutation they describe.
type AuditLog struct {
	shared.BaseEntity
	ActorID    uuid.UUID
	Action     Action
	EntityType string
	EntityID   uuid.UUID
	Detail     string
}

// NewAuditLog creates an audit entry. Detail carries a JSON snapshot of
// what changed.
func NewAuditLog(actorID uuid.UUID, action Action, entityType string, entityID uuid.UUID, detail string) (*AuditLog, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type cannot be empty")
	}
	return &AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}, nil
}

// Filter contains filter options for querying the audit trail
type Filter struct {
	ActorID    *uuid.UUID
	EntityType string
	Limit      int
	Offset     int
}

// Repository defines the interface for audit log persistence.
// There is no update or delete; the trail is append-only.
type Repository interface {
	Append(ctx context.Context, entry *AuditLog) error
	FindAll(ctx context.Context, filter Filter) ([]*AuditLog, int64, error)
}
