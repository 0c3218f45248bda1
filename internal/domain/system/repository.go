package system

import (
	"context"

	"github.com/google/uuid"
)

// ConfigRepository defines the interface for system config persistence
type ConfigRepository interface {
	// Upsert inserts or replaces the entry for its key
	Upsert(ctx context.Context, config *SystemConfig) error

	FindByKey(ctx context.Context, key string) (*SystemConfig, error)
	FindAll(ctx context.Context) ([]*SystemConfig, error)
}

// ToolRepository defines the interface for member tool persistence
type ToolRepository interface {
	Create(ctx context.Context, tool *MemberTool) error
	Update(ctx context.Context, tool *MemberTool) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*MemberTool, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*MemberTool, error)
	FindAll(ctx context.Context) ([]*MemberTool, error)
}
