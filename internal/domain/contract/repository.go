package contract

import (
	"context"

	"github.com/google/uuid"
)

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	Create(ctx context.Context, contract *MemberContract) error
	Update(ctx context.Context, contract *MemberContract) error
	FindByID(ctx context.Context, id uuid.UUID) (*MemberContract, error)
	FindByEnvelopeID(ctx context.Context, envelopeID string) (*MemberContract, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*MemberContract, error)
	FindAll(ctx context.Context) ([]*MemberContract, error)
}
