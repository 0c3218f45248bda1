package identity

import (
	"context"

	"github.com/google/uuid"
)

// MemberFilter contains filter options for querying members
type MemberFilter struct {
	Company          *Company
	EmploymentStatus *EmploymentStatus
	Keyword          string
	IncludeRetired   bool
	Limit            int
	Offset           int
}

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// Create creates a new member
	Create(ctx context.Context, member *Member) error

	// Update updates an existing member
	Update(ctx context.Context, member *Member) error

	// FindByID finds a member by ID, including retired members
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindAll returns members matching the filter with the total count
	FindAll(ctx context.Context, filter MemberFilter) ([]*Member, int64, error)

	// FindActive returns all members that have not been soft-deleted
	FindActive(ctx context.Context) ([]*Member, error)
}

// UserAccountRepository defines the interface for login account persistence
type UserAccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *UserAccount) error

	// Update updates an existing account
	Update(ctx context.Context, account *UserAccount) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*UserAccount, error)

	// FindByEmail finds an account by its login email
	FindByEmail(ctx context.Context, email string) (*UserAccount, error)

	// FindByMemberID finds the account belonging to a member
	FindByMemberID(ctx context.Context, memberID uuid.UUID) (*UserAccount, error)

	// ExistsByEmail checks if a login email is already taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
