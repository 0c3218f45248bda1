package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// LoginInput contains the input for login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the session token and the member behind it
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   AccountInfo
}

// AccountInfo is the session view of an account and its member
type AccountInfo struct {
	AccountID uuid.UUID
	MemberID  uuid.UUID
	Email     string
	Name      string
	Role      identity.Role
	Company   identity.Company
}

// BankInput carries banking fields for create and update
type BankInput struct {
	BankName      string
	BranchName    string
	AccountType   string
	AccountNumber string
	AccountHolder string
}

// CreateMemberInput contains the input for member creation. The member
// and its login account are created together.
type CreateMemberInput struct {
	ActorID          uuid.UUID
	Name             string
	NameKana         string
	Company          identity.Company
	EmploymentStatus identity.EmploymentStatus
	SalaryType       identity.SalaryType
	SalaryAmount     decimal.Decimal
	JoinDate         valueobject.Date
	Phone            string
	Address          string
	ContactEmail     string
	Bank             BankInput
	Notes            string
	LoginEmail       string
	Password         string
	Role             identity.Role
}

// UpdateMemberInput contains the mutable member fields. Nil pointers
// leave the stored value unchanged.
type UpdateMemberInput struct {
	ActorID          uuid.UUID
	MemberID         uuid.UUID
	Name             *string
	NameKana         *string
	EmploymentStatus *identity.EmploymentStatus
	SalaryType       *identity.SalaryType
	SalaryAmount     *decimal.Decimal
	Phone            *string
	Address          *string
	ContactEmail     *string
	Bank             *BankInput
	Notes            *string
	Role             *identity.Role
}

// RetireMemberInput contains the input for soft deletion
type RetireMemberInput struct {
	ActorID       uuid.UUID
	MemberID      uuid.UUID
	DepartureDate valueobject.Date
}

// ListMembersInput mirrors the repository filter
type ListMembersInput struct {
	Company          *identity.Company
	EmploymentStatus *identity.EmploymentStatus
	Keyword          string
	IncludeRetired   bool
	Limit            int
	Offset           int
}

// MemberList is a page of members with the unfiltered total
type MemberList struct {
	Members []*identity.Member
	Total   int64
}

// ChangePasswordInput contains the input for a self-service password change
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	OldPassword string
	NewPassword string
}
