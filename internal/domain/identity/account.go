package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrm/backend/internal/domain/shared"
)

// Role represents a login account's access level
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleMember
}

// CanManage reports whether the role carries admin or manager access
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserAccount is a login account, 1:1 with a Member
type UserAccount struct {
	shared.BaseEntity
	MemberID     uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	LastLoginAt  *time.Time
}

// NewUserAccount creates a login account for a member
func NewUserAccount(memberID uuid.UUID, email, password string, role Role) (*UserAccount, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &UserAccount{
		BaseEntity:   shared.NewBaseEntity(),
		MemberID:     memberID,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (a *UserAccount) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password (admin reset, no old password check)
func (a *UserAccount) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	a.PasswordHash = hash
	a.Touch()
	return nil
}

// ChangeRole updates the account role
func (a *UserAccount) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	a.Role = role
	a.Touch()
	return nil
}

// RecordLogin stamps the last successful login time
func (a *UserAccount) RecordLogin(at time.Time) {
	a.LastLoginAt = &at
	a.UpdatedAt = at
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
