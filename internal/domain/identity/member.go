package identity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
)

// Company identifies which of the two affiliated companies a member belongs to
type Company string

const (
	CompanyAltius  Company = "altius"
	CompanyBrextia Company = "brextia"
)

// IsValid checks if the company is a known value
func (c Company) IsValid() bool {
	return c == CompanyAltius || c == CompanyBrextia
}

// EmploymentStatus represents a member's employment classification
type EmploymentStatus string

const (
	EmploymentExecutive      EmploymentStatus = "executive"
	EmploymentEmployee       EmploymentStatus = "employee"
	EmploymentInternFull     EmploymentStatus = "intern_full"
	EmploymentInternTraining EmploymentStatus = "intern_training"
	EmploymentTrainingMember EmploymentStatus = "training_member"
)

// IsValid checks if the employment status is a known value
func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentExecutive, EmploymentEmployee, EmploymentInternFull,
		EmploymentInternTraining, EmploymentTrainingMember:
		return true
	}
	return false
}

// SalaryType represents how a member's compensation is computed
type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryMonthly SalaryType = "monthly"
)

// IsValid checks if the salary type is a known value
func (s SalaryType) IsValid() bool {
	return s == SalaryHourly || s == SalaryMonthly
}

// BankAccount holds a member's payout banking details
type BankAccount struct {
	BankName      string
	BranchName    string
	AccountType   string
	AccountNumber string
	AccountHolder string
}

// Member represents a person working for one of the companies.
// Members are soft-deleted so attendance and billing history survives departure.
type Member struct {
	shared.BaseEntity
	Name             string
	NameKana         string
	Company          Company
	EmploymentStatus EmploymentStatus
	SalaryType       SalaryType
	SalaryAmount     decimal.Decimal
	JoinDate         valueobject.Date
	DepartureDate    *valueobject.Date
	Phone            string
	Address          string
	ContactEmail     string
	Bank             BankAccount
	Notes            string
	DeletedAt        *time.Time
}

// NewMember creates a new member with required fields
func NewMember(name string, company Company, status EmploymentStatus, salaryType SalaryType, salaryAmount decimal.Decimal, joinDate valueobject.Date) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Member name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Member name cannot exceed 200 characters")
	}
	if !company.IsValid() {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Unknown company")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_EMPLOYMENT_STATUS", "Unknown employment status")
	}
	if !salaryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALARY_TYPE", "Unknown salary type")
	}
	if salaryAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SALARY_AMOUNT", "Salary amount cannot be negative")
	}
	if joinDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_JOIN_DATE", "Join date is required")
	}

	return &Member{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		Company:          company,
		EmploymentStatus: status,
		SalaryType:       salaryType,
		SalaryAmount:     salaryAmount,
		JoinDate:         joinDate,
	}, nil
}

// Rename changes the member's display name
func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Member name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Member name cannot exceed 200 characters")
	}
	m.Name = name
	m.Touch()
	return nil
}

// ChangeEmploymentStatus updates the employment classification
func (m *Member) ChangeEmploymentStatus(status EmploymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_EMPLOYMENT_STATUS", "Unknown employment status")
	}
	m.EmploymentStatus = status
	m.Touch()
	return nil
}

// ChangeSalary updates the salary type and amount together
func (m *Member) ChangeSalary(salaryType SalaryType, amount decimal.Decimal) error {
	if !salaryType.IsValid() {
		return shared.NewDomainError("INVALID_SALARY_TYPE", "Unknown salary type")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY_AMOUNT", "Salary amount cannot be negative")
	}
	m.SalaryType = salaryType
	m.SalaryAmount = amount
	m.Touch()
	return nil
}

// SetContact updates contact fields
func (m *Member) SetContact(phone, address, email string) {
	m.Phone = strings.TrimSpace(phone)
	m.Address = strings.TrimSpace(address)
	m.ContactEmail = strings.ToLower(strings.TrimSpace(email))
	m.Touch()
}

// SetBank updates banking details
func (m *Member) SetBank(bank BankAccount) {
	m.Bank = bank
	m.Touch()
}

// Retire soft-deletes the member and records the departure date
func (m *Member) Retire(departure valueobject.Date) error {
	if m.DeletedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Member is already retired")
	}
	if departure.Before(m.JoinDate) {
		return shared.NewDomainError("INVALID_DEPARTURE_DATE", "Departure date cannot precede join date")
	}
	now := time.Now()
	m.DeletedAt = &now
	m.DepartureDate = &departure
	m.UpdatedAt = now
	return nil
}

// IsActive reports whether the member has not been soft-deleted
func (m *Member) IsActive() bool {
	return m.DeletedAt == nil
}
