package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrm/backend/internal/domain/identity"
)

// MemberModel is the persistence model for the Member domain entity
type MemberModel struct {
	BaseColumns
	Name              string                    `gorm:"type:varchar(200);not null"`
	NameKana          string                    `gorm:"type:varchar(200)"`
	Company           identity.Company          `gorm:"type:varchar(20);not null;index"`
	EmploymentStatus  identity.EmploymentStatus `gorm:"type:varchar(30);not null"`
	SalaryType        identity.SalaryType       `gorm:"type:varchar(10);not null"`
	SalaryAmount      decimal.Decimal           `gorm:"type:numeric(14,2);not null"`
	JoinDate          time.Time                 `gorm:"type:date;not null"`
	DepartureDate     *time.Time                `gorm:"type:date"`
	Phone             string                    `gorm:"type:varchar(50)"`
	Address           string                    `gorm:"type:varchar(500)"`
	ContactEmail      string                    `gorm:"type:varchar(255)"`
	BankName          string                    `gorm:"type:varchar(100)"`
	BankBranch        string                    `gorm:"type:varchar(100)"`
	BankAccountType   string                    `gorm:"type:varchar(20)"`
	BankAccountNumber string                    `gorm:"type:varchar(20)"`
	BankAccountHolder string                    `gorm:"type:varchar(100)"`
	Notes             string                    `gorm:"type:text"`
	DeletedAt         *time.Time                `gorm:"index"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member entity
func (m *MemberModel) ToDomain() *identity.Member {
	return &identity.Member{
		BaseEntity:       m.BaseColumns.entity(),
		Name:             m.Name,
		NameKana:         m.NameKana,
		Company:          m.Company,
		EmploymentStatus: m.EmploymentStatus,
		SalaryType:       m.SalaryType,
		SalaryAmount:     m.SalaryAmount,
		JoinDate:         dateFromColumn(m.JoinDate),
		DepartureDate:    datePtrFromColumn(m.DepartureDate),
		Phone:            m.Phone,
		Address:          m.Address,
		ContactEmail:     m.ContactEmail,
		Bank: identity.BankAccount{
			BankName:      m.BankName,
			BranchName:    m.BankBranch,
			AccountType:   m.BankAccountType,
			AccountNumber: m.BankAccountNumber,
			AccountHolder: m.BankAccountHolder,
		},
		Notes:     m.Notes,
		DeletedAt: m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Member entity
func (m *MemberModel) FromDomain(e *identity.Member) {
	m.setEntity(e.BaseEntity)
	m.Name = e.Name
	m.NameKana = e.NameKana
	m.Company = e.Company
	m.EmploymentStatus = e.EmploymentStatus
	m.SalaryType = e.SalaryType
	m.SalaryAmount = e.SalaryAmount
	m.JoinDate = dateColumn(e.JoinDate)
	m.DepartureDate = datePtrColumn(e.DepartureDate)
	m.Phone = e.Phone
	m.Address = e.Address
	m.ContactEmail = e.ContactEmail
	m.BankName = e.Bank.BankName
	m.BankBranch = e.Bank.BranchName
	m.BankAccountType = e.Bank.AccountType
	m.BankAccountNumber = e.Bank.AccountNumber
	m.BankAccountHolder = e.Bank.AccountHolder
	m.Notes = e.Notes
	m.DeletedAt = e.DeletedAt
}

// MemberModelFromDomain creates a new persistence model from a domain entity
func MemberModelFromDomain(e *identity.Member) *MemberModel {
	m := &MemberModel{}
	m.FromDomain(e)
	return m
}

// UserAccountModel is the persistence model for the UserAccount entity
type UserAccountModel struct {
	BaseColumns
	MemberID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(10);not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserAccountModel) TableName() string {
	return "user_accounts"
}

// ToDomain converts the persistence model to a domain UserAccount entity
func (m *UserAccountModel) ToDomain() *identity.UserAccount {
	return &identity.UserAccount{
		BaseEntity:   m.BaseColumns.entity(),
		MemberID:     m.MemberID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain UserAccount
func (m *UserAccountModel) FromDomain(e *identity.UserAccount) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Email = e.Email
	m.PasswordHash = e.PasswordHash
	m.Role = e.Role
	m.LastLoginAt = e.LastLoginAt
}

// UserAccountModelFromDomain creates a new persistence model from a domain entity
func UserAccountModelFromDomain(e *identity.UserAccount) *UserAccountModel {
	m := &UserAccountModel{}
	m.FromDomain(e)
	return m
}
