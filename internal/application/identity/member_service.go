package identity

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
)

const memberEntityType = "member"

// MemberService handles member lifecycle operations
type MemberService struct {
	memberRepo  identity.MemberRepository
	accountRepo identity.UserAccountRepository
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo identity.MemberRepository,
	accountRepo identity.UserAccountRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// Create creates a member with its login account and an audit entry in
// one transaction. A taken login email fails the whole group.
func (s *MemberService) Create(ctx context.Context, input CreateMemberInput) (*identity.Member, error) {
	member, err := identity.NewMember(input.Name, input.Company, input.EmploymentStatus,
		input.SalaryType, input.SalaryAmount, input.JoinDate)
	if err != nil {
		return nil, err
	}
	member.NameKana = input.NameKana
	member.SetContact(input.Phone, input.Address, input.ContactEmail)
	member.SetBank(bankFromInput(input.Bank))
	member.Notes = input.Notes

	account, err := identity.NewUserAccount(member.ID, input.LoginEmail, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		taken, err := repos.AccountRepo().ExistsByEmail(ctx, account.Email)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewDomainError("ALREADY_EXISTS", "Login email is already in use")
		}
		if err := repos.MemberRepo().Create(ctx, member); err != nil {
			return err
		}
		if err := repos.AccountRepo().Create(ctx, account); err != nil {
			return err
		}
		return appendAudit(ctx, repos.AuditRepo(), input.ActorID, audit.ActionCreate, member.ID, map[string]any{
			"name":    member.Name,
			"company": member.Company,
			"email":   account.Email,
			"role":    account.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member created",
		zap.String("member_id", member.ID.String()),
		zap.String("company", string(member.Company)))
	return member, nil
}

// Get returns a member by ID, retired ones included
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*identity.Member, error) {
	return s.memberRepo.FindByID(ctx, id)
}

// GetAccount returns the login account behind a member
func (s *MemberService) GetAccount(ctx context.Context, memberID uuid.UUID) (*identity.UserAccount, error) {
	return s.accountRepo.FindByMemberID(ctx, memberID)
}

// List returns members matching the filter
func (s *MemberService) List(ctx context.Context, input ListMembersInput) (*MemberList, error) {
	members, total, err := s.memberRepo.FindAll(ctx, identity.MemberFilter{
		Company:          input.Company,
		EmploymentStatus: input.EmploymentStatus,
		Keyword:          input.Keyword,
		IncludeRetired:   input.IncludeRetired,
		Limit:            input.Limit,
		Offset:           input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &MemberList{Members: members, Total: total}, nil
}

// ListActive returns all members that have not retired
func (s *MemberService) ListActive(ctx context.Context) ([]*identity.Member, error) {
	return s.memberRepo.FindActive(ctx)
}

// Update applies the provided fields and records an audit entry
func (s *MemberService) Update(ctx context.Context, input UpdateMemberInput) (*identity.Member, error) {
	var updated *identity.Member
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		member, err := repos.MemberRepo().FindByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		changed := map[string]any{}

		if input.Name != nil {
			if err := member.Rename(*input.Name); err != nil {
				return err
			}
			changed["name"] = *input.Name
		}
		if input.NameKana != nil {
			member.NameKana = *input.NameKana
			changed["name_kana"] = *input.NameKana
		}
		if input.EmploymentStatus != nil {
			if err := member.ChangeEmploymentStatus(*input.EmploymentStatus); err != nil {
				return err
			}
			changed["employment_status"] = *input.EmploymentStatus
		}
		if input.SalaryType != nil || input.SalaryAmount != nil {
			salaryType := member.SalaryType
			amount := member.SalaryAmount
			if input.SalaryType != nil {
				salaryType = *input.SalaryType
			}
			if input.SalaryAmount != nil {
				amount = *input.SalaryAmount
			}
			if err := member.ChangeSalary(salaryType, amount); err != nil {
				return err
			}
			changed["salary_type"] = salaryType
			changed["salary_amount"] = amount.String()
		}
		if input.Phone != nil || input.Address != nil || input.ContactEmail != nil {
			phone, address, email := member.Phone, member.Address, member.ContactEmail
			if input.Phone != nil {
				phone = *input.Phone
			}
			if input.Address != nil {
				address = *input.Address
			}
			if input.ContactEmail != nil {
				email = *input.ContactEmail
			}
			member.SetContact(phone, address, email)
			changed["contact"] = true
		}
		if input.Bank != nil {
			member.SetBank(bankFromInput(*input.Bank))
			changed["bank"] = true
		}
		if input.Notes != nil {
			member.Notes = *input.Notes
			changed["notes"] = true
		}

		if err := repos.MemberRepo().Update(ctx, member); err != nil {
			return err
		}

		if input.Role != nil {
			account, err := repos.AccountRepo().FindByMemberID(ctx, member.ID)
			if err != nil {
				return err
			}
			if err := account.ChangeRole(*input.Role); err != nil {
				return err
			}
			if err := repos.AccountRepo().Update(ctx, account); err != nil {
				return err
			}
			changed["role"] = *input.Role
		}

		updated = member
		return appendAudit(ctx, repos.AuditRepo(), input.ActorID, audit.ActionUpdate, member.ID, changed)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Retire soft-deletes a member and records the departure date
func (s *MemberService) Retire(ctx context.Context, input RetireMemberInput) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		member, err := repos.MemberRepo().FindByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		if err := member.Retire(input.DepartureDate); err != nil {
			return err
		}
		if err := repos.MemberRepo().Update(ctx, member); err != nil {
			return err
		}
		s.logger.Info("member retired",
			zap.String("member_id", member.ID.String()),
			zap.String("departure", input.DepartureDate.String()))
		return appendAudit(ctx, repos.AuditRepo(), input.ActorID, audit.ActionDelete, member.ID, map[string]any{
			"departure_date": input.DepartureDate.String(),
		})
	})
}

func bankFromInput(b BankInput) identity.BankAccount {
	return identity.BankAccount{
		BankName:      b.BankName,
		BranchName:    b.BranchName,
		AccountType:   b.AccountType,
		AccountNumber: b.AccountNumber,
		AccountHolder: b.AccountHolder,
	}
}

func appendAudit(ctx context.Context, repo audit.Repository, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail map[string]any) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	entry, err := audit.NewAuditLog(actorID, action, memberEntityType, entityID, string(data))
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}
