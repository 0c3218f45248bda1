package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/infrastructure/auth"
)

// AuthService handles login, logout and password changes
type AuthService struct {
	accountRepo identity.UserAccountRepository
	memberRepo  identity.MemberRepository
	sessions    *auth.SessionService
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo identity.UserAccountRepository,
	memberRepo identity.MemberRepository,
	sessions *auth.SessionService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		memberRepo:  memberRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login authenticates by email and password and issues a session token.
// Credential failures are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("login for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("login with wrong password", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	member, err := s.memberRepo.FindByID(ctx, account.MemberID)
	if err != nil {
		s.logger.Error("login account without member", zap.String("email", input.Email), zap.Error(err))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !member.IsActive() {
		s.logger.Warn("login for retired member", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.sessions.Issue(account, member)
	if err != nil {
		s.logger.Error("session issue failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	account.RecordLogin(time.Now())
	if err := s.accountRepo.Update(ctx, account); err != nil {
		// Login still succeeds; the timestamp is informational
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	s.logger.Info("login", zap.String("email", account.Email), zap.String("role", string(account.Role)))
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessions.Expiration()),
		Account:   accountInfo(account, member),
	}, nil
}

// CurrentSession resolves an account and member for a validated session
func (s *AuthService) CurrentSession(ctx context.Context, session *auth.Session) (*AccountInfo, error) {
	account, err := s.accountRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	member, err := s.memberRepo.FindByID(ctx, account.MemberID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	info := accountInfo(account, member)
	return &info, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return err
	}
	if !account.VerifyPassword(input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := account.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("account_id", account.ID.String()))
	return nil
}

func accountInfo(account *identity.UserAccount, member *identity.Member) AccountInfo {
	return AccountInfo{
		AccountID: account.ID,
		MemberID:  member.ID,
		Email:     account.Email,
		Name:      member.Name,
		Role:      account.Role,
		Company:   member.Company,
	}
}
