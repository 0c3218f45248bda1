package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid session token")
	ErrExpiredToken     = errors.New("session has expired")
	ErrInvalidClaims    = errors.New("invalid session claims")
	ErrTokenNotYetValid = errors.New("session token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in session claims")
)

// Claims is the signed session payload carried in the HTTP-only cookie
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company"`
}

// Session is the resolved caller identity handlers work with
type Session struct {
	UserID   uuid.UUID
	MemberID uuid.UUID
	Email    string
	Name     string
	Role     identity.Role
	Company  identity.Company
}

// SessionService signs and validates session tokens (HS256)
type SessionService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewSessionService creates a session token service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Expiration returns the configured session lifetime
func (s *SessionService) Expiration() time.Duration {
	return s.expiration
}

// Issue signs a session token for the given identity
func (s *SessionService) Issue(account *identity.UserAccount, member *identity.Member) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   account.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   account.ID.String(),
		MemberID: member.ID.String(),
		Email:    account.Email,
		Name:     member.Name,
		Role:     string(account.Role),
		Company:  string(member.Company),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a session token and resolves the caller identity
func (s *SessionService) Validate(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	memberID, err := uuid.Parse(claims.MemberID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	role := identity.Role(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidClaims
	}

	return &Session{
		UserID:   userID,
		MemberID: memberID,
		Email:    claims.Email,
		Name:     claims.Name,
		Role:     role,
		Company:  identity.Company(claims.Company),
	}, nil
}
