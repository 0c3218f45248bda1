package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/hrm/backend/internal/application/identity"
	"github.com/hrm/backend/internal/infrastructure/auth"
)

// AuthHandler serves login, logout and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookies     *auth.CookieWriter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/logout", h.Logout)
		group.GET("/session", h.Session)
		group.PUT("/password", h.ChangePassword)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	AccountID string `json:"account_id"`
	MemberID  string `json:"member_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
}

// Login authenticates with email and password and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login payload")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	h.cookies.Set(c, result.Token, maxAge)
	h.Success(c, accountToResponse(result.Account))
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	h.NoContent(c)
}

// Session echoes the authenticated caller's identity
func (h *AuthHandler) Session(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		h.Unauthorized(c)
		return
	}
	info, err := h.authService.CurrentSession(c.Request.Context(), session)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, accountToResponse(*info))
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword lets the caller rotate their own password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		h.Unauthorized(c)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid password payload")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), identityapp.ChangePasswordInput{
		AccountID:   session.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

func accountToResponse(info identityapp.AccountInfo) sessionResponse {
	return sessionResponse{
		AccountID: info.AccountID.String(),
		MemberID:  info.MemberID.String(),
		Email:     info.Email,
		Name:      info.Name,
		Role:      string(info.Role),
		Company:   string(info.Company),
	}
}
