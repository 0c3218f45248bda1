package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/auth"
	"github.com/hrm/backend/internal/interfaces/http/dto"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// DomainError translates an application error into the envelope, using
// the code to status table for domain errors
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An internal error occurred")
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 response with field details
func (h *BaseHandler) ValidationError(c *gin.Context, message string, details any) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
		dto.ErrCodeValidation, message, middleware.GetRequestID(c), details))
}

// Forbidden sends a 403 response
func (h *BaseHandler) Forbidden(c *gin.Context) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have permission to perform this action")
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
}

// currentSession returns the caller session resolved by the auth
// middleware, nil for unauthenticated requests
func currentSession(c *gin.Context) *auth.Session {
	return middleware.GetSession(c)
}

// uuidParam parses a UUID path parameter
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// monthQuery parses the month query parameter ("YYYY-MM")
func monthQuery(c *gin.Context) (valueobject.Month, error) {
	return valueobject.ParseMonth(c.Query("month"))
}
