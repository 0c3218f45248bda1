package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditapp "github.com/hrm/backend/internal/application/audit"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// AuditHandler serves the read side of the audit trail
type AuditHandler struct {
	BaseHandler
	audit *auditapp.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", middleware.Require("audit", "read"), h.List)
}

// List returns audit entries newest first with optional filters
func (h *AuditHandler) List(c *gin.Context) {
	input := auditapp.ListInput{
		EntityType: c.Query("entity_type"),
	}
	if v := c.Query("actor_id"); v != "" {
		actorID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "actor_id must be a UUID")
			return
		}
		input.ActorID = &actorID
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	input.Limit = pageSize
	input.Offset = (page - 1) * pageSize

	result, err := h.audit.List(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Entries, result.Total, page, pageSize)
}
