package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	systemapp "github.com/hrm/backend/internal/application/system"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// SystemHandler serves configuration and member tool endpoints
type SystemHandler struct {
	BaseHandler
	system *systemapp.SystemService
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(system *systemapp.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	configs := rg.Group("/configs")
	{
		configs.GET("", middleware.Require("configs", "read"), h.Configs)
		configs.PUT("", middleware.Require("configs", "write"), h.UpsertConfig)
	}

	tools := rg.Group("/tools")
	{
		tools.POST("", middleware.Require("tools", "write"), h.CreateTool)
		tools.GET("", middleware.Require("tools", "write"), h.Tools)
		tools.GET("/members/:member_id", middleware.Require("tools", "read"), h.MemberTools)
		tools.PUT("/:id", middleware.Require("tools", "write"), h.UpdateTool)
		tools.DELETE("/:id", middleware.Require("tools", "write"), h.DeleteTool)
	}
}

// Configs lists configuration entries with secret values masked
func (h *SystemHandler) Configs(c *gin.Context) {
	configs, err := h.system.Configs(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, configs)
}

type upsertConfigRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value"`
	Secret      bool   `json:"secret"`
	Description string `json:"description"`
}

// UpsertConfig inserts or replaces a configuration entry
func (h *SystemHandler) UpsertConfig(c *gin.Context) {
	var req upsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid config payload")
		return
	}
	view, err := h.system.UpsertConfig(c.Request.Context(), systemapp.UpsertConfigInput{
		Key:         req.Key,
		Value:       req.Value,
		Secret:      req.Secret,
		Description: req.Description,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

type createToolRequest struct {
	MemberID    string `json:"member_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	MonthlyCost string `json:"monthly_cost"`
	AccountInfo string `json:"account_info"`
	Notes       string `json:"notes"`
}

// CreateTool registers a tool issued to a member
func (h *SystemHandler) CreateTool(c *gin.Context) {
	var req createToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid tool payload")
		return
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		h.BadRequest(c, "member_id must be a UUID")
		return
	}
	cost, err := decimalOrZero(req.MonthlyCost)
	if err != nil {
		h.BadRequest(c, "monthly_cost must be a decimal string")
		return
	}

	tool, err := h.system.CreateTool(c.Request.Context(), systemapp.CreateToolInput{
		MemberID:    memberID,
		Name:        req.Name,
		MonthlyCost: cost,
		AccountInfo: req.AccountInfo,
		Notes:       req.Notes,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, tool)
}

// Tools lists every tool entry
func (h *SystemHandler) Tools(c *gin.Context) {
	tools, err := h.system.Tools(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, tools)
}

// MemberTools lists the tools issued to one member
func (h *SystemHandler) MemberTools(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	tools, err := h.system.MemberTools(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, tools)
}

type updateToolRequest struct {
	Name        *string `json:"name"`
	MonthlyCost *string `json:"monthly_cost"`
	AccountInfo *string `json:"account_info"`
	Notes       *string `json:"notes"`
	Active      *bool   `json:"active"`
}

// UpdateTool applies partial updates to a tool entry
func (h *SystemHandler) UpdateTool(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tool ID")
		return
	}
	var req updateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid tool payload")
		return
	}

	input := systemapp.UpdateToolInput{
		Name:        req.Name,
		AccountInfo: req.AccountInfo,
		Notes:       req.Notes,
		Active:      req.Active,
	}
	if req.MonthlyCost != nil {
		cost, err := decimal.NewFromString(*req.MonthlyCost)
		if err != nil {
			h.BadRequest(c, "monthly_cost must be a decimal string")
			return
		}
		input.MonthlyCost = &cost
	}

	tool, err := h.system.UpdateTool(c.Request.Context(), id, input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, tool)
}

// DeleteTool removes a tool entry
func (h *SystemHandler) DeleteTool(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tool ID")
		return
	}
	if err := h.system.DeleteTool(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
