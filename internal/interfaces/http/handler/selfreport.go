package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	projectapp "github.com/hrm/backend/internal/application/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// SelfReportHandler serves monthly self-report endpoints
type SelfReportHandler struct {
	BaseHandler
	reports *projectapp.SelfReportService
}

// NewSelfReportHandler creates a new self-report handler
func NewSelfReportHandler(reports *projectapp.SelfReportService) *SelfReportHandler {
	return &SelfReportHandler{reports: reports}
}

// RegisterRoutes registers self-report routes
func (h *SelfReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/self-reports")
	{
		group.PUT("", middleware.Require("selfreports", "write"), h.Submit)
		group.GET("", middleware.Require("selfreports", "read"), h.Month)
		group.GET("/members/:member_id", middleware.Require("selfreports", "read"), h.MemberMonth)
	}
}

type selfReportEntryRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Hours     string `json:"hours" binding:"required"`
	Notes     string `json:"notes"`
}

type submitSelfReportRequest struct {
	Month   string                   `json:"month" binding:"required"`
	Entries []selfReportEntryRequest `json:"entries" binding:"required"`
}

// Submit replaces the caller's report lines for a month
func (h *SelfReportHandler) Submit(c *gin.Context) {
	var req submitSelfReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid self-report payload")
		return
	}
	month, err := valueobject.ParseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}

	input := projectapp.SubmitSelfReportInput{
		MemberID: currentSession(c).MemberID,
		Month:    month,
	}
	for _, entry := range req.Entries {
		projectID, err := uuid.Parse(entry.ProjectID)
		if err != nil {
			h.BadRequest(c, "project_id must be a UUID")
			return
		}
		hours, err := decimal.NewFromString(entry.Hours)
		if err != nil {
			h.BadRequest(c, "hours must be a decimal string")
			return
		}
		input.Entries = append(input.Entries, projectapp.SelfReportEntryInput{
			ProjectID: projectID,
			Hours:     hours,
			Notes:     entry.Notes,
		})
	}

	reports, err := h.reports.Submit(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, reports)
}

// MemberMonth returns one member's report lines for a month
func (h *SelfReportHandler) MemberMonth(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	reports, err := h.reports.MemberMonth(c.Request.Context(), memberID, month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, reports)
}

// Month returns every member's report lines for a month
func (h *SelfReportHandler) Month(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	reports, err := h.reports.Month(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, reports)
}
