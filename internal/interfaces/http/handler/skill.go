package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	skillapp "github.com/hrm/backend/internal/application/skill"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// SkillHandler serves skill catalog, evaluation history and personnel
// evaluation endpoints
type SkillHandler struct {
	BaseHandler
	skills      *skillapp.SkillService
	evaluations *skillapp.EvaluationService
}

// NewSkillHandler creates a new skill handler
func NewSkillHandler(skills *skillapp.SkillService, evaluations *skillapp.EvaluationService) *SkillHandler {
	return &SkillHandler{skills: skills, evaluations: evaluations}
}

// RegisterRoutes registers skill routes
func (h *SkillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/skill-categories")
	{
		categories.POST("", middleware.Require("skills", "write"), h.CreateCategory)
		categories.GET("", middleware.Require("skills", "read"), h.ListCategories)
		categories.PUT("/:id", middleware.Require("skills", "write"), h.UpdateCategory)
		categories.DELETE("/:id", middleware.Require("skills", "write"), h.DeleteCategory)
	}

	skills := rg.Group("/skills")
	{
		skills.POST("", middleware.Require("skills", "write"), h.CreateSkill)
		skills.GET("", middleware.Require("skills", "read"), h.ListSkills)
		skills.DELETE("/:id", middleware.Require("skills", "write"), h.DeleteSkill)
	}

	memberSkills := rg.Group("/member-skills")
	{
		memberSkills.POST("/members/:member_id", middleware.Require("memberskills", "append"), h.Evaluate)
		memberSkills.GET("/members/:member_id", middleware.Require("memberskills", "read"), h.History)
	}

	evaluations := rg.Group("/evaluations")
	{
		evaluations.PUT("", middleware.Require("evaluations", "write"), h.UpsertEvaluation)
		evaluations.GET("", middleware.Require("evaluations", "read"), h.MonthEvaluations)
		evaluations.GET("/members/:member_id", middleware.Require("evaluations", "read"), h.MemberEvaluations)
	}
}

type categoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory creates a skill category
func (h *SkillHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload")
		return
	}
	category, err := h.skills.CreateCategory(c.Request.Context(), req.Name, req.SortOrder)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories returns all skill categories
func (h *SkillHandler) ListCategories(c *gin.Context) {
	categories, err := h.skills.ListCategories(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// UpdateCategory renames or reorders a category
func (h *SkillHandler) UpdateCategory(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category payload")
		return
	}
	category, err := h.skills.UpdateCategory(c.Request.Context(), id, req.Name, req.SortOrder)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, category)
}

// DeleteCategory removes a category with its skills and history
func (h *SkillHandler) DeleteCategory(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}
	if err := h.skills.DeleteCategory(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

type skillRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// CreateSkill creates a skill within a category
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid skill payload")
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "category_id must be a UUID")
		return
	}
	skill, err := h.skills.CreateSkill(c.Request.Context(), categoryID, req.Name)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, skill)
}

// ListSkills returns skills, optionally within one category
func (h *SkillHandler) ListSkills(c *gin.Context) {
	var categoryID *uuid.UUID
	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "category_id must be a UUID")
			return
		}
		categoryID = &id
	}
	skills, err := h.skills.ListSkills(c.Request.Context(), categoryID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, skills)
}

// DeleteSkill removes a skill and its history
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid skill ID")
		return
	}
	if err := h.skills.DeleteSkill(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

type evaluateRequest struct {
	SkillID string `json:"skill_id" binding:"required"`
	Score   int    `json:"score" binding:"required"`
	Note    string `json:"note"`
}

// Evaluate appends a member skill evaluation
func (h *SkillHandler) Evaluate(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid evaluation payload")
		return
	}
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		h.BadRequest(c, "skill_id must be a UUID")
		return
	}
	evaluation, err := h.skills.Evaluate(c.Request.Context(), memberID, skillID, req.Score, req.Note)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, evaluation)
}

// History returns a member's skill evaluation history, newest first
func (h *SkillHandler) History(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	if v := c.Query("skill_id"); v != "" {
		skillID, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "skill_id must be a UUID")
			return
		}
		history, err := h.skills.SkillHistory(c.Request.Context(), memberID, skillID)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, history)
		return
	}

	history, err := h.skills.History(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, history)
}

type upsertEvaluationRequest struct {
	MemberID    string `json:"member_id" binding:"required"`
	Month       string `json:"month" binding:"required"`
	Performance int    `json:"performance"`
	Attitude    int    `json:"attitude"`
	Skill       int    `json:"skill"`
	Comment     string `json:"comment"`
}

// UpsertEvaluation writes a member's personnel evaluation for a month
func (h *SkillHandler) UpsertEvaluation(c *gin.Context) {
	var req upsertEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid evaluation payload")
		return
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		h.BadRequest(c, "member_id must be a UUID")
		return
	}
	month, err := valueobject.ParseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}

	evaluation, err := h.evaluations.Upsert(c.Request.Context(), skillapp.UpsertEvaluationInput{
		MemberID:    memberID,
		Month:       month,
		Performance: req.Performance,
		Attitude:    req.Attitude,
		SkillScore:  req.Skill,
		Comment:     req.Comment,
		EvaluatedBy: currentSession(c).MemberID,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, evaluation)
}

// MonthEvaluations returns every member's evaluation for a month
func (h *SkillHandler) MonthEvaluations(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	evaluations, err := h.evaluations.Month(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, evaluations)
}

// MemberEvaluations returns one member's evaluation history
func (h *SkillHandler) MemberEvaluations(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	if v := c.Query("month"); v != "" {
		month, err := valueobject.ParseMonth(v)
		if err != nil {
			h.BadRequest(c, "month must be YYYY-MM")
			return
		}
		evaluation, err := h.evaluations.MemberMonth(c.Request.Context(), memberID, month)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, evaluation)
		return
	}

	history, err := h.evaluations.MemberHistory(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, history)
}
