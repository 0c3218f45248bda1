package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	projectapp "github.com/hrm/backend/internal/application/project"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// ProjectHandler serves project, position, assignment and P&L endpoints
type ProjectHandler struct {
	BaseHandler
	projects *projectapp.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", middleware.Require("projects", "write"), h.Create)
		projects.GET("", middleware.Require("projects", "read"), h.List)
		projects.GET("/:id", middleware.Require("projects", "read"), h.Get)
		projects.PUT("/:id", middleware.Require("projects", "write"), h.Update)
		projects.DELETE("/:id", middleware.Require("projects", "delete"), h.Delete)
		projects.GET("/:id/assignments", middleware.Require("projects", "read"), h.ProjectAssignments)
		projects.GET("/:id/pl", middleware.Require("pl", "read"), h.ProjectPL)
	}

	positions := rg.Group("/positions")
	{
		positions.POST("", middleware.Require("positions", "write"), h.CreatePosition)
		positions.GET("", middleware.Require("projects", "read"), h.ListPositions)
		positions.DELETE("/:id", middleware.Require("positions", "write"), h.DeletePosition)
	}

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", middleware.Require("assignments", "write"), h.Assign)
		assignments.PUT("/:id", middleware.Require("assignments", "write"), h.UpdateAssignment)
		assignments.DELETE("/:id", middleware.Require("assignments", "write"), h.RemoveAssignment)
		assignments.GET("/members/:member_id", middleware.Require("projects", "read"), h.MemberAssignments)
	}

	rg.GET("/workload", middleware.Require("workload", "read"), h.Workload)

	pl := rg.Group("/pl")
	{
		pl.PUT("", middleware.Require("pl", "write"), h.UpsertPL)
		pl.GET("", middleware.Require("pl", "read"), h.MonthPL)
	}
}

type projectRequest struct {
	Name        string  `json:"name" binding:"required"`
	ClientName  string  `json:"client_name"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// Create creates a project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project payload")
		return
	}
	startDate, endDate, err := parseDatePtrs(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	proj, err := h.projects.Create(c.Request.Context(), projectapp.CreateProjectInput{
		ActorID:     currentSession(c).MemberID,
		Name:        req.Name,
		ClientName:  req.ClientName,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, proj)
}

// Get returns one project
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	proj, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, proj)
}

// List returns projects, optionally active only
func (h *ProjectHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	projects, err := h.projects.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, projects)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	ClientName  *string `json:"client_name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	ClearDates  bool    `json:"clear_dates"`
	Active      *bool   `json:"active"`
}

// Update applies partial updates to a project
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project payload")
		return
	}
	startDate, endDate, err := parseDatePtrs(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	proj, err := h.projects.Update(c.Request.Context(), projectapp.UpdateProjectInput{
		ActorID:     currentSession(c).MemberID,
		ProjectID:   id,
		Name:        req.Name,
		ClientName:  req.ClientName,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		ClearDates:  req.ClearDates,
		Active:      req.Active,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, proj)
}

// Delete removes a project and its assignments
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	if err := h.projects.Delete(c.Request.Context(), currentSession(c).MemberID, id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

type positionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreatePosition creates a position
func (h *ProjectHandler) CreatePosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid position payload")
		return
	}
	position, err := h.projects.CreatePosition(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, position)
}

// ListPositions returns all positions
func (h *ProjectHandler) ListPositions(c *gin.Context) {
	positions, err := h.projects.ListPositions(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, positions)
}

// DeletePosition removes a position
func (h *ProjectHandler) DeletePosition(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid position ID")
		return
	}
	if err := h.projects.DeletePosition(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

type assignmentRequest struct {
	MemberID      string  `json:"member_id" binding:"required"`
	ProjectID     string  `json:"project_id" binding:"required"`
	PositionID    string  `json:"position_id" binding:"required"`
	WorkloadHours string  `json:"workload_hours" binding:"required"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
}

// Assign creates a staffing entry
func (h *ProjectHandler) Assign(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid assignment payload")
		return
	}
	memberID, err1 := uuid.Parse(req.MemberID)
	projectID, err2 := uuid.Parse(req.ProjectID)
	positionID, err3 := uuid.Parse(req.PositionID)
	if err1 != nil || err2 != nil || err3 != nil {
		h.BadRequest(c, "member_id, project_id and position_id must be UUIDs")
		return
	}
	hours, err := decimal.NewFromString(req.WorkloadHours)
	if err != nil {
		h.BadRequest(c, "workload_hours must be a decimal string")
		return
	}
	startDate, endDate, err := parseDatePtrs(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	assignment, err := h.projects.Assign(c.Request.Context(), projectapp.CreateAssignmentInput{
		MemberID:      memberID,
		ProjectID:     projectID,
		PositionID:    positionID,
		WorkloadHours: hours,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, assignment)
}

type updateAssignmentRequest struct {
	PositionID    *string `json:"position_id"`
	WorkloadHours *string `json:"workload_hours"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	ClearDates    bool    `json:"clear_dates"`
}

// UpdateAssignment applies partial updates to a staffing entry
func (h *ProjectHandler) UpdateAssignment(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}
	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid assignment payload")
		return
	}

	input := projectapp.UpdateAssignmentInput{
		AssignmentID: id,
		ClearDates:   req.ClearDates,
	}
	if req.PositionID != nil {
		positionID, err := uuid.Parse(*req.PositionID)
		if err != nil {
			h.BadRequest(c, "position_id must be a UUID")
			return
		}
		input.PositionID = &positionID
	}
	if req.WorkloadHours != nil {
		hours, err := decimal.NewFromString(*req.WorkloadHours)
		if err != nil {
			h.BadRequest(c, "workload_hours must be a decimal string")
			return
		}
		input.WorkloadHours = &hours
	}
	input.StartDate, input.EndDate, err = parseDatePtrs(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	assignment, err := h.projects.UpdateAssignment(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, assignment)
}

// RemoveAssignment deletes a staffing entry
func (h *ProjectHandler) RemoveAssignment(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}
	if err := h.projects.RemoveAssignment(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// MemberAssignments returns one member's staffing entries
func (h *ProjectHandler) MemberAssignments(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	assignments, err := h.projects.MemberAssignments(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, assignments)
}

// ProjectAssignments returns one project's staffing entries
func (h *ProjectHandler) ProjectAssignments(c *gin.Context) {
	projectID, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	assignments, err := h.projects.ProjectAssignments(c.Request.Context(), projectID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, assignments)
}

// Workload returns the staffing matrix for a month
func (h *ProjectHandler) Workload(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	matrix, err := h.projects.Workload(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, matrix)
}

type upsertPLRequest struct {
	ProjectID       string `json:"project_id" binding:"required"`
	Month           string `json:"month" binding:"required"`
	Revenue         string `json:"revenue" binding:"required"`
	LaborCost       string `json:"labor_cost"`
	OutsourcingCost string `json:"outsourcing_cost"`
	OtherCost       string `json:"other_cost"`
	Notes           string `json:"notes"`
}

// UpsertPL writes a project's monthly P&L entry
func (h *ProjectHandler) UpsertPL(c *gin.Context) {
	var req upsertPLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid P&L payload")
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.BadRequest(c, "project_id must be a UUID")
		return
	}
	month, err := valueobject.ParseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	revenue, err := decimal.NewFromString(req.Revenue)
	if err != nil {
		h.BadRequest(c, "revenue must be a decimal string")
		return
	}
	laborCost, err := decimalOrZero(req.LaborCost)
	if err != nil {
		h.BadRequest(c, "labor_cost must be a decimal string")
		return
	}
	outsourcingCost, err := decimalOrZero(req.OutsourcingCost)
	if err != nil {
		h.BadRequest(c, "outsourcing_cost must be a decimal string")
		return
	}
	otherCost, err := decimalOrZero(req.OtherCost)
	if err != nil {
		h.BadRequest(c, "other_cost must be a decimal string")
		return
	}

	view, err := h.projects.UpsertPL(c.Request.Context(), projectapp.UpsertPLInput{
		ProjectID:       projectID,
		Month:           month,
		Revenue:         revenue,
		LaborCost:       laborCost,
		OutsourcingCost: outsourcingCost,
		OtherCost:       otherCost,
		Notes:           req.Notes,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// MonthPL returns every project's P&L for a month
func (h *ProjectHandler) MonthPL(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	views, err := h.projects.MonthPL(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, views)
}

// ProjectPL returns one project's P&L history
func (h *ProjectHandler) ProjectPL(c *gin.Context) {
	projectID, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	views, err := h.projects.ProjectPL(c.Request.Context(), projectID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, views)
}

func parseDatePtrs(start, end *string) (*valueobject.Date, *valueobject.Date, error) {
	var startDate, endDate *valueobject.Date
	if start != nil && *start != "" {
		d, err := valueobject.ParseDate(*start)
		if err != nil {
			return nil, nil, err
		}
		startDate = &d
	}
	if end != nil && *end != "" {
		d, err := valueobject.ParseDate(*end)
		if err != nil {
			return nil, nil, err
		}
		endDate = &d
	}
	return startDate, endDate, nil
}

func decimalOrZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
