package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	identityapp "github.com/hrm/backend/internal/application/identity"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// MemberHandler serves member CRUD endpoints
type MemberHandler struct {
	BaseHandler
	members *identityapp.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members *identityapp.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// RegisterRoutes registers member routes
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/members")
	{
		group.POST("", middleware.Require("members", "create"), h.Create)
		group.GET("", middleware.Require("members", "list"), h.List)
		group.GET("/:member_id", middleware.Require("members", "read"), h.Get)
		group.PUT("/:member_id", middleware.Require("members", "update"), h.Update)
		group.DELETE("/:member_id", middleware.Require("members", "delete"), h.Retire)
	}
}

type bankRequest struct {
	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}

type createMemberRequest struct {
	Name             string       `json:"name" binding:"required"`
	NameKana         string       `json:"name_kana"`
	Company          string       `json:"company" binding:"required"`
	EmploymentStatus string       `json:"employment_status" binding:"required"`
	SalaryType       string       `json:"salary_type" binding:"required"`
	SalaryAmount     string       `json:"salary_amount" binding:"required"`
	JoinDate         string       `json:"join_date" binding:"required"`
	Phone            string       `json:"phone"`
	Address          string       `json:"address"`
	ContactEmail     string       `json:"contact_email"`
	Bank             *bankRequest `json:"bank"`
	Notes            string       `json:"notes"`
	LoginEmail       string       `json:"login_email" binding:"required,email"`
	Password         string       `json:"password" binding:"required,min=8"`
	Role             string       `json:"role" binding:"required"`
}

// Create creates a member together with its login account
func (h *MemberHandler) Create(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid member payload")
		return
	}

	salary, err := decimal.NewFromString(req.SalaryAmount)
	if err != nil {
		h.BadRequest(c, "salary_amount must be a decimal string")
		return
	}
	joinDate, err := valueobject.ParseDate(req.JoinDate)
	if err != nil {
		h.BadRequest(c, "join_date must be YYYY-MM-DD")
		return
	}

	input := identityapp.CreateMemberInput{
		ActorID:          currentSession(c).MemberID,
		Name:             req.Name,
		NameKana:         req.NameKana,
		Company:          identity.Company(req.Company),
		EmploymentStatus: identity.EmploymentStatus(req.EmploymentStatus),
		SalaryType:       identity.SalaryType(req.SalaryType),
		SalaryAmount:     salary,
		JoinDate:         joinDate,
		Phone:            req.Phone,
		Address:          req.Address,
		ContactEmail:     req.ContactEmail,
		Notes:            req.Notes,
		LoginEmail:       req.LoginEmail,
		Password:         req.Password,
		Role:             identity.Role(req.Role),
	}
	if req.Bank != nil {
		input.Bank = bankFromRequest(*req.Bank)
	}

	member, err := h.members.Create(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, member)
}

// Get returns one member
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	member, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, member)
}

// List returns members with optional filters and paging
func (h *MemberHandler) List(c *gin.Context) {
	input := identityapp.ListMembersInput{
		Keyword:        c.Query("keyword"),
		IncludeRetired: c.Query("include_retired") == "true",
	}
	if v := c.Query("company"); v != "" {
		company := identity.Company(v)
		input.Company = &company
	}
	if v := c.Query("employment_status"); v != "" {
		status := identity.EmploymentStatus(v)
		input.EmploymentStatus = &status
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

	list, err := h.members.List(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Members, list.Total, page, pageSize)
}

type updateMemberRequest struct {
	Name             *string      `json:"name"`
	NameKana         *string      `json:"name_kana"`
	EmploymentStatus *string      `json:"employment_status"`
	SalaryType       *string      `json:"salary_type"`
	SalaryAmount     *string      `json:"salary_amount"`
	Phone            *string      `json:"phone"`
	Address          *string      `json:"address"`
	ContactEmail     *string      `json:"contact_email"`
	Bank             *bankRequest `json:"bank"`
	Notes            *string      `json:"notes"`
	Role             *string      `json:"role"`
}

// Update applies partial updates to a member
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid member payload")
		return
	}

	input := identityapp.UpdateMemberInput{
		ActorID:  currentSession(c).MemberID,
		MemberID: id,
		Name:     req.Name,
		NameKana: req.NameKana,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
	}
	if req.EmploymentStatus != nil {
		status := identity.EmploymentStatus(*req.EmploymentStatus)
		input.EmploymentStatus = &status
	}
	if req.SalaryType != nil {
		salaryType := identity.SalaryType(*req.SalaryType)
		input.SalaryType = &salaryType
	}
	if req.SalaryAmount != nil {
		amount, err := decimal.NewFromString(*req.SalaryAmount)
		if err != nil {
			h.BadRequest(c, "salary_amount must be a decimal string")
			return
		}
		input.SalaryAmount = &amount
	}
	if req.ContactEmail != nil {
		input.ContactEmail = req.ContactEmail
	}
	if req.Bank != nil {
		bank := bankFromRequest(*req.Bank)
		input.Bank = &bank
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		input.Role = &role
	}

	member, err := h.members.Update(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, member)
}

type retireMemberRequest struct {
	DepartureDate string `json:"departure_date" binding:"required"`
}

// Retire soft deletes a member with a departure date
func (h *MemberHandler) Retire(c *gin.Context) {
	id, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req retireMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "departure_date is required")
		return
	}
	departure, err := valueobject.ParseDate(req.DepartureDate)
	if err != nil {
		h.BadRequest(c, "departure_date must be YYYY-MM-DD")
		return
	}

	err = h.members.Retire(c.Request.Context(), identityapp.RetireMemberInput{
		ActorID:       currentSession(c).MemberID,
		MemberID:      id,
		DepartureDate: departure,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

func bankFromRequest(req bankRequest) identityapp.BankInput {
	return identityapp.BankInput{
		BankName:      req.BankName,
		BranchName:    req.BranchName,
		AccountType:   req.AccountType,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
	}
}
