package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/hrm/backend/internal/application/billing"
	"github.com/hrm/backend/internal/domain/billing"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// BillingHandler serves invoice and monthly closing endpoints
type BillingHandler struct {
	BaseHandler
	invoices *billingapp.InvoiceService
	closing  *billingapp.ClosingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(invoices *billingapp.InvoiceService, closing *billingapp.ClosingService) *BillingHandler {
	return &BillingHandler{invoices: invoices, closing: closing}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("/members/:member_id", middleware.Require("invoices", "generate"), h.Generate)
		invoices.GET("", middleware.Require("invoices", "read"), h.Month)
		invoices.GET("/members/:member_id", middleware.Require("invoices", "read"), h.MemberHistory)
		invoices.GET("/:id", h.Get)
		invoices.GET("/:id/download", h.Download)
		invoices.POST("/:id/send-accounting", middleware.Require("invoices", "send"), h.SendToAccounting)
		invoices.POST("/:id/mark-sent", middleware.Require("invoices", "send"), h.MarkSent)
	}

	rg.GET("/closing", middleware.Require("closing", "read"), h.Closing)
}

type invoiceItemRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Taxable     bool   `json:"taxable"`
}

type generateInvoiceRequest struct {
	Month string               `json:"month" binding:"required"`
	Items []invoiceItemRequest `json:"items" binding:"required,min=1"`
}

// Generate creates or regenerates the member's invoice for a month
func (h *BillingHandler) Generate(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	var req generateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid invoice payload")
		return
	}
	month, err := valueobject.ParseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}

	input := billingapp.GenerateInvoiceInput{MemberID: memberID, Month: month}
	for _, item := range req.Items {
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			h.BadRequest(c, "item amounts must be decimal strings")
			return
		}
		input.Items = append(input.Items, billingapp.InvoiceItemInput{
			Description: item.Description,
			Amount:      amount,
			Taxable:     item.Taxable,
		})
	}

	invoice, err := h.invoices.Generate(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Month returns every invoice for a month
func (h *BillingHandler) Month(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}
	invoices, err := h.invoices.Month(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoices)
}

// MemberHistory returns one member's invoices, newest first
func (h *BillingHandler) MemberHistory(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	invoices, err := h.invoices.MemberHistory(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Get returns one invoice. Members see their own; admins and managers
// see anyone's.
func (h *BillingHandler) Get(c *gin.Context) {
	invoice, ok := h.fetchReadable(c)
	if !ok {
		return
	}
	h.Success(c, invoice)
}

// Download streams the invoice workbook
func (h *BillingHandler) Download(c *gin.Context) {
	invoice, ok := h.fetchReadable(c)
	if !ok {
		return
	}

	content, filename, err := h.invoices.Workbook(c.Request.Context(), invoice.ID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// SendToAccounting emails the invoice workbook to the accounting address
func (h *BillingHandler) SendToAccounting(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	invoice, err := h.invoices.SendToAccounting(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// MarkSent records that the invoice went out to the member
func (h *BillingHandler) MarkSent(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	invoice, err := h.invoices.MarkSent(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Closing returns the monthly closing board, or a single member's row
// when member_id is given
func (h *BillingHandler) Closing(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be YYYY-MM")
		return
	}

	if v := c.Query("member_id"); v != "" {
		memberID, parseErr := uuid.Parse(v)
		if parseErr != nil {
			h.BadRequest(c, "member_id must be a UUID")
			return
		}
		row, err := h.closing.Member(c.Request.Context(), memberID, month)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, row)
		return
	}

	board, err := h.closing.Month(c.Request.Context(), month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, board)
}

// fetchReadable loads an invoice and enforces owner-or-manager access
func (h *BillingHandler) fetchReadable(c *gin.Context) (*billing.Invoice, bool) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return nil, false
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return nil, false
	}

	session := currentSession(c)
	if session == nil {
		h.Unauthorized(c)
		return nil, false
	}
	if invoice.MemberID != session.MemberID && !session.Role.CanManage() {
		h.Forbidden(c)
		return nil, false
	}
	return invoice, true
}
