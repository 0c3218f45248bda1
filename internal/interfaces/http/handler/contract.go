package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contractapp "github.com/hrm/backend/internal/application/contract"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

// signatureHeader carries the webhook HMAC signature
const signatureHeader = "X-Esign-Signature"

// WebhookVerifier checks the HMAC signature on inbound webhook payloads
type WebhookVerifier interface {
	VerifySignature(payload []byte, signature string) bool
}

// ContractHandler serves member contract and e-signature endpoints
type ContractHandler struct {
	BaseHandler
	contracts *contractapp.ContractService
	verifier  WebhookVerifier
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contracts *contractapp.ContractService, verifier WebhookVerifier) *ContractHandler {
	return &ContractHandler{contracts: contracts, verifier: verifier}
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/contracts")
	{
		group.POST("", middleware.Require("contracts", "write"), h.Create)
		group.GET("", middleware.Require("contracts", "read"), h.List)
		group.GET("/:id", middleware.Require("contracts", "read"), h.Get)
		group.GET("/members/:member_id", middleware.Require("contracts", "read"), h.MemberContracts)
		group.POST("/:id/send", middleware.Require("contracts", "write"), h.Send)
		group.POST("/:id/void", middleware.Require("contracts", "write"), h.Void)
		group.GET("/:id/document", middleware.Require("contracts", "read"), h.Document)
	}

	// Authenticated by HMAC signature, not by session; the auth
	// middleware skips this path.
	rg.POST("/webhooks/esign", h.Webhook)
}

type createContractRequest struct {
	MemberID    string `json:"member_id" binding:"required"`
	TemplateKey string `json:"template_key" binding:"required"`
	Title       string `json:"title" binding:"required"`
}

// Create creates a draft contract
func (h *ContractHandler) Create(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid contract payload")
		return
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		h.BadRequest(c, "member_id must be a UUID")
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), contractapp.CreateContractInput{
		MemberID:    memberID,
		TemplateKey: req.TemplateKey,
		Title:       req.Title,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, contract)
}

// List returns all contracts
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contracts.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, contracts)
}

// Get returns one contract
func (h *ContractHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, contract)
}

// MemberContracts returns one member's contracts
func (h *ContractHandler) MemberContracts(c *gin.Context) {
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}
	contracts, err := h.contracts.MemberContracts(c.Request.Context(), memberID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, contracts)
}

// Send creates the provider envelope for a draft contract
func (h *ContractHandler) Send(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	contract, err := h.contracts.Send(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, contract)
}

// Void cancels a contract
func (h *ContractHandler) Void(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	contract, err := h.contracts.Void(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, contract)
}

// Document returns the signed document link for a completed contract
func (h *ContractHandler) Document(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	url, err := h.contracts.DocumentURL(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

// Webhook applies a provider status notification. The payload signature
// is verified before anything is parsed; unknown statuses return 200 so
// the provider does not retry.
func (h *ContractHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read webhook payload")
		return
	}
	if !h.verifier.VerifySignature(payload, c.GetHeader(signatureHeader)) {
		h.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed")
		return
	}

	var event contractapp.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.BadRequest(c, "Invalid webhook payload")
		return
	}
	if event.EnvelopeID == "" {
		h.BadRequest(c, "envelope_id is required")
		return
	}

	if err := h.contracts.HandleWebhook(c.Request.Context(), event); err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"received": true})
}
