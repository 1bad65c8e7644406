package handler

import (
	"time"

	"paypal-multiparty/internal/adapter/http/dto"
	"paypal-multiparty/internal/adapter/http/middleware"
	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles the tenant/merchant account link endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Connect handles POST /api/v1/accounts/connect.
func (h *AccountHandler) Connect(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	account, err := h.accountSvc.Connect(c.Request.Context(), ports.ConnectAccountParams{
		OrgID:        orgID,
		MerchantID:   req.MerchantID,
		Email:        req.Email,
		BusinessName: req.BusinessName,
		IsLive:       req.IsLive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account))
}

// Status handles GET /api/v1/accounts/me.
func (h *AccountHandler) Status(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	account, err := h.accountSvc.Get(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ConnectionStatusResponse{}
	if account != nil {
		resp.Connected = true
		resp.MerchantID = account.MerchantID
	}
	response.OK(c, resp)
}

// Details handles GET /api/v1/accounts/me/details.
func (h *AccountHandler) Details(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	account, err := h.accountSvc.Details(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toAccountResponse(account))
}

// Disconnect handles DELETE /api/v1/accounts/me.
func (h *AccountHandler) Disconnect(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	if err := h.accountSvc.Disconnect(c.Request.Context(), orgID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"disconnected": true})
}

// RegisterWebhook handles POST /api/v1/accounts/me/webhook.
func (h *AccountHandler) RegisterWebhook(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.RegisterWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	webhookID, err := h.accountSvc.RegisterWebhook(c.Request.Context(), orgID, req.NotificationURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"webhook_id": webhookID})
}

func toAccountResponse(account *domain.MerchantAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           account.ID.String(),
		OrgID:        account.OrgID,
		MerchantID:   account.MerchantID,
		Email:        account.Email,
		BusinessName: account.BusinessName,
		Status:       string(account.Status),
		IsLive:       account.IsLive,
		WebhookID:    account.WebhookID,
		CreatedAt:    account.CreatedAt.UTC().Format(time.RFC3339),
	}
}
