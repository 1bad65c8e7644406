package handler

import (
	"paypal-multiparty/internal/adapter/http/middleware"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles the reconciliation read endpoints.
type HistoryHandler struct {
	historySvc ports.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historySvc ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// Transactions handles GET /api/v1/history/transactions.
func (h *HistoryHandler) Transactions(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	views, err := h.historySvc.Transactions(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}

// Subscriptions handles GET /api/v1/history/subscriptions. An
// optional subscription_id query narrows the read to one remote
// subscription.
func (h *HistoryHandler) Subscriptions(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	views, err := h.historySvc.Subscriptions(c.Request.Context(), orgID, c.Query("subscription_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}
