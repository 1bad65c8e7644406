package handler

import (
	"paypal-multiparty/internal/adapter/http/dto"
	"paypal-multiparty/internal/adapter/http/middleware"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles subscription endpoints.
type SubscriptionHandler struct {
	subSvc ports.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subSvc ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subSvc: subSvc}
}

// Create handles POST /api/v1/subscriptions.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	snap, err := h.subSvc.CreateSubscription(c.Request.Context(), orgID, req.PlanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SubscriptionResponse{
		ID:         snap.ID,
		PlanID:     snap.PlanID,
		Status:     snap.Status,
		ApproveURL: snap.ApproveURL,
	})
}

// Validate handles POST /api/v1/subscriptions/validate, the
// post-approval callback from the front end.
func (h *SubscriptionHandler) Validate(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.ValidateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sub, err := h.subSvc.ValidateSubscription(c.Request.Context(), orgID, req.SubscriptionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.SubscriptionResponse{
		ID:     sub.SubscriptionID,
		Status: string(sub.Status),
	}
	if sub.PlanID != nil {
		resp.PlanID = *sub.PlanID
	}
	response.OK(c, resp)
}

// Cancel handles POST /api/v1/subscriptions/:id/cancel.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	if err := h.subSvc.CancelSubscription(c.Request.Context(), orgID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"cancelled": true})
}
