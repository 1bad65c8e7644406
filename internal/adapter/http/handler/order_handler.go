package handler

import (
	"paypal-multiparty/internal/adapter/http/dto"
	"paypal-multiparty/internal/adapter/http/middleware"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles one-time order endpoints.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	snap, err := h.orderSvc.CreateOrder(c.Request.Context(), orgID, ports.CreateOrderParams{
		Amount:      req.Amount,
		PlatformFee: req.PlatformFee,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.OrderResponse{
		ID:         snap.ID,
		Status:     snap.Status,
		ApproveURL: snap.ApproveURL,
	})
}

// Verify handles GET /api/v1/orders/:id.
func (h *OrderHandler) Verify(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	snap, err := h.orderSvc.VerifyOrder(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OrderResponse{
		ID:         snap.ID,
		Status:     snap.Status,
		ApproveURL: snap.ApproveURL,
	})
}

// Capture handles POST /api/v1/orders/:id/capture.
func (h *OrderHandler) Capture(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	snap, err := h.orderSvc.CaptureOrder(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.CaptureResponse{
		OrderID:    snap.OrderID,
		CaptureID:  snap.CaptureID,
		Status:     snap.Status,
		Amount:     snap.Amount.Value,
		Currency:   snap.Amount.CurrencyCode,
		BuyerEmail: snap.BuyerEmail,
	}
	if snap.PlatformFee != nil {
		resp.PlatformFee = &snap.PlatformFee.Value
	}
	response.OK(c, resp)
}
