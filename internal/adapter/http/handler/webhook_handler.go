package handler

import (
	"io"
	"strconv"

	"paypal-multiparty/internal/adapter/http/dto"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// replayDefaultLimit caps one replay pass over FAILED events.
const replayDefaultLimit = 100

// WebhookHandler handles inbound PayPal webhook deliveries and the
// operator replay endpoint.
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// Receive handles POST /api/v1/webhooks/paypal. Unauthenticated:
// authenticity is established by signature verification against the
// verify API, not by a bearer token.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	ack, err := h.webhookSvc.Receive(c.Request.Context(), ports.WebhookDelivery{
		Body:             body,
		TransmissionID:   c.GetHeader("Paypal-Transmission-Id"),
		TransmissionTime: c.GetHeader("Paypal-Transmission-Time"),
		TransmissionSig:  c.GetHeader("Paypal-Transmission-Sig"),
		CertURL:          c.GetHeader("Paypal-Cert-Url"),
		AuthAlgo:         c.GetHeader("Paypal-Auth-Algo"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

// Replay handles POST /api/v1/webhooks/paypal/replay. Re-dispatches
// events stuck in FAILED; an optional limit query bounds the pass.
func (h *WebhookHandler) Replay(c *gin.Context) {
	limit := replayDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	replayed, err := h.webhookSvc.ReplayFailed(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ReplayResponse{Replayed: replayed})
}
