package handler

import (
	"paypal-multiparty/internal/adapter/http/dto"
	"paypal-multiparty/internal/adapter/http/middleware"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
	"paypal-multiparty/pkg/response"

	"github.com/gin-gonic/gin"
)

// PlanHandler handles billing plan endpoints.
type PlanHandler struct {
	planSvc ports.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planSvc ports.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Create handles POST /api/v1/plans.
func (h *PlanHandler) Create(c *gin.Context) {
	orgID, ok := middleware.OrgID(c)
	if !ok {
		response.Error(c, apperror.ErrMissingOrganization())
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	snap, err := h.planSvc.CreatePlan(c.Request.Context(), orgID, ports.CreatePlanParams{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Interval:      req.Interval,
		TrialPrice:    req.TrialPrice,
		TrialDuration: req.TrialDuration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPlanResponse(snap))
}

// List handles GET /api/v1/plans.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planSvc.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, toPlanResponse(&plans[i]))
	}
	response.OK(c, resp)
}

// Details handles GET /api/v1/plans/:id.
func (h *PlanHandler) Details(c *gin.Context) {
	snap, err := h.planSvc.PlanDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPlanResponse(snap))
}

func toPlanResponse(snap *ports.PlanSnapshot) dto.PlanResponse {
	return dto.PlanResponse{
		ID:          snap.ID,
		Name:        snap.Name,
		Description: snap.Description,
		Status:      snap.Status,
		Price:       snap.Price,
		Interval:    snap.Interval,
	}
}
