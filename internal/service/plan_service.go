package service

import (
	"context"
	"fmt"

	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"

	"github.com/rs/zerolog"
)

// PlanServiceImpl implements ports.PlanService. Plans are
// platform-level resources; orgID is carried for attribution only.
type PlanServiceImpl struct {
	gateway  ports.PayPalGateway
	currency string
	log      zerolog.Logger
}

// NewPlanService creates a new PlanServiceImpl.
func NewPlanService(gateway ports.PayPalGateway, currency string, log zerolog.Logger) *PlanServiceImpl {
	return &PlanServiceImpl{
		gateway:  gateway,
		currency: currency,
		log:      log,
	}
}

// CreatePlan creates the catalog product and billing plan.
func (s *PlanServiceImpl) CreatePlan(ctx context.Context, orgID string, params ports.CreatePlanParams) (*ports.PlanSnapshot, error) {
	if params.Name == "" || params.Price == "" || params.Interval == "" {
		return nil, apperror.Validation("name, price and interval are required")
	}

	snap, err := s.gateway.CreatePlan(ctx, ports.PlanBillingParams{
		ProductName:   params.Name,
		Description:   params.Description,
		Price:         params.Price,
		Currency:      s.currency,
		Interval:      params.Interval,
		TrialPrice:    params.TrialPrice,
		TrialDuration: params.TrialDuration,
	})
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("create plan: %w", err))
	}

	s.log.Info().
		Str("org_id", orgID).
		Str("plan_id", snap.ID).
		Str("price", params.Price).
		Str("interval", params.Interval).
		Msg("plan created")

	return snap, nil
}

// ListPlans lists active plans with price and interval resolved by a
// per-plan detail fetch. A failed detail fetch drops that plan from
// the list, it never fails the whole read.
func (s *PlanServiceImpl) ListPlans(ctx context.Context) ([]ports.PlanSnapshot, error) {
	plans, err := s.gateway.ListPlans(ctx)
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("list plans: %w", err))
	}

	detailed := make([]ports.PlanSnapshot, 0, len(plans))
	for _, plan := range plans {
		full, err := s.gateway.GetPlan(ctx, plan.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("plan_id", plan.ID).Msg("plan detail fetch failed, dropping from list")
			continue
		}
		detailed = append(detailed, *full)
	}
	return detailed, nil
}

// PlanDetails fetches one plan with its billing cycles.
func (s *PlanServiceImpl) PlanDetails(ctx context.Context, planID string) (*ports.PlanSnapshot, error) {
	snap, err := s.gateway.GetPlan(ctx, planID)
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("get plan: %w", err))
	}
	return snap, nil
}
