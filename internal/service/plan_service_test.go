package service

import (
	"context"
	"errors"
	"testing"

	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/internal/core/ports/mocks"
	"paypal-multiparty/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type planTestDeps struct {
	svc     *PlanServiceImpl
	gateway *mocks.MockPayPalGateway
	ctrl    *gomock.Controller
}

func setupPlanService(t *testing.T) *planTestDeps {
	ctrl := gomock.NewController(t)
	d := &planTestDeps{
		gateway: mocks.NewMockPayPalGateway(ctrl),
		ctrl:    ctrl,
	}
	d.svc = NewPlanService(d.gateway, "USD", zerolog.Nop())
	return d
}

func TestPlanService_CreatePlan_Success(t *testing.T) {
	d := setupPlanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.gateway.EXPECT().
		CreatePlan(ctx, ports.PlanBillingParams{
			ProductName:   "Pro",
			Description:   "Pro tier",
			Price:         "29.99",
			Currency:      "USD",
			Interval:      "MONTH",
			TrialPrice:    "0",
			TrialDuration: 14,
		}).
		Return(&ports.PlanSnapshot{ID: "PLAN-1", Name: "Pro", Status: "ACTIVE"}, nil)

	snap, err := d.svc.CreatePlan(ctx, "org_1", ports.CreatePlanParams{
		Name:          "Pro",
		Description:   "Pro tier",
		Price:         "29.99",
		Interval:      "MONTH",
		TrialPrice:    "0",
		TrialDuration: 14,
	})

	require.NoError(t, err)
	assert.Equal(t, "PLAN-1", snap.ID)
}

func TestPlanService_CreatePlan_Validation(t *testing.T) {
	d := setupPlanService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.CreatePlan(context.Background(), "org_1", ports.CreatePlanParams{Name: "Pro"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestPlanService_ListPlans_ResolvesDetails(t *testing.T) {
	d := setupPlanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	price := "29.99"
	d.gateway.EXPECT().ListPlans(ctx).Return([]ports.PlanSnapshot{
		{ID: "PLAN-1", Name: "Pro"},
		{ID: "PLAN-2", Name: "Basic"},
	}, nil)
	d.gateway.EXPECT().
		GetPlan(ctx, "PLAN-1").
		Return(&ports.PlanSnapshot{ID: "PLAN-1", Name: "Pro", Price: &price}, nil)
	// A failing detail fetch drops that plan, not the list.
	d.gateway.EXPECT().GetPlan(ctx, "PLAN-2").Return(nil, errors.New("boom"))

	plans, err := d.svc.ListPlans(ctx)

	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "PLAN-1", plans[0].ID)
	require.NotNil(t, plans[0].Price)
	assert.Equal(t, "29.99", *plans[0].Price)
}

func TestPlanService_ListPlans_BulkFailure(t *testing.T) {
	d := setupPlanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.gateway.EXPECT().ListPlans(ctx).Return(nil, ports.ErrProviderUnavailable)

	_, err := d.svc.ListPlans(ctx)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPS_001", appErr.Code)
}

func TestPlanService_PlanDetails(t *testing.T) {
	d := setupPlanService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.gateway.EXPECT().
		GetPlan(ctx, "PLAN-1").
		Return(&ports.PlanSnapshot{ID: "PLAN-1", Name: "Pro"}, nil)

	snap, err := d.svc.PlanDetails(ctx, "PLAN-1")

	require.NoError(t, err)
	assert.Equal(t, "Pro", snap.Name)
}
