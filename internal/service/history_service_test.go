package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type historyTestDeps struct {
	svc         *HistoryServiceImpl
	accountRepo *mocks.MockAccountRepository
	txRepo      *mocks.MockTransactionRepository
	subRepo     *mocks.MockSubscriptionRepository
	subSvc      *mocks.MockSubscriptionService
	gateway     *mocks.MockPayPalGateway
	ctrl        *gomock.Controller
}

func setupHistoryService(t *testing.T) *historyTestDeps {
	ctrl := gomock.NewController(t)
	d := &historyTestDeps{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		subRepo:     mocks.NewMockSubscriptionRepository(ctrl),
		subSvc:      mocks.NewMockSubscriptionService(ctrl),
		gateway:     mocks.NewMockPayPalGateway(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewHistoryService(
		d.accountRepo, d.txRepo, d.subRepo, d.subSvc, d.gateway, zerolog.Nop(),
	)
	return d
}

// ==================== Transactions Tests ====================

func TestHistoryService_Transactions_NoAccountReturnsEmpty(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(nil, nil)

	views, err := d.svc.Transactions(ctx, "org_1")

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestHistoryService_Transactions_InactiveAccountReturnsEmpty(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	account := activeAccountFixture("org_1")
	account.Status = domain.AccountStatusInactive
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(account, nil)

	views, err := d.svc.Transactions(ctx, "org_1")

	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestHistoryService_Transactions_ShapesViews(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	account := activeAccountFixture("org_1")
	fee := "5.00"
	email := "buyer@example.com"
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(account, nil)
	d.txRepo.EXPECT().
		ListByAccount(ctx, account.ID, transactionHistoryLimit).
		Return([]domain.Transaction{
			{
				ID:          uuid.New(),
				OrderID:     "ORDER-1",
				Amount:      "100.00",
				Currency:    "USD",
				Status:      domain.TransactionStatusCompleted,
				PlatformFee: &fee,
				BuyerEmail:  &email,
				PaymentDetails: []byte(`{
					"purchase_units": [{"description": "Pro plan"}]
				}`),
				CreatedAt: created,
			},
			{
				ID:        uuid.New(),
				OrderID:   "ORDER-2",
				Amount:    "20.00",
				Currency:  "USD",
				Status:    domain.TransactionStatusDenied,
				CreatedAt: created,
			},
		}, nil)

	views, err := d.svc.Transactions(ctx, "org_1")

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "ORDER-1", views[0].OrderID)
	assert.Equal(t, "Pro plan", views[0].Description)
	assert.Equal(t, "5.00", views[0].PlatformFee)
	assert.Equal(t, "2025-03-01T12:00:00Z", views[0].CreatedAt)
	// Missing fee and payload fall back to defaults.
	assert.Equal(t, "0.00", views[1].PlatformFee)
	assert.Equal(t, "PayPal Payment", views[1].Description)
}

func TestHistoryService_Transactions_ItemNameFallback(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	account := activeAccountFixture("org_1")
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(account, nil)
	d.txRepo.EXPECT().
		ListByAccount(ctx, account.ID, transactionHistoryLimit).
		Return([]domain.Transaction{{
			ID:             uuid.New(),
			OrderID:        "ORDER-1",
			PaymentDetails: []byte(`{"purchase_units": [{"items": [{"name": "Sticker pack"}]}]}`),
		}}, nil)

	views, err := d.svc.Transactions(ctx, "org_1")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Sticker pack", views[0].Description)
}

// ==================== Subscriptions Tests ====================

func TestHistoryService_Subscriptions_NoAccountReturnsEmpty(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(nil, nil)

	views, err := d.svc.Subscriptions(ctx, "org_1", "")

	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestHistoryService_Subscriptions_SpecificID(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	price := "29.99"
	interval := "month"
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	email := "subscriber@example.com"

	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(activeAccountFixture("org_1"), nil)
	d.gateway.EXPECT().
		GetSubscription(ctx, "SUB-1").
		Return(&ports.SubscriptionSnapshot{
			ID:                "SUB-1",
			PlanID:            "PLAN-1",
			Status:            "ACTIVE",
			SubscriberEmail:   &email,
			CreateTime:        &created,
			LastPaymentAmount: &ports.Money{Value: "29.99", CurrencyCode: "USD"},
		}, nil)
	d.gateway.EXPECT().
		GetPlan(ctx, "PLAN-1").
		Return(&ports.PlanSnapshot{ID: "PLAN-1", Name: "Pro", Price: &price, Interval: &interval}, nil)

	views, err := d.svc.Subscriptions(ctx, "org_1", "SUB-1")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "SUB-1", views[0].ID)
	assert.Equal(t, "29.99", views[0].Amount)
	assert.Equal(t, "Pro", views[0].Description)
	require.NotNil(t, views[0].PlanPrice)
	assert.Equal(t, "29.99", *views[0].PlanPrice)
	assert.Equal(t, "subscription", views[0].PaymentType)
}

func TestHistoryService_Subscriptions_RefreshesLocalRows(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(activeAccountFixture("org_1"), nil)
	d.subRepo.EXPECT().ListByOrg(ctx, "org_1").Return([]domain.Subscription{
		{SubscriptionID: "SUB-1", Status: domain.SubscriptionStatusActive, Currency: "USD"},
		{SubscriptionID: "SUB-2", Status: domain.SubscriptionStatusActive, Currency: "USD"},
	}, nil)
	d.gateway.EXPECT().
		GetSubscription(ctx, "SUB-1").
		Return(&ports.SubscriptionSnapshot{ID: "SUB-1", Status: "SUSPENDED"}, nil)
	// The second refresh fails; the stored snapshot is served instead.
	d.gateway.EXPECT().
		GetSubscription(ctx, "SUB-2").
		Return(nil, errors.New("boom"))

	views, err := d.svc.Subscriptions(ctx, "org_1", "")

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "SUSPENDED", views[0].Status)
	assert.Equal(t, "ACTIVE", views[1].Status)
}

func TestHistoryService_Subscriptions_DiscoversAndPersistsRemote(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	account := activeAccountFixture("org_1")
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(account, nil)
	d.subRepo.EXPECT().ListByOrg(ctx, "org_1").Return(nil, nil)
	// The bulk list is platform wide; only this tenant's rows may be
	// persisted and served.
	d.subSvc.EXPECT().ListSubscriptions(ctx).Return([]ports.SubscriptionSnapshot{
		{ID: "SUB-1", Status: "ACTIVE", CustomID: "org_1"},
		{ID: "SUB-2", Status: "ACTIVE", CustomID: "org_other"},
	}, nil)
	d.subRepo.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *domain.Subscription) error {
			assert.Equal(t, "SUB-1", sub.SubscriptionID)
			assert.Equal(t, "org_1", sub.OrgID)
			assert.Equal(t, account.ID, sub.AccountID)
			return nil
		})

	views, err := d.svc.Subscriptions(ctx, "org_1", "")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "SUB-1", views[0].ID)
}

func TestHistoryService_Subscriptions_DiscoveryFailureReturnsEmpty(t *testing.T) {
	d := setupHistoryService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accountRepo.EXPECT().GetByOrgID(ctx, "org_1").Return(activeAccountFixture("org_1"), nil)
	d.subRepo.EXPECT().ListByOrg(ctx, "org_1").Return(nil, nil)
	d.subSvc.EXPECT().ListSubscriptions(ctx).Return(nil, errors.New("all strategies failed"))

	views, err := d.svc.Subscriptions(ctx, "org_1", "")

	require.NoError(t, err)
	assert.Empty(t, views)
}
