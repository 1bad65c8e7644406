package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transactionHistoryLimit caps the transaction read path.
const transactionHistoryLimit = 50

// HistoryServiceImpl implements ports.HistoryService. Both reads
// answer with an empty slice, never an error, when the tenant has no
// active account: a disconnected account reads as "no history".
type HistoryServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	subRepo     ports.SubscriptionRepository
	subSvc      ports.SubscriptionService
	gateway     ports.PayPalGateway
	log         zerolog.Logger
}

// NewHistoryService creates a new HistoryServiceImpl.
func NewHistoryService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	subRepo ports.SubscriptionRepository,
	subSvc ports.SubscriptionService,
	gateway ports.PayPalGateway,
	log zerolog.Logger,
) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		subRepo:     subRepo,
		subSvc:      subSvc,
		gateway:     gateway,
		log:         log,
	}
}

// Transactions returns the tenant's ledger rows newest-first, capped
// at 50, with a best-effort description from the stored payload.
func (s *HistoryServiceImpl) Transactions(ctx context.Context, orgID string) ([]ports.TransactionView, error) {
	account, err := s.activeAccount(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return []ports.TransactionView{}, nil
	}

	transactions, err := s.txRepo.ListByAccount(ctx, account.ID, transactionHistoryLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}

	views := make([]ports.TransactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, transactionView(tx))
	}
	return views, nil
}

// Subscriptions resolves three tiers: a specific id when given, else
// the tenant's local rows refreshed by id, else a bulk remote fetch
// whose discoveries are persisted. Plan price and interval resolve
// via a secondary plan fetch, tolerating its absence.
func (s *HistoryServiceImpl) Subscriptions(ctx context.Context, orgID string, subscriptionID string) ([]ports.SubscriptionView, error) {
	account, err := s.activeAccount(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return []ports.SubscriptionView{}, nil
	}

	if subscriptionID != "" {
		snap, err := s.gateway.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return nil, mapGatewayError(fmt.Errorf("get subscription: %w", err))
		}
		return []ports.SubscriptionView{s.subscriptionView(ctx, snap)}, nil
	}

	local, err := s.subRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list subscriptions: %w", err))
	}
	if len(local) > 0 {
		return s.refreshLocal(ctx, local), nil
	}

	return s.discoverRemote(ctx, account.ID, orgID)
}

// refreshLocal re-fetches each known id for freshness, falling back
// to the stored snapshot when the remote fetch fails.
func (s *HistoryServiceImpl) refreshLocal(ctx context.Context, local []domain.Subscription) []ports.SubscriptionView {
	views := make([]ports.SubscriptionView, 0, len(local))
	for _, sub := range local {
		snap, err := s.gateway.GetSubscription(ctx, sub.SubscriptionID)
		if err != nil {
			s.log.Warn().Err(err).Str("subscription_id", sub.SubscriptionID).Msg("refresh fetch failed, serving stored snapshot")
			views = append(views, s.storedSubscriptionView(ctx, sub))
			continue
		}
		views = append(views, s.subscriptionView(ctx, snap))
	}
	return views
}

// discoverRemote walks the bulk list chain and persists any
// subscriptions belonging to this tenant (matched by custom id).
func (s *HistoryServiceImpl) discoverRemote(ctx context.Context, accountID uuid.UUID, orgID string) ([]ports.SubscriptionView, error) {
	snaps, err := s.subSvc.ListSubscriptions(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("org_id", orgID).Msg("bulk subscription discovery failed")
		return []ports.SubscriptionView{}, nil
	}

	views := make([]ports.SubscriptionView, 0)
	for i := range snaps {
		snap := &snaps[i]
		if snap.CustomID != orgID {
			continue
		}
		sub := snapshotToSubscription(snap, accountID, orgID, "")
		if err := s.subRepo.Upsert(ctx, sub); err != nil {
			s.log.Warn().Err(err).Str("subscription_id", snap.ID).Msg("persisting discovered subscription failed")
		}
		views = append(views, s.subscriptionView(ctx, snap))
	}
	return views, nil
}

// activeAccount returns nil,nil when the account is absent or not
// active. Only infrastructure failures surface as errors.
func (s *HistoryServiceImpl) activeAccount(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil || !account.IsActive() {
		return nil, nil
	}
	return account, nil
}

func (s *HistoryServiceImpl) subscriptionView(ctx context.Context, snap *ports.SubscriptionSnapshot) ports.SubscriptionView {
	view := ports.SubscriptionView{
		ID:          snap.ID,
		Amount:      "0.00",
		Status:      snap.Status,
		PlatformFee: "0.00",
		PaymentType: "subscription",
		Description: "Subscription",
	}
	if snap.SubscriberEmail != nil {
		view.BuyerEmail = *snap.SubscriberEmail
	}
	if snap.LastPaymentAmount != nil {
		view.Amount = snap.LastPaymentAmount.Value
		view.Currency = snap.LastPaymentAmount.CurrencyCode
	}
	if snap.CreateTime != nil {
		view.CreatedAt = snap.CreateTime.UTC().Format(time.RFC3339)
	}
	if snap.PlanID != "" {
		planID := snap.PlanID
		view.PlanID = &planID
		s.resolvePlan(ctx, &view, planID)
	}
	return view
}

func (s *HistoryServiceImpl) storedSubscriptionView(ctx context.Context, sub domain.Subscription) ports.SubscriptionView {
	view := ports.SubscriptionView{
		ID:          sub.SubscriptionID,
		Amount:      "0.00",
		Currency:    sub.Currency,
		Status:      string(sub.Status),
		PlatformFee: "0.00",
		PaymentType: "subscription",
		Description: "Subscription",
		CreatedAt:   sub.CreatedAt.UTC().Format(time.RFC3339),
	}
	if sub.BuyerEmail != nil {
		view.BuyerEmail = *sub.BuyerEmail
	}
	if sub.LastPaymentAmount != nil {
		view.Amount = *sub.LastPaymentAmount
	}
	if sub.PlanID != nil {
		view.PlanID = sub.PlanID
		s.resolvePlan(ctx, &view, *sub.PlanID)
	}
	return view
}

// resolvePlan fills plan name/price/interval best-effort.
func (s *HistoryServiceImpl) resolvePlan(ctx context.Context, view *ports.SubscriptionView, planID string) {
	plan, err := s.gateway.GetPlan(ctx, planID)
	if err != nil {
		s.log.Debug().Err(err).Str("plan_id", planID).Msg("plan resolution failed")
		return
	}
	if plan.Name != "" {
		view.Description = plan.Name
	}
	view.PlanPrice = plan.Price
	view.PlanInterval = plan.Interval
}

// transactionView shapes a ledger row for the UI, resolving the
// description from the raw payload: first purchase-unit description,
// else first line-item name, else a placeholder.
func transactionView(tx domain.Transaction) ports.TransactionView {
	view := ports.TransactionView{
		ID:          tx.ID.String(),
		OrderID:     tx.OrderID,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Status:      string(tx.Status),
		PlatformFee: "0.00",
		BuyerEmail:  tx.BuyerEmail,
		Description: paymentDescription(tx.PaymentDetails),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
	}
	if tx.PlatformFee != nil && *tx.PlatformFee != "" {
		view.PlatformFee = *tx.PlatformFee
	}
	return view
}

func paymentDescription(payload []byte) string {
	const placeholder = "PayPal Payment"
	if len(payload) == 0 {
		return placeholder
	}
	var details struct {
		PurchaseUnits []struct {
			Description string `json:"description"`
			Items       []struct {
				Name string `json:"name"`
			} `json:"items"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(payload, &details); err != nil || len(details.PurchaseUnits) == 0 {
		return placeholder
	}
	pu := details.PurchaseUnits[0]
	if pu.Description != "" {
		return pu.Description
	}
	if len(pu.Items) > 0 && pu.Items[0].Name != "" {
		return pu.Items[0].Name
	}
	return placeholder
}
