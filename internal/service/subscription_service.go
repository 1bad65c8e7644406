package service

import (
	"context"
	"fmt"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// replayListLimit caps how many local rows the per-id replay tier
// re-fetches when both bulk list shapes come back empty.
const replayListLimit = 50

// SubscriptionServiceImpl implements ports.SubscriptionService.
type SubscriptionServiceImpl struct {
	accountRepo ports.AccountRepository
	subRepo     ports.SubscriptionRepository
	gateway     ports.PayPalGateway
	appBaseURL  string
	currency    string
	log         zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionServiceImpl.
func NewSubscriptionService(
	accountRepo ports.AccountRepository,
	subRepo ports.SubscriptionRepository,
	gateway ports.PayPalGateway,
	appBaseURL string,
	currency string,
	log zerolog.Logger,
) *SubscriptionServiceImpl {
	return &SubscriptionServiceImpl{
		accountRepo: accountRepo,
		subRepo:     subRepo,
		gateway:     gateway,
		appBaseURL:  appBaseURL,
		currency:    currency,
		log:         log,
	}
}

// CreateSubscription creates a remote subscription against a plan.
// The callback URLs carry the tenant id so the browser redirect can
// re-associate with the originating organization.
func (s *SubscriptionServiceImpl) CreateSubscription(ctx context.Context, orgID string, planID string) (*ports.SubscriptionSnapshot, error) {
	if _, err := s.requireAccount(ctx, orgID); err != nil {
		return nil, err
	}

	snap, err := s.gateway.CreateSubscription(ctx, ports.CreateSubscriptionParams{
		PlanID:    planID,
		CustomID:  orgID,
		ReturnURL: fmt.Sprintf("%s/subscription/success?org_id=%s", s.appBaseURL, orgID),
		CancelURL: fmt.Sprintf("%s/subscription/cancel?org_id=%s", s.appBaseURL, orgID),
	})
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("create subscription: %w", err))
	}

	s.log.Info().
		Str("org_id", orgID).
		Str("subscription_id", snap.ID).
		Str("plan_id", planID).
		Msg("subscription created")

	return snap, nil
}

// ValidateSubscription fetches the remote subscription, rejects
// unless PayPal reports it ACTIVE or APPROVED, and upserts the local
// snapshot keyed by the remote subscription id. Validating the same
// id twice updates one row, it never creates a second.
func (s *SubscriptionServiceImpl) ValidateSubscription(ctx context.Context, orgID string, subscriptionID string) (*domain.Subscription, error) {
	account, err := s.requireAccount(ctx, orgID)
	if err != nil {
		return nil, err
	}

	snap, err := s.gateway.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("get subscription: %w", err))
	}

	status := domain.SubscriptionStatus(snap.Status)
	if !status.Valid() {
		// A known row still tracks the observed status; a rejected
		// validation never creates one.
		if existing, lookupErr := s.subRepo.GetBySubscriptionID(ctx, subscriptionID); lookupErr == nil && existing != nil {
			if updateErr := s.subRepo.UpdateStatus(ctx, subscriptionID, status); updateErr != nil {
				s.log.Error().Err(updateErr).
					Str("subscription_id", subscriptionID).
					Msg("failed to refresh subscription status")
			}
		}
		return nil, apperror.ErrSubscriptionNotActive(snap.Status)
	}

	sub := snapshotToSubscription(snap, account.ID, orgID, s.currency)
	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("upsert subscription: %w", err))
	}

	s.log.Info().
		Str("org_id", orgID).
		Str("subscription_id", subscriptionID).
		Str("status", snap.Status).
		Msg("subscription validated")

	return sub, nil
}

// CancelSubscription requires the subscription to belong to the
// calling tenant. The remote cancel runs first; the local status
// flips to CANCELLED only after remote success.
func (s *SubscriptionServiceImpl) CancelSubscription(ctx context.Context, orgID string, subscriptionID string) error {
	sub, err := s.subRepo.GetBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrSubscriptionNotFound()
	}
	if sub.OrgID != orgID {
		return apperror.ErrForbidden("Subscription belongs to a different organization")
	}

	if err := s.gateway.CancelSubscription(ctx, subscriptionID, "Cancelled by organization"); err != nil {
		return mapGatewayError(fmt.Errorf("cancel subscription: %w", err))
	}

	if err := s.subRepo.UpdateStatus(ctx, subscriptionID, domain.SubscriptionStatusCancelled); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update subscription status: %w", err))
	}

	s.log.Info().
		Str("org_id", orgID).
		Str("subscription_id", subscriptionID).
		Msg("subscription cancelled")

	return nil
}

// ListSubscriptions walks an explicit strategy chain because the
// remote list endpoint silently returns empty results: bulk list,
// alternate bulk list, then per-id replay from local rows. The first
// non-empty result wins.
func (s *SubscriptionServiceImpl) ListSubscriptions(ctx context.Context) ([]ports.SubscriptionSnapshot, error) {
	strategies := []struct {
		name  string
		fetch func(ctx context.Context) ([]ports.SubscriptionSnapshot, error)
	}{
		{"status filter", func(ctx context.Context) ([]ports.SubscriptionSnapshot, error) {
			return s.gateway.ListSubscriptions(ctx, ports.ListByStatus)
		}},
		{"all fields", func(ctx context.Context) ([]ports.SubscriptionSnapshot, error) {
			return s.gateway.ListSubscriptions(ctx, ports.ListAllFields)
		}},
		{"local replay", s.replayFromLedger},
	}

	var lastErr error
	for _, strat := range strategies {
		snaps, err := strat.fetch(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("strategy", strat.name).Msg("subscription list strategy failed")
			lastErr = err
			continue
		}
		if len(snaps) > 0 {
			return snaps, nil
		}
	}

	if lastErr != nil {
		return nil, mapGatewayError(fmt.Errorf("list subscriptions: %w", lastErr))
	}
	return []ports.SubscriptionSnapshot{}, nil
}

// replayFromLedger re-fetches ids already known locally, one by one.
// Individual fetch failures drop that id, not the whole replay.
func (s *SubscriptionServiceImpl) replayFromLedger(ctx context.Context) ([]ports.SubscriptionSnapshot, error) {
	subs, err := s.subRepo.ListRecent(ctx, replayListLimit)
	if err != nil {
		return nil, fmt.Errorf("list local subscriptions: %w", err)
	}

	snaps := make([]ports.SubscriptionSnapshot, 0, len(subs))
	for _, sub := range subs {
		snap, err := s.gateway.GetSubscription(ctx, sub.SubscriptionID)
		if err != nil {
			s.log.Warn().Err(err).Str("subscription_id", sub.SubscriptionID).Msg("replay fetch failed")
			continue
		}
		snaps = append(snaps, *snap)
	}
	return snaps, nil
}

func (s *SubscriptionServiceImpl) requireAccount(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil || !account.IsActive() {
		return nil, apperror.ErrAccountNotFound()
	}
	return account, nil
}

// snapshotToSubscription builds a ledger row from a remote snapshot.
func snapshotToSubscription(snap *ports.SubscriptionSnapshot, accountID uuid.UUID, orgID string, defaultCurrency string) *domain.Subscription {
	now := time.Now().UTC()
	sub := &domain.Subscription{
		ID:              uuid.New(),
		AccountID:       accountID,
		OrgID:           orgID,
		SubscriptionID:  snap.ID,
		Status:          domain.SubscriptionStatus(snap.Status),
		StartDate:       snap.StartTime,
		NextBillingDate: snap.NextBillingTime,
		LastPaymentDate: snap.LastPaymentTime,
		Currency:        defaultCurrency,
		BuyerEmail:      snap.SubscriberEmail,
		Metadata:        snap.Raw,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if snap.PlanID != "" {
		planID := snap.PlanID
		sub.PlanID = &planID
	}
	if snap.LastPaymentAmount != nil {
		sub.LastPaymentAmount = &snap.LastPaymentAmount.Value
		if snap.LastPaymentAmount.CurrencyCode != "" {
			sub.Currency = snap.LastPaymentAmount.CurrencyCode
		}
	}
	return sub
}
