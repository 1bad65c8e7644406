package postgres

import (
	"context"
	"errors"
	"fmt"

	"paypal-multiparty/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SubscriptionRepo implements ports.SubscriptionRepository.
type SubscriptionRepo struct {
	pool Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, account_id, org_id, subscription_id, plan_id, status, start_date, next_billing_date, last_payment_date, last_payment_amount, currency, buyer_email, metadata, created_at, updated_at`

// Upsert writes a subscription snapshot keyed by the remote
// subscription id. An existing row is refreshed in place; the local
// id and created_at of the original row survive.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *domain.Subscription) error {
	query := `INSERT INTO subscriptions (id, account_id, org_id, subscription_id, plan_id, status, start_date, next_billing_date, last_payment_date, last_payment_amount, currency, buyer_email, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (subscription_id) DO UPDATE
		SET plan_id = COALESCE(EXCLUDED.plan_id, subscriptions.plan_id),
		    status = EXCLUDED.status,
		    start_date = COALESCE(EXCLUDED.start_date, subscriptions.start_date),
		    next_billing_date = COALESCE(EXCLUDED.next_billing_date, subscriptions.next_billing_date),
		    last_payment_date = COALESCE(EXCLUDED.last_payment_date, subscriptions.last_payment_date),
		    last_payment_amount = COALESCE(EXCLUDED.last_payment_amount, subscriptions.last_payment_amount),
		    buyer_email = COALESCE(EXCLUDED.buyer_email, subscriptions.buyer_email),
		    metadata = EXCLUDED.metadata,
		    updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.AccountID, s.OrgID, s.SubscriptionID, s.PlanID,
		s.Status, s.StartDate, s.NextBillingDate, s.LastPaymentDate,
		s.LastPaymentAmount, s.Currency, s.BuyerEmail, s.Metadata,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// GetBySubscriptionID fetches a snapshot by its remote id.
func (r *SubscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1`

	s := &domain.Subscription{}
	err := r.pool.QueryRow(ctx, query, subscriptionID).Scan(
		&s.ID, &s.AccountID, &s.OrgID, &s.SubscriptionID, &s.PlanID,
		&s.Status, &s.StartDate, &s.NextBillingDate, &s.LastPaymentDate,
		&s.LastPaymentAmount, &s.Currency, &s.BuyerEmail, &s.Metadata,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription by subscription_id: %w", err)
	}
	return s, nil
}

// ListByOrg returns a tenant's subscription snapshots newest-first.
func (r *SubscriptionRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE org_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions by org: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// ListRecent returns the newest snapshots across all tenants.
func (r *SubscriptionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// UpdateStatus sets the mirrored status of a snapshot.
func (r *SubscriptionRepo) UpdateStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) error {
	query := `UPDATE subscriptions SET status=$1, updated_at=NOW() WHERE subscription_id=$2`
	_, err := r.pool.Exec(ctx, query, status, subscriptionID)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	return nil
}

func scanSubscriptions(rows pgx.Rows) ([]domain.Subscription, error) {
	var list []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(
			&s.ID, &s.AccountID, &s.OrgID, &s.SubscriptionID, &s.PlanID,
			&s.Status, &s.StartDate, &s.NextBillingDate, &s.LastPaymentDate,
			&s.LastPaymentAmount, &s.Currency, &s.BuyerEmail, &s.Metadata,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
