package ports

import (
	"context"

	"paypal-multiparty/internal/core/domain"

	"github.com/google/uuid"
)

// AccountRepository defines persistence operations for merchant
// account links.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.MerchantAccount) error
	GetByOrgID(ctx context.Context, orgID string) (*domain.MerchantAccount, error)
	GetByMerchantID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error)
	Update(ctx context.Context, account *domain.MerchantAccount) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error
}

// TransactionRepository defines persistence operations for the
// one-time payment ledger.
type TransactionRepository interface {
	// Create inserts a new transaction. The order_id column is unique;
	// a second insert for the same order fails.
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Transaction, error)
	// UpsertByOrderID inserts the transaction, or updates the mirrored
	// status if a row for the order already exists. Used by the
	// webhook flow so lost capture records are re-derived.
	UpsertByOrderID(ctx context.Context, transaction *domain.Transaction) error
	UpdateStatusByOrderID(ctx context.Context, orderID string, status domain.TransactionStatus) (bool, error)
	// ListByAccount returns transactions newest-first, capped at limit.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error)
}

// SubscriptionRepository defines persistence operations for
// subscription snapshots.
type SubscriptionRepository interface {
	// Upsert writes a snapshot keyed by the remote subscription id:
	// update in place when a row with that id exists, insert otherwise.
	Upsert(ctx context.Context, sub *domain.Subscription) error
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	// ListByOrg returns a tenant's subscriptions newest-first.
	ListByOrg(ctx context.Context, orgID string) ([]domain.Subscription, error)
	// ListRecent returns the most recent snapshots regardless of
	// tenant, used by the per-id replay fallback.
	ListRecent(ctx context.Context, limit int) ([]domain.Subscription, error)
	UpdateStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) error
}

// WebhookEventRepository defines persistence for inbound webhook
// events.
type WebhookEventRepository interface {
	// Insert stores a new event. Returns false without error when an
	// event with the same remote event id already exists; the unique
	// constraint arbitrates concurrent deliveries.
	Insert(ctx context.Context, event *domain.WebhookEvent) (bool, error)
	GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.EventProcessingStatus, lastError *string) error
	ListByStatus(ctx context.Context, status domain.EventProcessingStatus, limit int) ([]domain.WebhookEvent, error)
}
