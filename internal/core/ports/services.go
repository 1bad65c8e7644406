package ports

import (
	"context"

	"paypal-multiparty/internal/core/domain"
)

// --- Service Ports (Business Logic) ---

// OrderService is the order/capture flow. Every operation takes the
// tenant id explicitly; nothing is read from ambient state.
type OrderService interface {
	// CreateOrder creates a remote order with the platform-fee split.
	// No ledger row is written: a created-but-unpaid order is not a
	// transaction.
	CreateOrder(ctx context.Context, orgID string, params CreateOrderParams) (*OrderSnapshot, error)
	// CaptureOrder finalizes the order and records exactly one
	// Transaction row. Ledger-write failure is logged, not returned:
	// the payment already succeeded remotely.
	CaptureOrder(ctx context.Context, orgID string, orderID string) (*CaptureSnapshot, error)
	// VerifyOrder looks up the remote order status without side effects.
	VerifyOrder(ctx context.Context, orgID string, orderID string) (*OrderSnapshot, error)
}

// SubscriptionService is the subscription flow.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, orgID string, planID string) (*SubscriptionSnapshot, error)
	// ValidateSubscription fetches the remote subscription, rejects
	// unless its status is ACTIVE or APPROVED, and upserts the local
	// snapshot keyed by the remote subscription id.
	ValidateSubscription(ctx context.Context, orgID string, subscriptionID string) (*domain.Subscription, error)
	// CancelSubscription requires the subscription to belong to the
	// calling tenant. The remote cancel runs first; local status
	// flips to CANCELLED only after remote success.
	CancelSubscription(ctx context.Context, orgID string, subscriptionID string) error
	// ListSubscriptions walks the degrade chain: bulk list, alternate
	// bulk list, then per-id replay from local rows. First non-empty
	// result wins.
	ListSubscriptions(ctx context.Context) ([]SubscriptionSnapshot, error)
}

// WebhookAck is the response to an inbound webhook delivery.
type WebhookAck struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// WebhookDelivery carries the raw body and transmission headers of an
// inbound delivery.
type WebhookDelivery struct {
	Body             []byte
	TransmissionID   string
	TransmissionTime string
	TransmissionSig  string
	CertURL          string
	AuthAlgo         string
}

// WebhookService ingests asynchronous notifications from PayPal.
type WebhookService interface {
	// Receive verifies, dedupes, stores, and dispatches a delivery.
	// Duplicates are acknowledged without reprocessing.
	Receive(ctx context.Context, delivery WebhookDelivery) (*WebhookAck, error)
	// ReplayFailed re-dispatches events stuck in FAILED, returning
	// how many were retried.
	ReplayFailed(ctx context.Context, limit int) (int, error)
}

// TransactionView is a transaction-history row for the UI layer.
type TransactionView struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	PlatformFee string  `json:"platform_fee"`
	BuyerEmail  *string `json:"buyer_email,omitempty"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// SubscriptionView is a subscription-history row shaped like a
// transaction, with plan details resolved best-effort.
type SubscriptionView struct {
	ID           string  `json:"id"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	PlatformFee  string  `json:"platform_fee"`
	BuyerEmail   string  `json:"buyer_email"`
	PaymentType  string  `json:"payment_type"`
	Description  string  `json:"description"`
	PlanID       *string `json:"plan_id,omitempty"`
	PlanPrice    *string `json:"plan_price,omitempty"`
	PlanInterval *string `json:"plan_interval,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// HistoryService is the reconciliation/query read path. Both reads
// return an empty slice, never an error, when the tenant's account is
// absent or not active.
type HistoryService interface {
	Transactions(ctx context.Context, orgID string) ([]TransactionView, error)
	// Subscriptions resolves three tiers: a specific id when given,
	// else local rows refreshed by id, else a bulk remote fetch whose
	// discoveries are persisted.
	Subscriptions(ctx context.Context, orgID string, subscriptionID string) ([]SubscriptionView, error)
}

// ConnectAccountParams carries a tenant's account-link request.
type ConnectAccountParams struct {
	OrgID        string
	MerchantID   string
	Email        *string
	BusinessName *string
	IsLive       bool
}

// AccountService manages the tenant/merchant account link.
type AccountService interface {
	Connect(ctx context.Context, params ConnectAccountParams) (*domain.MerchantAccount, error)
	// Get returns nil when the account is absent or not active.
	Get(ctx context.Context, orgID string) (*domain.MerchantAccount, error)
	// Details returns the sanitized account view; credentials are
	// never included.
	Details(ctx context.Context, orgID string) (*domain.MerchantAccount, error)
	// Disconnect soft-deletes: status flips to inactive, the row and
	// its audit trail remain.
	Disconnect(ctx context.Context, orgID string) error
	RegisterWebhook(ctx context.Context, orgID string, notificationURL string) (string, error)
}

// CreatePlanParams carries a plan-creation request.
type CreatePlanParams struct {
	Name          string
	Description   string
	Price         string
	Interval      string
	TrialPrice    string
	TrialDuration int
}

// PlanService manages billing plans.
type PlanService interface {
	CreatePlan(ctx context.Context, orgID string, params CreatePlanParams) (*PlanSnapshot, error)
	// ListPlans drops plans whose detail fetch fails instead of
	// failing the list.
	ListPlans(ctx context.Context) ([]PlanSnapshot, error)
	PlanDetails(ctx context.Context, planID string) (*PlanSnapshot, error)
}

// TokenClaims holds the parsed identity-provider claims.
type TokenClaims struct {
	Subject string // user id
	OrgID   string // active organization
}

// TokenService validates identity-provider JWTs. This service never
// issues tokens.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}
