package ports

import (
	"context"
	"errors"
	"time"
)

// ErrProviderUnavailable marks a timeout or transport failure talking
// to the payment provider. Retryable, unlike a definitive rejection.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// RemoteRejection is implemented by gateway errors carrying a
// definitive remote rejection with its HTTP status.
type RemoteRejection interface {
	error
	RemoteStatus() int
	RemoteMessage() string
}

// Money is a monetary value as PayPal represents it: a decimal string
// plus a 3-letter currency code.
type Money struct {
	Value        string `json:"value"`
	CurrencyCode string `json:"currency_code"`
}

// OrderSnapshot is the typed view of a remote order.
type OrderSnapshot struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Intent     string     `json:"intent,omitempty"`
	ApproveURL string     `json:"approve_url,omitempty"`
	CreateTime *time.Time `json:"create_time,omitempty"`
	UpdateTime *time.Time `json:"update_time,omitempty"`
}

// CaptureSnapshot is the typed view of a capture response: the first
// capture record of the first purchase unit, plus the defensively
// extracted buyer email. Raw keeps the full payload for the ledger.
type CaptureSnapshot struct {
	OrderID     string
	CaptureID   string
	Status      string
	Amount      Money
	PlatformFee *Money
	BuyerEmail  *string
	Raw         []byte
}

// SubscriptionSnapshot is the typed view of a remote subscription.
// All nested fields are optional in the wire format and default to
// zero values here.
type SubscriptionSnapshot struct {
	ID                string
	PlanID            string
	Status            string
	CustomID          string
	ApproveURL        string
	SubscriberEmail   *string
	StartTime         *time.Time
	CreateTime        *time.Time
	NextBillingTime   *time.Time
	LastPaymentTime   *time.Time
	LastPaymentAmount *Money
	Raw               []byte
}

// PlanSnapshot is the typed view of a billing plan. Price and
// Interval come from the REGULAR billing cycle when present.
type PlanSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Price       *string `json:"price,omitempty"`
	Interval    *string `json:"interval,omitempty"`
	Raw         []byte  `json:"-"`
}

// CreateOrderParams carries the order-creation request: Amount is the
// full charge, PlatformFee the sub-amount routed to the platform.
// PayPal enforces PlatformFee <= Amount; violations surface as a
// remote rejection, not local validation.
type CreateOrderParams struct {
	Amount      string
	PlatformFee string
	Currency    string
	Description string
}

// CreateSubscriptionParams carries the subscription-creation request.
// ReturnURL/CancelURL re-associate the browser redirect with the
// originating tenant.
type CreateSubscriptionParams struct {
	PlanID    string
	CustomID  string
	ReturnURL string
	CancelURL string
}

// PlanBillingParams describes the billing cycles of a new plan.
type PlanBillingParams struct {
	ProductName   string
	Description   string
	Price         string
	Currency      string
	Interval      string // DAY, WEEK, MONTH, YEAR
	TrialPrice    string // empty = no trial cycle
	TrialDuration int
}

// SubscriptionListShape selects which query shape the unreliable
// remote list endpoint is called with.
type SubscriptionListShape int

const (
	// ListByStatus filters on ACTIVE/SUSPENDED/CANCELLED.
	ListByStatus SubscriptionListShape = iota
	// ListAllFields is the broader fields=all query.
	ListAllFields
)

// WebhookVerifyParams carries the transmission headers and body of an
// inbound webhook delivery for signature verification.
type WebhookVerifyParams struct {
	TransmissionID   string
	TransmissionTime string
	TransmissionSig  string
	CertURL          string
	AuthAlgo         string
	WebhookID        string
	Body             []byte
}

// PayPalGateway is the REST surface this system consumes from PayPal.
// Implementations must bound every call with a timeout and report
// timeouts as UpstreamUnavailable, distinct from remote rejections.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderSnapshot, error)
	GetOrder(ctx context.Context, orderID string) (*OrderSnapshot, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureSnapshot, error)

	CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (*SubscriptionSnapshot, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionSnapshot, error)
	CancelSubscription(ctx context.Context, subscriptionID string, reason string) error
	ListSubscriptions(ctx context.Context, shape SubscriptionListShape) ([]SubscriptionSnapshot, error)

	CreatePlan(ctx context.Context, params PlanBillingParams) (*PlanSnapshot, error)
	GetPlan(ctx context.Context, planID string) (*PlanSnapshot, error)
	ListPlans(ctx context.Context) ([]PlanSnapshot, error)

	CreateWebhook(ctx context.Context, notificationURL string, eventTypes []string) (string, error)
	VerifyWebhookSignature(ctx context.Context, params WebhookVerifyParams) (bool, error)
}
