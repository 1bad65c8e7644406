package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the remote subscription lifecycle:
// APPROVAL_PENDING -> ACTIVE -> {SUSPENDED, CANCELLED, EXPIRED}.
// The ledger never transitions this machine itself.
type SubscriptionStatus string

const (
	SubscriptionStatusApprovalPending SubscriptionStatus = "APPROVAL_PENDING"
	SubscriptionStatusApproved        SubscriptionStatus = "APPROVED"
	SubscriptionStatusActive          SubscriptionStatus = "ACTIVE"
	SubscriptionStatusSuspended       SubscriptionStatus = "SUSPENDED"
	SubscriptionStatusCancelled       SubscriptionStatus = "CANCELLED"
	SubscriptionStatusExpired         SubscriptionStatus = "EXPIRED"
)

// Valid returns true for statuses under which a subscription may be
// recorded locally (remote reports it approved or already billing).
func (s SubscriptionStatus) Valid() bool {
	return s == SubscriptionStatusActive || s == SubscriptionStatusApproved
}

// Subscription snapshots a remote subscription, keyed by the remote
// subscription id. Rows are upserted in place whenever a flow
// observes a newer remote snapshot; this record is not append-only.
type Subscription struct {
	ID                uuid.UUID          `json:"id"`
	AccountID         uuid.UUID          `json:"account_id"`
	OrgID             string             `json:"org_id"`
	SubscriptionID    string             `json:"subscription_id"`
	PlanID            *string            `json:"plan_id,omitempty"`
	Status            SubscriptionStatus `json:"status"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	NextBillingDate   *time.Time         `json:"next_billing_date,omitempty"`
	LastPaymentDate   *time.Time         `json:"last_payment_date,omitempty"`
	LastPaymentAmount *string            `json:"last_payment_amount,omitempty"`
	Currency          string             `json:"currency"`
	BuyerEmail        *string            `json:"buyer_email,omitempty"`
	Metadata          []byte             `json:"-"` // raw remote payload
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
