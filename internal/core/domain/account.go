package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus represents the state of a tenant's PayPal account link.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// MerchantAccount links an organization to a PayPal merchant identity.
// A tenant has at most one active account; disconnecting flips the
// status to inactive, the row is never deleted.
type MerchantAccount struct {
	ID           uuid.UUID     `json:"id"`
	OrgID        string        `json:"org_id"`
	MerchantID   string        `json:"merchant_id"`
	Email        *string       `json:"email,omitempty"`
	BusinessName *string       `json:"business_name,omitempty"`
	Status       AccountStatus `json:"status"`
	IsLive       bool          `json:"is_live"`
	WebhookID    *string       `json:"webhook_id,omitempty"`
	Credentials  []byte        `json:"-"` // opaque credential blob, never exposed
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsActive returns true if the account link is active.
func (a *MerchantAccount) IsActive() bool {
	return a.Status == AccountStatusActive
}
