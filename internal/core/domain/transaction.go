package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus mirrors the remote capture lifecycle. PayPal owns
// these transitions; the ledger only snapshots what it observes.
type TransactionStatus string

const (
	TransactionStatusCreated   TransactionStatus = "CREATED"
	TransactionStatusApproved  TransactionStatus = "APPROVED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusVoided    TransactionStatus = "VOIDED"
	TransactionStatusDenied    TransactionStatus = "DENIED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

// Transaction records a captured one-time payment. Rows are written
// at capture time only, never at order creation; later webhook
// deliveries may update the mirrored status.
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	AccountID      uuid.UUID         `json:"account_id"`
	OrderID        string            `json:"order_id"`
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	Status         TransactionStatus `json:"status"`
	PlatformFee    *string           `json:"platform_fee,omitempty"`
	BuyerEmail     *string           `json:"buyer_email,omitempty"`
	PaymentDetails []byte            `json:"-"` // raw capture payload, kept for audit
	CreatedAt      time.Time         `json:"created_at"`
}

// IsTerminal returns true if the mirrored status is final.
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusVoided,
		TransactionStatusDenied, TransactionStatusRefunded:
		return true
	}
	return false
}
