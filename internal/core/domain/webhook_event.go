package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventProcessingStatus is the dispatch outcome for a stored webhook
// event. FAILED events stay replayable; there is no unconditional
// processed flag.
type EventProcessingStatus string

const (
	EventStatusReceived  EventProcessingStatus = "RECEIVED"
	EventStatusProcessed EventProcessingStatus = "PROCESSED"
	EventStatusFailed    EventProcessingStatus = "FAILED"
)

// Webhook event types this system acts on. Other types are stored
// and left at PROCESSED without side effects.
const (
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	EventCaptureDenied    = "PAYMENT.CAPTURE.DENIED"
	EventCaptureRefunded  = "PAYMENT.CAPTURE.REFUNDED"
)

// WebhookEvent stores one inbound PayPal notification. EventID is
// globally unique: a delivery carrying an already-seen id is a
// duplicate and must never be reprocessed.
type WebhookEvent struct {
	ID           uuid.UUID             `json:"id"`
	AccountID    *uuid.UUID            `json:"account_id,omitempty"` // resolved best-effort from the payload
	EventID      string                `json:"event_id"`
	EventType    string                `json:"event_type"`
	ResourceType *string               `json:"resource_type,omitempty"`
	ResourceID   *string               `json:"resource_id,omitempty"`
	Payload      []byte                `json:"-"`
	Status       EventProcessingStatus `json:"status"`
	LastError    *string               `json:"last_error,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}
