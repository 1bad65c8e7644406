package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// webhookEnvelope is the outer shape of a PayPal webhook delivery.
type webhookEnvelope struct {
	ID           string          `json:"id"`
	EventType    string          `json:"event_type"`
	ResourceType string          `json:"resource_type"`
	Resource     json.RawMessage `json:"resource"`
}

// webhookResource covers the capture-resource fields the dispatch
// handlers read. Every field is optional on the wire.
type webhookResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount *struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
	CustomID string `json:"custom_id"`
	Payee    *struct {
		MerchantID   string `json:"merchant_id"`
		EmailAddress string `json:"email_address"`
	} `json:"payee"`
	Payer *struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	SellerReceivableBreakdown *struct {
		PlatformFees []struct {
			Amount struct {
				Value string `json:"value"`
			} `json:"amount"`
		} `json:"platform_fees"`
	} `json:"seller_receivable_breakdown"`
	SupplementaryData *struct {
		RelatedIDs *struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// WebhookServiceImpl implements ports.WebhookService.
type WebhookServiceImpl struct {
	eventRepo   ports.WebhookEventRepository
	txRepo      ports.TransactionRepository
	accountRepo ports.AccountRepository
	gateway     ports.PayPalGateway
	webhookID   string // platform-level subscription, per-account ids override
	log         zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl.
func NewWebhookService(
	eventRepo ports.WebhookEventRepository,
	txRepo ports.TransactionRepository,
	accountRepo ports.AccountRepository,
	gateway ports.PayPalGateway,
	webhookID string,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		eventRepo:   eventRepo,
		txRepo:      txRepo,
		accountRepo: accountRepo,
		gateway:     gateway,
		webhookID:   webhookID,
		log:         log,
	}
}

// Receive verifies, dedupes, stores, and dispatches one delivery.
// A missing transmission header or a failed verification fails
// closed with no side effects. Duplicates are acknowledged without
// reprocessing; the unique event_id constraint arbitrates races.
func (s *WebhookServiceImpl) Receive(ctx context.Context, delivery ports.WebhookDelivery) (*ports.WebhookAck, error) {
	if delivery.TransmissionID == "" || delivery.TransmissionTime == "" ||
		delivery.TransmissionSig == "" || delivery.CertURL == "" {
		return nil, apperror.ErrInvalidWebhookSignature()
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(delivery.Body, &envelope); err != nil {
		return nil, apperror.Validation("Malformed webhook payload")
	}
	if envelope.ID == "" {
		return nil, apperror.Validation("Webhook payload missing event id")
	}

	account := s.resolveAccount(ctx, envelope.Resource)

	verifyWebhookID := s.webhookID
	if account != nil && account.WebhookID != nil && *account.WebhookID != "" {
		verifyWebhookID = *account.WebhookID
	}

	ok, err := s.gateway.VerifyWebhookSignature(ctx, ports.WebhookVerifyParams{
		TransmissionID:   delivery.TransmissionID,
		TransmissionTime: delivery.TransmissionTime,
		TransmissionSig:  delivery.TransmissionSig,
		CertURL:          delivery.CertURL,
		AuthAlgo:         delivery.AuthAlgo,
		WebhookID:        verifyWebhookID,
		Body:             delivery.Body,
	})
	if err != nil {
		if errors.Is(err, ports.ErrProviderUnavailable) {
			return nil, apperror.ErrUpstreamUnavailable(err)
		}
		return nil, apperror.ErrInvalidWebhookSignature()
	}
	if !ok {
		return nil, apperror.ErrInvalidWebhookSignature()
	}

	event := &domain.WebhookEvent{
		ID:        uuid.New(),
		EventID:   envelope.ID,
		EventType: envelope.EventType,
		Payload:   delivery.Body,
		Status:    domain.EventStatusReceived,
		CreatedAt: time.Now().UTC(),
	}
	if envelope.ResourceType != "" {
		rt := envelope.ResourceType
		event.ResourceType = &rt
	}
	var resource webhookResource
	if err := json.Unmarshal(envelope.Resource, &resource); err == nil && resource.ID != "" {
		rid := resource.ID
		event.ResourceID = &rid
	}
	if account != nil {
		accountID := account.ID
		event.AccountID = &accountID
	}

	inserted, err := s.eventRepo.Insert(ctx, event)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store webhook event: %w", err))
	}
	if !inserted {
		s.log.Info().Str("event_id", envelope.ID).Msg("duplicate webhook delivery ignored")
		return &ports.WebhookAck{Status: "ok", Duplicate: true}, nil
	}

	s.process(ctx, event)
	return &ports.WebhookAck{Status: "ok"}, nil
}

// ReplayFailed re-dispatches events stuck in FAILED, oldest first.
// Returns how many were retried.
func (s *WebhookServiceImpl) ReplayFailed(ctx context.Context, limit int) (int, error) {
	events, err := s.eventRepo.ListByStatus(ctx, domain.EventStatusFailed, limit)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("list failed events: %w", err))
	}

	for i := range events {
		s.process(ctx, &events[i])
	}
	return len(events), nil
}

// process dispatches a stored event and records the tri-state
// outcome. A handler failure leaves the event FAILED and replayable;
// it never bounces the delivery itself.
func (s *WebhookServiceImpl) process(ctx context.Context, event *domain.WebhookEvent) {
	if err := s.dispatch(ctx, event); err != nil {
		s.log.Error().Err(err).
			Str("event_id", event.EventID).
			Str("event_type", event.EventType).
			Msg("webhook handler failed")
		msg := err.Error()
		if serr := s.eventRepo.SetStatus(ctx, event.ID, domain.EventStatusFailed, &msg); serr != nil {
			s.log.Error().Err(serr).Str("event_id", event.EventID).Msg("failed to record event failure")
		}
		return
	}
	if err := s.eventRepo.SetStatus(ctx, event.ID, domain.EventStatusProcessed, nil); err != nil {
		s.log.Error().Err(err).Str("event_id", event.EventID).Msg("failed to mark event processed")
	}
}

// dispatch applies the ledger side effect for one event type. Types
// outside the capture family are stored and ignored.
func (s *WebhookServiceImpl) dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	switch event.EventType {
	case domain.EventCaptureCompleted:
		return s.handleCaptureCompleted(ctx, event)
	case domain.EventCaptureDenied:
		return s.handleCaptureStatus(ctx, event, domain.TransactionStatusDenied)
	case domain.EventCaptureRefunded:
		return s.handleCaptureStatus(ctx, event, domain.TransactionStatusRefunded)
	}
	return nil
}

// handleCaptureCompleted upserts the transaction by order id. A row
// lost at capture time is re-derived here; an existing row just has
// its status refreshed. Both paths are idempotent.
func (s *WebhookServiceImpl) handleCaptureCompleted(ctx context.Context, event *domain.WebhookEvent) error {
	resource, err := s.parseResource(event)
	if err != nil {
		return err
	}
	if event.AccountID == nil {
		return fmt.Errorf("event %s: owning account not resolved", event.EventID)
	}

	orderID := captureOrderID(resource)
	if orderID == "" {
		return fmt.Errorf("event %s: no order id in capture resource", event.EventID)
	}

	tx := &domain.Transaction{
		ID:             uuid.New(),
		AccountID:      *event.AccountID,
		OrderID:        orderID,
		Status:         domain.TransactionStatusCompleted,
		PaymentDetails: event.Payload,
		CreatedAt:      time.Now().UTC(),
	}
	if resource.Amount != nil {
		tx.Amount = resource.Amount.Value
		tx.Currency = resource.Amount.CurrencyCode
	}
	if resource.Payer != nil && resource.Payer.EmailAddress != "" {
		email := resource.Payer.EmailAddress
		tx.BuyerEmail = &email
	}
	if resource.SellerReceivableBreakdown != nil && len(resource.SellerReceivableBreakdown.PlatformFees) > 0 {
		fee := resource.SellerReceivableBreakdown.PlatformFees[0].Amount.Value
		tx.PlatformFee = &fee
	}

	if err := s.txRepo.UpsertByOrderID(ctx, tx); err != nil {
		return fmt.Errorf("upsert transaction for order %s: %w", orderID, err)
	}
	return nil
}

// handleCaptureStatus mirrors a terminal capture status onto the
// existing transaction row. No row means nothing to mirror.
func (s *WebhookServiceImpl) handleCaptureStatus(ctx context.Context, event *domain.WebhookEvent, status domain.TransactionStatus) error {
	resource, err := s.parseResource(event)
	if err != nil {
		return err
	}

	orderID := captureOrderID(resource)
	if orderID == "" {
		return fmt.Errorf("event %s: no order id in capture resource", event.EventID)
	}

	updated, err := s.txRepo.UpdateStatusByOrderID(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("update transaction status for order %s: %w", orderID, err)
	}
	if !updated {
		s.log.Warn().
			Str("event_id", event.EventID).
			Str("order_id", orderID).
			Str("status", string(status)).
			Msg("no local transaction for capture status update")
	}
	return nil
}

func (s *WebhookServiceImpl) parseResource(event *domain.WebhookEvent) (*webhookResource, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(event.Payload, &envelope); err != nil {
		return nil, fmt.Errorf("event %s: decode payload: %w", event.EventID, err)
	}
	resource := &webhookResource{}
	if len(envelope.Resource) > 0 {
		if err := json.Unmarshal(envelope.Resource, resource); err != nil {
			return nil, fmt.Errorf("event %s: decode resource: %w", event.EventID, err)
		}
	}
	return resource, nil
}

// resolveAccount matches the payload's merchant id to a local
// account. Best-effort: the event stays unowned when no match.
func (s *WebhookServiceImpl) resolveAccount(ctx context.Context, rawResource json.RawMessage) *domain.MerchantAccount {
	if len(rawResource) == 0 {
		return nil
	}
	var resource webhookResource
	if err := json.Unmarshal(rawResource, &resource); err != nil {
		return nil
	}
	if resource.Payee == nil || resource.Payee.MerchantID == "" {
		return nil
	}
	account, err := s.accountRepo.GetByMerchantID(ctx, resource.Payee.MerchantID)
	if err != nil {
		s.log.Warn().Err(err).Str("merchant_id", resource.Payee.MerchantID).Msg("account lookup failed for webhook")
		return nil
	}
	return account
}

// captureOrderID prefers the related order id, falling back to the
// capture resource's own id.
func captureOrderID(resource *webhookResource) string {
	if resource.SupplementaryData != nil && resource.SupplementaryData.RelatedIDs != nil &&
		resource.SupplementaryData.RelatedIDs.OrderID != "" {
		return resource.SupplementaryData.RelatedIDs.OrderID
	}
	return resource.ID
}
