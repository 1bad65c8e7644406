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

// webhookEventTypes are the notification types the platform
// subscribes to when registering a webhook for an account.
var webhookEventTypes = []string{
	domain.EventCaptureCompleted,
	domain.EventCaptureDenied,
	domain.EventCaptureRefunded,
}

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	accountRepo ports.AccountRepository
	gateway     ports.PayPalGateway
	log         zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(accountRepo ports.AccountRepository, gateway ports.PayPalGateway, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		gateway:     gateway,
		log:         log,
	}
}

// Connect links a PayPal merchant identity to the organization. A
// tenant holds at most one account row: reconnecting updates it in
// place and reactivates it.
func (s *AccountServiceImpl) Connect(ctx context.Context, params ports.ConnectAccountParams) (*domain.MerchantAccount, error) {
	if params.MerchantID == "" {
		return nil, apperror.Validation("merchant_id is required")
	}

	existing, err := s.accountRepo.GetByOrgID(ctx, params.OrgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}

	if existing != nil {
		existing.MerchantID = params.MerchantID
		existing.Email = params.Email
		existing.BusinessName = params.BusinessName
		existing.IsLive = params.IsLive
		existing.Status = domain.AccountStatusActive
		if err := s.accountRepo.Update(ctx, existing); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("update account: %w", err))
		}
		s.log.Info().Str("org_id", params.OrgID).Str("merchant_id", params.MerchantID).Msg("account reconnected")
		return existing, nil
	}

	now := time.Now().UTC()
	account := &domain.MerchantAccount{
		ID:           uuid.New(),
		OrgID:        params.OrgID,
		MerchantID:   params.MerchantID,
		Email:        params.Email,
		BusinessName: params.BusinessName,
		Status:       domain.AccountStatusActive,
		IsLive:       params.IsLive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create account: %w", err))
	}

	s.log.Info().Str("org_id", params.OrgID).Str("merchant_id", params.MerchantID).Msg("account connected")
	return account, nil
}

// Get returns the tenant's account, or nil when it is absent or not
// active. Callers treat nil as "not connected", not as an error.
func (s *AccountServiceImpl) Get(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil || !account.IsActive() {
		return nil, nil
	}
	return account, nil
}

// Details returns the account with the credential blob stripped.
func (s *AccountServiceImpl) Details(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}
	account.Credentials = nil
	return account, nil
}

// Disconnect soft-deletes the account link: the status flips to
// inactive and the row stays for the audit trail.
func (s *AccountServiceImpl) Disconnect(ctx context.Context, orgID string) error {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}

	if err := s.accountRepo.UpdateStatus(ctx, account.ID, domain.AccountStatusInactive); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("deactivate account: %w", err))
	}

	s.log.Info().Str("org_id", orgID).Msg("account disconnected")
	return nil
}

// RegisterWebhook creates the PayPal webhook subscription for the
// capture event family and stores its id on the account.
func (s *AccountServiceImpl) RegisterWebhook(ctx context.Context, orgID string, notificationURL string) (string, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil || !account.IsActive() {
		return "", apperror.ErrAccountNotFound()
	}

	webhookID, err := s.gateway.CreateWebhook(ctx, notificationURL, webhookEventTypes)
	if err != nil {
		return "", mapGatewayError(fmt.Errorf("create webhook: %w", err))
	}

	account.WebhookID = &webhookID
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return "", apperror.ErrDatabaseError(fmt.Errorf("store webhook id: %w", err))
	}

	s.log.Info().Str("org_id", orgID).Str("webhook_id", webhookID).Msg("webhook registered")
	return webhookID, nil
}
