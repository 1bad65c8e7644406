package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	gateway     ports.PayPalGateway
	currency    string
	log         zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl. currency is the
// platform default used when a request carries none.
func NewOrderService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	gateway ports.PayPalGateway,
	currency string,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		gateway:     gateway,
		currency:    currency,
		log:         log,
	}
}

// CreateOrder creates a remote order carrying the platform-fee split.
// The ledger is untouched: a created-but-unpaid order is not a
// transaction. The provider enforces fee <= amount remotely.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, orgID string, params ports.CreateOrderParams) (*ports.OrderSnapshot, error) {
	if _, err := s.requireAccount(ctx, orgID); err != nil {
		return nil, err
	}

	if params.Currency == "" {
		params.Currency = s.currency
	}

	snap, err := s.gateway.CreateOrder(ctx, params)
	if err != nil {
		return nil, mapGatewayError(fmt.Errorf("create order: %w", err))
	}

	s.log.Info().
		Str("org_id", orgID).
		Str("order_id", snap.ID).
		Str("amount", params.Amount).
		Str("platform_fee", params.PlatformFee).
		Msg("order created")

	return snap, nil
}

// CaptureOrder finalizes the order and records exactly one
// transaction row. A ledger-write failure is logged, never returned:
// the payment already succeeded remotely and the webhook flow
// re-derives the row later.
func (s *OrderServiceImpl) CaptureOrder(ctx context.Context, orgID string, orderID string) (*ports.CaptureSnapshot, error) {
	account, err := s.requireAccount(ctx, orgID)
	if err != nil {
		return nil, err
	}

	snap, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ports.ErrProviderUnavailable) {
			return nil, apperror.ErrUpstreamUnavailable(err)
		}
		var rejection ports.RemoteRejection
		if errors.As(err, &rejection) {
			return nil, apperror.ErrCaptureFailed(rejection.RemoteStatus(), err)
		}
		return nil, apperror.InternalError(fmt.Errorf("capture order: %w", err))
	}

	tx := &domain.Transaction{
		ID:             uuid.New(),
		AccountID:      account.ID,
		OrderID:        snap.OrderID,
		Amount:         snap.Amount.Value,
		Currency:       snap.Amount.CurrencyCode,
		Status:         captureStatus(snap.Status),
		BuyerEmail:     snap.BuyerEmail,
		PaymentDetails: snap.Raw,
		CreatedAt:      time.Now().UTC(),
	}
	if snap.PlatformFee != nil {
		tx.PlatformFee = &snap.PlatformFee.Value
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		s.log.Error().Err(err).
			Str("org_id", orgID).
			Str("order_id", snap.OrderID).
			Msg("capture succeeded remotely but transaction record failed")
	}

	return snap, nil
}

// VerifyOrder looks up the remote order state. No ledger write.
func (s *OrderServiceImpl) VerifyOrder(ctx context.Context, orgID string, orderID string) (*ports.OrderSnapshot, error) {
	if _, err := s.requireAccount(ctx, orgID); err != nil {
		return nil, err
	}

	snap, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		var rejection ports.RemoteRejection
		if errors.As(err, &rejection) && rejection.RemoteStatus() == 404 {
			return nil, apperror.ErrOrderNotFound()
		}
		return nil, mapGatewayError(fmt.Errorf("get order: %w", err))
	}
	return snap, nil
}

func (s *OrderServiceImpl) requireAccount(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	account, err := s.accountRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if account == nil || !account.IsActive() {
		return nil, apperror.ErrAccountNotFound()
	}
	return account, nil
}

// captureStatus maps a remote capture status onto the ledger enum,
// keeping unknown values as-is.
func captureStatus(status string) domain.TransactionStatus {
	switch status {
	case "COMPLETED":
		return domain.TransactionStatusCompleted
	case "DECLINED", "DENIED":
		return domain.TransactionStatusDenied
	case "APPROVED":
		return domain.TransactionStatusApproved
	case "CREATED":
		return domain.TransactionStatusCreated
	}
	return domain.TransactionStatus(status)
}
