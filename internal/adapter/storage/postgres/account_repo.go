package postgres

import (
	"context"
	"errors"
	"fmt"

	"paypal-multiparty/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, org_id, merchant_id, email, business_name, status, is_live, webhook_id, credentials, created_at, updated_at`

// Create inserts a new merchant account link.
func (r *AccountRepo) Create(ctx context.Context, a *domain.MerchantAccount) error {
	query := `INSERT INTO merchant_accounts (id, org_id, merchant_id, email, business_name, status, is_live, webhook_id, credentials, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.OrgID, a.MerchantID, a.Email, a.BusinessName,
		a.Status, a.IsLive, a.WebhookID, a.Credentials,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant account: %w", err)
	}
	return nil
}

// GetByOrgID fetches the account link owned by an organization.
func (r *AccountRepo) GetByOrgID(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM merchant_accounts WHERE org_id = $1`

	a := &domain.MerchantAccount{}
	err := r.pool.QueryRow(ctx, query, orgID).Scan(
		&a.ID, &a.OrgID, &a.MerchantID, &a.Email, &a.BusinessName,
		&a.Status, &a.IsLive, &a.WebhookID, &a.Credentials,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by org_id: %w", err)
	}
	return a, nil
}

// GetByMerchantID fetches an account link by its PayPal merchant id.
func (r *AccountRepo) GetByMerchantID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM merchant_accounts WHERE merchant_id = $1`

	a := &domain.MerchantAccount{}
	err := r.pool.QueryRow(ctx, query, merchantID).Scan(
		&a.ID, &a.OrgID, &a.MerchantID, &a.Email, &a.BusinessName,
		&a.Status, &a.IsLive, &a.WebhookID, &a.Credentials,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by merchant_id: %w", err)
	}
	return a, nil
}

// Update updates a merchant account record.
func (r *AccountRepo) Update(ctx context.Context, a *domain.MerchantAccount) error {
	query := `UPDATE merchant_accounts
		SET merchant_id=$1, email=$2, business_name=$3, status=$4, is_live=$5, webhook_id=$6, credentials=$7, updated_at=NOW()
		WHERE id=$8`
	_, err := r.pool.Exec(ctx, query,
		a.MerchantID, a.Email, a.BusinessName, a.Status, a.IsLive,
		a.WebhookID, a.Credentials, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update merchant account: %w", err)
	}
	return nil
}

// UpdateStatus flips only the status of an account link. Disconnect
// uses this; the row itself stays.
func (r *AccountRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error {
	query := `UPDATE merchant_accounts SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	return nil
}
