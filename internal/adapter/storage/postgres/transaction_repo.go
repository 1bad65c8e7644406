package postgres

import (
	"context"
	"errors"
	"fmt"

	"paypal-multiparty/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, account_id, order_id, amount, currency, status, platform_fee, buyer_email, payment_details, created_at`

// Create inserts a new transaction. order_id carries a unique
// constraint; inserting a second row for the same order fails.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, order_id, amount, currency, status, platform_fee, buyer_email, payment_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.AccountID, t.OrderID, t.Amount, t.Currency,
		t.Status, t.PlatformFee, t.BuyerEmail, t.PaymentDetails,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByOrderID fetches a transaction by its remote order id.
func (r *TransactionRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE order_id = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&t.ID, &t.AccountID, &t.OrderID, &t.Amount, &t.Currency,
		&t.Status, &t.PlatformFee, &t.BuyerEmail, &t.PaymentDetails,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by order_id: %w", err)
	}
	return t, nil
}

// UpsertByOrderID inserts the transaction or, when a row for the
// order already exists, refreshes its mirrored status and details.
// The webhook flow uses this to re-derive rows lost at capture time.
func (r *TransactionRepo) UpsertByOrderID(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, order_id, amount, currency, status, platform_fee, buyer_email, payment_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (order_id) DO UPDATE
		SET status = EXCLUDED.status,
		    platform_fee = COALESCE(EXCLUDED.platform_fee, transactions.platform_fee),
		    buyer_email = COALESCE(EXCLUDED.buyer_email, transactions.buyer_email),
		    payment_details = EXCLUDED.payment_details`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.AccountID, t.OrderID, t.Amount, t.Currency,
		t.Status, t.PlatformFee, t.BuyerEmail, t.PaymentDetails,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert transaction by order_id: %w", err)
	}
	return nil
}

// UpdateStatusByOrderID sets the mirrored status of the transaction
// for an order. Returns false when no row for the order exists.
func (r *TransactionRepo) UpdateStatusByOrderID(ctx context.Context, orderID string, status domain.TransactionStatus) (bool, error) {
	query := `UPDATE transactions SET status=$1 WHERE order_id=$2`
	tag, err := r.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByAccount returns an account's transactions newest-first,
// capped at limit.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.AccountID, &t.OrderID, &t.Amount, &t.Currency,
			&t.Status, &t.PlatformFee, &t.BuyerEmail, &t.PaymentDetails,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
