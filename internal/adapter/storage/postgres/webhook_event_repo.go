package postgres

import (
	"context"
	"errors"
	"fmt"

	"paypal-multiparty/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookEventRepo implements ports.WebhookEventRepository.
type WebhookEventRepo struct {
	pool Pool
}

// NewWebhookEventRepo creates a new WebhookEventRepo.
func NewWebhookEventRepo(pool Pool) *WebhookEventRepo {
	return &WebhookEventRepo{pool: pool}
}

const webhookEventColumns = `id, account_id, event_id, event_type, resource_type, resource_id, payload, status, last_error, created_at`

// Insert stores a new event. The unique constraint on event_id
// arbitrates concurrent deliveries of the same notification: the
// loser's insert affects zero rows and Insert returns false.
func (r *WebhookEventRepo) Insert(ctx context.Context, e *domain.WebhookEvent) (bool, error) {
	query := `INSERT INTO webhook_events (id, account_id, event_id, event_type, resource_type, resource_id, payload, status, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		e.ID, e.AccountID, e.EventID, e.EventType, e.ResourceType,
		e.ResourceID, e.Payload, e.Status, e.LastError, e.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert webhook event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByEventID fetches a stored event by its remote event id.
func (r *WebhookEventRepo) GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events WHERE event_id = $1`

	e := &domain.WebhookEvent{}
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&e.ID, &e.AccountID, &e.EventID, &e.EventType, &e.ResourceType,
		&e.ResourceID, &e.Payload, &e.Status, &e.LastError, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook event by event_id: %w", err)
	}
	return e, nil
}

// SetStatus records the dispatch outcome of a stored event.
// last_error is cleared when nil.
func (r *WebhookEventRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.EventProcessingStatus, lastError *string) error {
	query := `UPDATE webhook_events SET status=$1, last_error=$2 WHERE id=$3`
	_, err := r.pool.Exec(ctx, query, status, lastError, id)
	if err != nil {
		return fmt.Errorf("update webhook event status: %w", err)
	}
	return nil
}

// ListByStatus returns stored events in a given processing state,
// oldest-first so replays preserve arrival order.
func (r *WebhookEventRepo) ListByStatus(ctx context.Context, status domain.EventProcessingStatus, limit int) ([]domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var list []domain.WebhookEvent
	for rows.Next() {
		var e domain.WebhookEvent
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.EventID, &e.EventType, &e.ResourceType,
			&e.ResourceID, &e.Payload, &e.Status, &e.LastError, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
