package postgres

import (
	"context"
	"testing"
	"time"

	"paypal-multiparty/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount() *domain.MerchantAccount {
	return &domain.MerchantAccount{
		ID:           uuid.New(),
		OrgID:        "org_" + uuid.New().String()[:8],
		MerchantID:   "MERCH123ABC",
		Email:        strPtr("merchant@example.com"),
		BusinessName: strPtr("Example Shop"),
		Status:       domain.AccountStatusActive,
		IsLive:       false,
		WebhookID:    strPtr("WH-1"),
		Credentials:  []byte(`{"client_id":"x"}`),
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func strPtr(s string) *string { return &s }

func accountColumnNames() []string {
	return []string{"id", "org_id", "merchant_id", "email", "business_name", "status", "is_live", "webhook_id", "credentials", "created_at", "updated_at"}
}

func accountRow(a *domain.MerchantAccount) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumnNames()).AddRow(
		a.ID, a.OrgID, a.MerchantID, a.Email, a.BusinessName,
		a.Status, a.IsLive, a.WebhookID, a.Credentials,
		a.CreatedAt, a.UpdatedAt,
	)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectExec("INSERT INTO merchant_accounts").
		WithArgs(a.ID, a.OrgID, a.MerchantID, a.Email, a.BusinessName,
			a.Status, a.IsLive, a.WebhookID, a.Credentials,
			a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByOrgID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT (.+) FROM merchant_accounts WHERE org_id").
		WithArgs(a.OrgID).
		WillReturnRows(accountRow(a))

	got, err := repo.GetByOrgID(context.Background(), a.OrgID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.MerchantID, got.MerchantID)
	assert.Equal(t, a.Status, got.Status)
}

func TestAccountRepo_GetByOrgID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)

	mock.ExpectQuery("SELECT (.+) FROM merchant_accounts WHERE org_id").
		WithArgs("org_missing").
		WillReturnRows(pgxmock.NewRows(accountColumnNames()))

	got, err := repo.GetByOrgID(context.Background(), "org_missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAccountRepo_GetByMerchantID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT (.+) FROM merchant_accounts WHERE merchant_id").
		WithArgs(a.MerchantID).
		WillReturnRows(accountRow(a))

	got, err := repo.GetByMerchantID(context.Background(), a.MerchantID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.OrgID, got.OrgID)
}

func TestAccountRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE merchant_accounts SET status").
		WithArgs(domain.AccountStatusInactive, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateStatus(context.Background(), id, domain.AccountStatusInactive)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
