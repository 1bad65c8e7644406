package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchantAccount_IsActive(t *testing.T) {
	a := &MerchantAccount{Status: AccountStatusActive}
	assert.True(t, a.IsActive())

	a.Status = AccountStatusPending
	assert.False(t, a.IsActive())

	a.Status = AccountStatusInactive
	assert.False(t, a.IsActive())
}

func TestTransaction_IsTerminal(t *testing.T) {
	cases := map[TransactionStatus]bool{
		TransactionStatusCreated:   false,
		TransactionStatusApproved:  false,
		TransactionStatusCompleted: true,
		TransactionStatusVoided:    true,
		TransactionStatusDenied:    true,
		TransactionStatusRefunded:  true,
	}
	for status, want := range cases {
		tx := &Transaction{Status: status}
		assert.Equal(t, want, tx.IsTerminal(), "status %s", status)
	}
}

func TestSubscriptionStatus_Valid(t *testing.T) {
	assert.True(t, SubscriptionStatusActive.Valid())
	assert.True(t, SubscriptionStatusApproved.Valid())
	assert.False(t, SubscriptionStatusApprovalPending.Valid())
	assert.False(t, SubscriptionStatusSuspended.Valid())
	assert.False(t, SubscriptionStatusCancelled.Valid())
	assert.False(t, SubscriptionStatusExpired.Valid())
}
