package paypal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	raw := []byte(`{
		"id": "5O190127TN364715T",
		"status": "CREATED",
		"intent": "CAPTURE",
		"create_time": "2026-01-15T10:00:00Z",
		"links": [
			{"href": "https://api.paypal.com/v2/checkout/orders/5O190127TN364715T", "rel": "self"},
			{"href": "https://www.paypal.com/checkoutnow?token=5O190127TN364715T", "rel": "approve"}
		]
	}`)

	snap, err := parseOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", snap.ID)
	assert.Equal(t, "CREATED", snap.Status)
	assert.Equal(t, "https://www.paypal.com/checkoutnow?token=5O190127TN364715T", snap.ApproveURL)
	require.NotNil(t, snap.CreateTime)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), snap.CreateTime.UTC())
	assert.Nil(t, snap.UpdateTime)
}

func TestParseOrder_LegacyApprovalLink(t *testing.T) {
	raw := []byte(`{"id": "X", "status": "CREATED", "links": [{"href": "https://example.com/approve", "rel": "approval_url"}]}`)

	snap, err := parseOrder(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/approve", snap.ApproveURL)
}

func TestParseCapture(t *testing.T) {
	raw := []byte(`{
		"id": "5O190127TN364715T",
		"status": "COMPLETED",
		"payer": {"email_address": "buyer@example.com"},
		"purchase_units": [{
			"payments": {"captures": [{
				"id": "3C679366HH908993F",
				"status": "COMPLETED",
				"amount": {"currency_code": "USD", "value": "100.00"},
				"seller_receivable_breakdown": {
					"platform_fees": [{"amount": {"currency_code": "USD", "value": "10.00"}}]
				}
			}]}
		}]
	}`)

	snap, err := parseCapture(raw)
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", snap.OrderID)
	assert.Equal(t, "3C679366HH908993F", snap.CaptureID)
	assert.Equal(t, "COMPLETED", snap.Status)
	assert.Equal(t, "100.00", snap.Amount.Value)
	assert.Equal(t, "USD", snap.Amount.CurrencyCode)
	require.NotNil(t, snap.PlatformFee)
	assert.Equal(t, "10.00", snap.PlatformFee.Value)
	require.NotNil(t, snap.BuyerEmail)
	assert.Equal(t, "buyer@example.com", *snap.BuyerEmail)
}

func TestParseCapture_CaptureStatusOverridesOrderStatus(t *testing.T) {
	raw := []byte(`{
		"id": "X",
		"status": "COMPLETED",
		"purchase_units": [{
			"payments": {"captures": [{"id": "C1", "status": "DECLINED"}]}
		}]
	}`)

	snap, err := parseCapture(raw)
	require.NoError(t, err)
	assert.Equal(t, "DECLINED", snap.Status)
	assert.Nil(t, snap.PlatformFee)
	assert.Nil(t, snap.BuyerEmail)
}

func TestParseCapture_NoCaptures(t *testing.T) {
	raw := []byte(`{"id": "X", "status": "APPROVED", "purchase_units": [{}]}`)

	snap, err := parseCapture(raw)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", snap.Status)
	assert.Empty(t, snap.CaptureID)
}

func TestBuyerEmail_Priority(t *testing.T) {
	tests := []struct {
		name    string
		order   *wireOrder
		capture *wireCapture
		want    string
	}{
		{
			name: "top-level payer wins",
			order: &wireOrder{
				Payer:         &wirePayer{EmailAddress: "payer@a.com"},
				PaymentSource: &paymentSource{PayPal: &wirePayer{EmailAddress: "source@b.com"}},
			},
			capture: &wireCapture{Payer: &wirePayer{EmailAddress: "capture@c.com"}},
			want:    "payer@a.com",
		},
		{
			name: "payment source second",
			order: &wireOrder{
				PaymentSource: &paymentSource{PayPal: &wirePayer{EmailAddress: "source@b.com"}},
			},
			capture: &wireCapture{Payer: &wirePayer{EmailAddress: "capture@c.com"}},
			want:    "source@b.com",
		},
		{
			name:    "capture payer last",
			order:   &wireOrder{},
			capture: &wireCapture{Payer: &wirePayer{EmailAddress: "capture@c.com"}},
			want:    "capture@c.com",
		},
		{
			name:    "all absent",
			order:   &wireOrder{},
			capture: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buyerEmail(tt.order, tt.capture)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseSubscription(t *testing.T) {
	raw := []byte(`{
		"id": "I-BW452GLLEP1G",
		"plan_id": "P-5ML4271244454362WXNWU5NQ",
		"status": "ACTIVE",
		"custom_id": "org-42",
		"start_time": "2026-02-01T08:00:00Z",
		"subscriber": {"email_address": "sub@example.com"},
		"billing_info": {
			"next_billing_time": "2026-03-01T08:00:00Z",
			"last_payment": {
				"time": "2026-02-01T08:05:00Z",
				"amount": {"currency_code": "USD", "value": "25.00"}
			}
		},
		"links": [{"href": "https://www.paypal.com/webapps/billing/subscriptions?ba_token=BA-1", "rel": "approve"}]
	}`)

	snap, err := parseSubscription(raw)
	require.NoError(t, err)
	assert.Equal(t, "I-BW452GLLEP1G", snap.ID)
	assert.Equal(t, "P-5ML4271244454362WXNWU5NQ", snap.PlanID)
	assert.Equal(t, "ACTIVE", snap.Status)
	assert.Equal(t, "org-42", snap.CustomID)
	require.NotNil(t, snap.SubscriberEmail)
	assert.Equal(t, "sub@example.com", *snap.SubscriberEmail)
	require.NotNil(t, snap.NextBillingTime)
	require.NotNil(t, snap.LastPaymentTime)
	require.NotNil(t, snap.LastPaymentAmount)
	assert.Equal(t, "25.00", snap.LastPaymentAmount.Value)
	assert.NotEmpty(t, snap.ApproveURL)
}

func TestParseSubscription_MinimalPayload(t *testing.T) {
	raw := []byte(`{"id": "I-MIN", "status": "APPROVAL_PENDING"}`)

	snap, err := parseSubscription(raw)
	require.NoError(t, err)
	assert.Equal(t, "I-MIN", snap.ID)
	assert.Nil(t, snap.SubscriberEmail)
	assert.Nil(t, snap.NextBillingTime)
	assert.Nil(t, snap.LastPaymentAmount)
}

func TestParsePlan(t *testing.T) {
	raw := []byte(`{
		"id": "P-1",
		"name": "Pro",
		"description": "Pro tier",
		"status": "ACTIVE",
		"billing_cycles": [
			{
				"tenure_type": "TRIAL",
				"frequency": {"interval_unit": "MONTH", "interval_count": 1},
				"pricing_scheme": {"fixed_price": {"currency_code": "USD", "value": "0.00"}}
			},
			{
				"tenure_type": "REGULAR",
				"frequency": {"interval_unit": "MONTH", "interval_count": 1},
				"pricing_scheme": {"fixed_price": {"currency_code": "USD", "value": "25.00"}}
			}
		]
	}`)

	snap, err := parsePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, "P-1", snap.ID)
	require.NotNil(t, snap.Price)
	assert.Equal(t, "25.00", *snap.Price)
	require.NotNil(t, snap.Interval)
	assert.Equal(t, "month", *snap.Interval)
}

func TestParsePlan_NoCycles(t *testing.T) {
	raw := []byte(`{"id": "P-2", "name": "Bare", "status": "ACTIVE"}`)

	snap, err := parsePlan(raw)
	require.NoError(t, err)
	assert.Nil(t, snap.Price)
	assert.Nil(t, snap.Interval)
}

func TestParseTime(t *testing.T) {
	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("not-a-time"))
	got := parseTime("2026-01-02T03:04:05Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.UTC())
}
