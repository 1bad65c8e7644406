package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"paypal-multiparty/config"
	"paypal-multiparty/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenCache struct {
	mu    sync.Mutex
	token string
	ttl   time.Duration
	sets  int
}

func (m *memTokenCache) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokenCache) Set(ctx context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.ttl = ttl
	m.sets++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenCache) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.PayPalConfig{
		APIURL:       srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		BNCode:       "TESTBNCODE",
		Timeout:      5 * time.Second,
	}, tokens, zerolog.Nop())
	return client, srv
}

// tokenHandler responds to the oauth endpoint and delegates everything
// else, counting token fetches.
func tokenHandler(fetches *int, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			*fetches++
			user, pass, ok := r.BasicAuth()
			if !ok || user != "client-id" || pass != "client-secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "test-token",
				"expires_in":   3600,
			})
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func TestClient_TokenCached(t *testing.T) {
	fetches := 0
	cache := &memTokenCache{}
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "ORDER-1", "status": "CREATED"})
	}), cache)

	_, err := client.GetOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	_, err = client.GetOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, 1, fetches, "second call should reuse the cached token")
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 3600*time.Second-tokenTTLMargin, cache.ttl)
}

func TestClient_CreateOrder(t *testing.T) {
	fetches := 0
	var captured orderCreateRequest
	var prefer string
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/checkout/orders", r.URL.Path)
		prefer = r.Header.Get("Prefer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "5O190127TN364715T",
			"status": "CREATED",
			"links": []map[string]string{
				{"href": "https://paypal.test/approve", "rel": "approve"},
			},
		})
	}), nil)

	snap, err := client.CreateOrder(context.Background(), ports.CreateOrderParams{
		Amount:      "100.00",
		PlatformFee: "10.00",
		Currency:    "USD",
		Description: "Widgets",
	})
	require.NoError(t, err)

	assert.Equal(t, "5O190127TN364715T", snap.ID)
	assert.Equal(t, "https://paypal.test/approve", snap.ApproveURL)
	assert.Equal(t, "return=representation", prefer)

	assert.Equal(t, "CAPTURE", captured.Intent)
	require.Len(t, captured.PurchaseUnits, 1)
	pu := captured.PurchaseUnits[0]
	assert.Equal(t, "100.00", pu.Amount.Value)
	assert.Equal(t, "USD", pu.Amount.CurrencyCode)
	require.NotNil(t, pu.PaymentInstruction)
	require.Len(t, pu.PaymentInstruction.PlatformFees, 1)
	assert.Equal(t, "10.00", pu.PaymentInstruction.PlatformFees[0].Amount.Value)
}

func TestClient_CaptureOrder(t *testing.T) {
	fetches := 0
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/ORDER-1/capture", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "ORDER-1",
			"status": "COMPLETED",
			"purchase_units": []map[string]any{{
				"payments": map[string]any{
					"captures": []map[string]any{{
						"id":     "CAP-1",
						"status": "COMPLETED",
						"amount": map[string]string{"currency_code": "USD", "value": "50.00"},
					}},
				},
			}},
		})
	}), nil)

	snap, err := client.CaptureOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "CAP-1", snap.CaptureID)
	assert.Equal(t, "COMPLETED", snap.Status)
	assert.Equal(t, "50.00", snap.Amount.Value)
}

func TestClient_CreateSubscription_SendsAttributionHeader(t *testing.T) {
	fetches := 0
	var bn string
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/billing/subscriptions", r.URL.Path)
		bn = r.Header.Get("PayPal-Partner-Attribution-Id")
		var req subscriptionCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "P-1", req.PlanID)
		assert.Equal(t, "org-42", req.CustomID)
		assert.Equal(t, "SUBSCRIBE_NOW", req.ApplicationContext.UserAction)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "I-NEW",
			"status": "APPROVAL_PENDING",
			"links": []map[string]string{
				{"href": "https://paypal.test/subscribe", "rel": "approve"},
			},
		})
	}), nil)

	snap, err := client.CreateSubscription(context.Background(), ports.CreateSubscriptionParams{
		PlanID:    "P-1",
		CustomID:  "org-42",
		ReturnURL: "https://app.test/return",
		CancelURL: "https://app.test/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, "I-NEW", snap.ID)
	assert.Equal(t, "TESTBNCODE", bn)
}

func TestClient_CancelSubscription(t *testing.T) {
	fetches := 0
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/billing/subscriptions/I-1/cancel", r.URL.Path)
		var req cancelSubscriptionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Reason)
		w.WriteHeader(http.StatusNoContent)
	}), nil)

	err := client.CancelSubscription(context.Background(), "I-1", "")
	require.NoError(t, err)
}

func TestClient_VerifyWebhookSignature(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"success", "SUCCESS", true},
		{"failure", "FAILURE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetches := 0
			client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/v1/notifications/verify-webhook-signature", r.URL.Path)
				var req verifySignatureRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "WH-1", req.WebhookID)
				assert.JSONEq(t, `{"id":"WH-EVT"}`, string(req.WebhookEvent))
				json.NewEncoder(w).Encode(map[string]string{"verification_status": tt.status})
			}), nil)

			ok, err := client.VerifyWebhookSignature(context.Background(), ports.WebhookVerifyParams{
				TransmissionID:   "t-id",
				TransmissionTime: "2026-01-01T00:00:00Z",
				TransmissionSig:  "sig",
				CertURL:          "https://api.paypal.com/cert",
				AuthAlgo:         "SHA256withRSA",
				WebhookID:        "WH-1",
				Body:             []byte(`{"id":"WH-EVT"}`),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClient_CreatePlan_CreatesProductFirst(t *testing.T) {
	fetches := 0
	var planReq planCreateRequest
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/catalogs/products":
			json.NewEncoder(w).Encode(map[string]string{"id": "PROD-1"})
		case "/v1/billing/plans":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&planReq))
			json.NewEncoder(w).Encode(map[string]any{
				"id": "P-NEW", "name": "Pro", "status": "ACTIVE",
				"billing_cycles": []map[string]any{{
					"tenure_type":    "REGULAR",
					"frequency":      map[string]any{"interval_unit": "MONTH", "interval_count": 1},
					"pricing_scheme": map[string]any{"fixed_price": map[string]string{"currency_code": "USD", "value": "25.00"}},
				}},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), nil)

	snap, err := client.CreatePlan(context.Background(), ports.PlanBillingParams{
		ProductName:   "Pro",
		Description:   "Pro tier",
		Price:         "25.00",
		Currency:      "USD",
		Interval:      "month",
		TrialPrice:    "0.00",
		TrialDuration: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "P-NEW", snap.ID)
	require.NotNil(t, snap.Price)
	assert.Equal(t, "25.00", *snap.Price)

	assert.Equal(t, "PROD-1", planReq.ProductID)
	require.Len(t, planReq.BillingCycles, 2)
	assert.Equal(t, "TRIAL", planReq.BillingCycles[0].TenureType)
	assert.Equal(t, "REGULAR", planReq.BillingCycles[1].TenureType)
	assert.Equal(t, 0, planReq.BillingCycles[1].TotalCycles)
	assert.Equal(t, "MONTH", planReq.BillingCycles[1].Frequency.IntervalUnit)
}

func TestClient_RemoteRejection(t *testing.T) {
	fetches := 0
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"name":    "UNPROCESSABLE_ENTITY",
			"message": "The requested action could not be performed.",
			"details": []map[string]string{{"issue": "ORDER_NOT_APPROVED"}},
		})
	}), nil)

	_, err := client.CaptureOrder(context.Background(), "ORDER-1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", apiErr.Name)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestClient_RemoteRejection_UnstructuredBody(t *testing.T) {
	fetches := 0
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}), nil)

	_, err := client.GetOrder(context.Background(), "ORDER-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	fetches := 0
	client, srv := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}), nil)
	_ = srv
	client.httpClient.Timeout = 20 * time.Millisecond

	_, err := client.GetOrder(context.Background(), "ORDER-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	client := NewClient(config.PayPalConfig{
		APIURL:       "http://127.0.0.1:1",
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      time.Second,
	}, nil, zerolog.Nop())

	_, err := client.GetOrder(context.Background(), "ORDER-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ListSubscriptions_SkipsMalformedEntries(t *testing.T) {
	fetches := 0
	client, _ := newTestClient(t, tokenHandler(&fetches, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"subscriptions": [{"id": "I-1", "status": "ACTIVE"}, "not-an-object", {"id": "I-2", "status": "CANCELLED"}]}`))
	}), nil)

	snaps, err := client.ListSubscriptions(context.Background(), ports.ListByStatus)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "I-1", snaps[0].ID)
	assert.Equal(t, "I-2", snaps[1].ID)
}
