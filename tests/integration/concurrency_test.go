package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentWebhookDeliveries fires the same PayPal notification
// 50 times in parallel. PayPal redelivers aggressively, so exactly one
// delivery may be processed; the rest must be acknowledged as
// duplicates with no side effects.
func TestConcurrentWebhookDeliveries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := signTestToken(t, "org_1")
	app.connectAccount(t, token, "MERCHANT123")

	resp, body := app.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"amount":       "100.00",
		"platform_fee": "5.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["data"].(map[string]interface{})["id"].(string)

	resp, _ = app.do(t, http.MethodPost, "/api/v1/orders/"+orderID+"/capture", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	eventBody := captureEventBody("WH-EVT-RACE", "PAYMENT.CAPTURE.REFUNDED", orderID, "MERCHANT123")

	concurrency := 50
	var wg sync.WaitGroup
	var processed, duplicates, failures atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/webhooks/paypal", bytes.NewReader(eventBody))
			if err != nil {
				failures.Add(1)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			// Redeliveries reuse the event id but carry fresh
			// transmission headers.
			req.Header.Set("Paypal-Transmission-Id", "tid-race-"+time.Now().Format("150405.000000000"))
			req.Header.Set("Paypal-Transmission-Time", time.Now().UTC().Format(time.RFC3339))
			req.Header.Set("Paypal-Transmission-Sig", "valid-sig")
			req.Header.Set("Paypal-Cert-Url", "https://api.sandbox.paypal.com/cert.pem")
			req.Header.Set("Paypal-Auth-Algo", "SHA256withRSA")

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				failures.Add(1)
				return
			}
			defer r.Body.Close()

			raw, _ := io.ReadAll(r.Body)
			if r.StatusCode != http.StatusOK {
				failures.Add(1)
				return
			}
			var ack map[string]interface{}
			if err := json.Unmarshal(raw, &ack); err != nil {
				failures.Add(1)
				return
			}
			data := ack["data"].(map[string]interface{})
			if data["duplicate"] == true {
				duplicates.Add(1)
			} else {
				processed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(0), failures.Load())
	assert.Equal(t, int64(1), processed.Load(), "exactly one delivery may be processed")
	assert.Equal(t, int64(concurrency-1), duplicates.Load())

	// The ledger reflects the refund exactly once
	resp, body = app.do(t, http.MethodGet, "/api/v1/history/transactions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "REFUNDED", rows[0].(map[string]interface{})["status"])
}

// TestConcurrentCaptures races repeated capture calls for one order.
// The remote side is idempotent here; the invariant under test is the
// ledger: the order_id uniqueness must leave exactly one row no
// matter how many captures overlap.
func TestConcurrentCaptures(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := signTestToken(t, "org_1")
	app.connectAccount(t, token, "MERCHANT123")

	resp, body := app.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"amount":       "100.00",
		"platform_fee": "5.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["data"].(map[string]interface{})["id"].(string)

	concurrency := 10
	var wg sync.WaitGroup
	var succeeded atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, _ := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/orders/"+orderID+"/capture", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)
			if r.StatusCode == http.StatusOK {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	// Captures succeed remotely either way; the ledger keeps one row.
	assert.Greater(t, succeeded.Load(), int64(0))

	resp, body = app.do(t, http.MethodGet, "/api/v1/history/transactions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := body["data"].([]interface{})
	assert.Len(t, rows, 1)
}

// TestConcurrentOrderCreation creates orders from many goroutines and
// checks every order gets a distinct remote id.
func TestConcurrentOrderCreation(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := signTestToken(t, "org_1")
	app.connectAccount(t, token, "MERCHANT123")

	concurrency := 20
	var wg sync.WaitGroup
	ids := make(chan string, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			payload, _ := json.Marshal(map[string]interface{}{
				"amount":       "10.00",
				"platform_fee": "0.50",
			})
			req, _ := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/orders", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()

			raw, _ := io.ReadAll(r.Body)
			if r.StatusCode != http.StatusCreated {
				return
			}
			var resp map[string]interface{}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return
			}
			ids <- resp["data"].(map[string]interface{})["id"].(string)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "order id %s issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, concurrency)
}
