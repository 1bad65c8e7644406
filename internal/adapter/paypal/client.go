package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paypal-multiparty/config"
	"paypal-multiparty/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnavailable marks a timeout or transport failure: the call may
// be retried. Definitive remote rejections surface as *APIError.
var ErrUnavailable = ports.ErrProviderUnavailable

// APIError is a definitive rejection from the PayPal API. The remote
// HTTP status is preserved so callers can propagate it.
type APIError struct {
	Status  int
	Name    string
	Message string
	Raw     []byte
}

var _ ports.RemoteRejection = (*APIError)(nil)

func (e *APIError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("paypal: %d %s: %s", e.Status, e.Name, e.Message)
	}
	return fmt.Sprintf("paypal: %d: %s", e.Status, e.Message)
}

// RemoteStatus returns the remote HTTP status code.
func (e *APIError) RemoteStatus() int { return e.Status }

// RemoteMessage returns the parsed remote error message.
func (e *APIError) RemoteMessage() string { return e.Message }

// TokenCache caches the OAuth access token between requests.
// Implementations return "" with a nil error on a miss.
type TokenCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
}

// tokenTTLMargin is subtracted from expires_in so a cached token is
// never presented right at its expiry edge.
const tokenTTLMargin = 60 * time.Second

// Client implements ports.PayPalGateway over the PayPal REST API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	bnCode       string
	tokens       TokenCache // nil = token fetched per call
	log          zerolog.Logger
}

var _ ports.PayPalGateway = (*Client)(nil)

// NewClient creates a PayPal REST client. tokens may be nil.
func NewClient(cfg config.PayPalConfig, tokens TokenCache, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.APIURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		bnCode:       cfg.BNCode,
		tokens:       tokens,
		log:          log,
	}
}

// accessToken returns a cached OAuth token or fetches a fresh one via
// the client-credentials grant.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.tokens != nil {
		token, err := c.tokens.Get(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("token cache read failed, fetching fresh token")
		} else if token != "" {
			return token, nil
		}
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read token response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newAPIError(resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", newAPIError(resp.StatusCode, body)
	}

	if c.tokens != nil && tok.ExpiresIn > 0 {
		ttl := time.Duration(tok.ExpiresIn)*time.Second - tokenTTLMargin
		if ttl > 0 {
			if err := c.tokens.Set(ctx, tok.AccessToken, ttl); err != nil {
				c.log.Warn().Err(err).Msg("token cache write failed")
			}
		}
	}
	return tok.AccessToken, nil
}

// do executes an authenticated API call and returns the raw response
// body. in may be nil; extra headers may be nil.
func (c *Client) do(ctx context.Context, method, path string, in any, headers map[string]string) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// classifyTransportErr maps timeouts and connection failures onto
// ErrUnavailable so callers can distinguish retryable failures.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// newAPIError parses the remote error body defensively, falling back
// to a generic message when the body carries no structured detail.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Raw: body}
	var w wireError
	if err := json.Unmarshal(body, &w); err == nil {
		apiErr.Name = w.Name
		apiErr.Message = w.Message
		if apiErr.Message == "" {
			apiErr.Message = w.ErrorDescription
		}
		if apiErr.Message == "" && len(w.Details) > 0 {
			apiErr.Message = w.Details[0].Description
			if apiErr.Name == "" {
				apiErr.Name = w.Details[0].Issue
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// --- Orders ---

// CreateOrder creates a CAPTURE-intent order carrying the platform
// fee as a payment instruction on the single purchase unit.
func (c *Client) CreateOrder(ctx context.Context, params ports.CreateOrderParams) (*ports.OrderSnapshot, error) {
	description := params.Description
	if description == "" {
		description = "Purchase"
	}
	req := orderCreateRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnitReq{{
			Amount:      wireMoney{CurrencyCode: params.Currency, Value: params.Amount},
			Description: description,
			PaymentInstruction: &paymentInstruction{
				DisbursementMode: "INSTANT",
				PlatformFees: []platformFee{{
					Amount: wireMoney{CurrencyCode: params.Currency, Value: params.PlatformFee},
				}},
			},
		}},
	}

	body, err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", req, preferRepresentation())
	if err != nil {
		return nil, err
	}
	return parseOrder(body)
}

// GetOrder fetches the current remote order state.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*ports.OrderSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(orderID), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseOrder(body)
}

// CaptureOrder finalizes an approved order into settled funds.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*ports.CaptureSnapshot, error) {
	body, err := c.do(ctx, http.MethodPost,
		"/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil, preferRepresentation())
	if err != nil {
		return nil, err
	}
	return parseCapture(body)
}

// --- Subscriptions ---

// CreateSubscription creates a remote subscription against a plan.
func (c *Client) CreateSubscription(ctx context.Context, params ports.CreateSubscriptionParams) (*ports.SubscriptionSnapshot, error) {
	req := subscriptionCreateRequest{
		PlanID:   params.PlanID,
		CustomID: params.CustomID,
		ApplicationContext: applicationContext{
			ReturnURL:  params.ReturnURL,
			CancelURL:  params.CancelURL,
			UserAction: "SUBSCRIBE_NOW",
			PaymentMethod: &paymentMethod{
				PayerSelected:  "PAYPAL",
				PayeePreferred: "IMMEDIATE_PAYMENT_REQUIRED",
			},
		},
	}

	headers := map[string]string{}
	if c.bnCode != "" {
		headers["PayPal-Partner-Attribution-Id"] = c.bnCode
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/billing/subscriptions", req, headers)
	if err != nil {
		return nil, err
	}
	return parseSubscription(body)
}

// GetSubscription fetches the current remote subscription state.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*ports.SubscriptionSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet,
		"/v1/billing/subscriptions/"+url.PathEscape(subscriptionID), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseSubscription(body)
}

// CancelSubscription cancels the remote subscription.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string, reason string) error {
	if reason == "" {
		reason = "Merchant initiated cancellation"
	}
	_, err := c.do(ctx, http.MethodPost,
		"/v1/billing/subscriptions/"+url.PathEscape(subscriptionID)+"/cancel",
		cancelSubscriptionRequest{Reason: reason}, nil)
	return err
}

// ListSubscriptions queries the remote list endpoint with the given
// query shape. The endpoint is known to silently return empty results;
// callers layer their own fallbacks on top.
func (c *Client) ListSubscriptions(ctx context.Context, shape ports.SubscriptionListShape) ([]ports.SubscriptionSnapshot, error) {
	var path string
	headers := map[string]string{}
	switch shape {
	case ports.ListAllFields:
		path = "/v1/billing/subscriptions?fields=all"
		headers["PayPal-Request-Id"] = "search-" + uuid.New().String()
	default:
		path = "/v1/billing/subscriptions?status=ACTIVE&status=SUSPENDED&status=CANCELLED&total_required=true"
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, headers)
	if err != nil {
		return nil, err
	}

	var list subscriptionListResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode subscription list: %w", err)
		}
	}

	snaps := make([]ports.SubscriptionSnapshot, 0, len(list.Subscriptions))
	for _, raw := range list.Subscriptions {
		snap, err := parseSubscription(raw)
		if err != nil {
			c.log.Warn().Err(err).Msg("skipping malformed subscription in list response")
			continue
		}
		snaps = append(snaps, *snap)
	}
	return snaps, nil
}

// --- Products & Plans ---

// CreatePlan creates the catalog product and the billing plan in one
// operation: plans cannot exist without a product.
func (c *Client) CreatePlan(ctx context.Context, params ports.PlanBillingParams) (*ports.PlanSnapshot, error) {
	productBody, err := c.do(ctx, http.MethodPost, "/v1/catalogs/products", productCreateRequest{
		Name:        params.ProductName,
		Description: params.Description,
		Type:        "SERVICE",
		Category:    "SOFTWARE",
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	var product wireProduct
	if err := json.Unmarshal(productBody, &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}

	interval := strings.ToUpper(params.Interval)
	var cycles []billingCycle
	sequence := 1
	if params.TrialPrice != "" && params.TrialDuration > 0 {
		cycles = append(cycles, billingCycle{
			Frequency:   frequency{IntervalUnit: interval, IntervalCount: 1},
			TenureType:  "TRIAL",
			Sequence:    sequence,
			TotalCycles: params.TrialDuration,
			PricingScheme: &pricingScheme{
				FixedPrice: &wireMoney{Value: params.TrialPrice, CurrencyCode: params.Currency},
			},
		})
		sequence++
	}
	cycles = append(cycles, billingCycle{
		Frequency:   frequency{IntervalUnit: interval, IntervalCount: 1},
		TenureType:  "REGULAR",
		Sequence:    sequence,
		TotalCycles: 0, // bill until cancelled
		PricingScheme: &pricingScheme{
			FixedPrice: &wireMoney{Value: params.Price, CurrencyCode: params.Currency},
		},
	})

	planBody, err := c.do(ctx, http.MethodPost, "/v1/billing/plans", planCreateRequest{
		ProductID:     product.ID,
		Name:          params.ProductName,
		Description:   params.Description,
		Status:        "ACTIVE",
		BillingCycles: cycles,
		PaymentPreferences: paymentPreferences{
			AutoBillOutstanding:     true,
			PaymentFailureThreshold: 3,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return parsePlan(planBody)
}

// GetPlan fetches a plan with its billing cycles.
func (c *Client) GetPlan(ctx context.Context, planID string) (*ports.PlanSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/billing/plans/"+url.PathEscape(planID), nil, nil)
	if err != nil {
		return nil, err
	}
	return parsePlan(body)
}

// ListPlans lists active plans. The list endpoint omits billing
// cycles, so snapshots carry no price; callers needing pricing follow
// up with GetPlan.
func (c *Client) ListPlans(ctx context.Context) ([]ports.PlanSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet,
		"/v1/billing/plans?page_size=20&page=1&total_required=true&status=ACTIVE", nil, nil)
	if err != nil {
		return nil, err
	}

	var list planListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode plan list: %w", err)
	}

	snaps := make([]ports.PlanSnapshot, 0, len(list.Plans))
	for _, p := range list.Plans {
		snaps = append(snaps, ports.PlanSnapshot{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status,
		})
	}
	return snaps, nil
}

// --- Webhooks ---

// CreateWebhook registers a webhook subscription and returns its id.
func (c *Client) CreateWebhook(ctx context.Context, notificationURL string, eventTypes []string) (string, error) {
	types := make([]webhookEventType, 0, len(eventTypes))
	for _, t := range eventTypes {
		types = append(types, webhookEventType{Name: t})
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/notifications/webhooks", webhookCreateRequest{
		URL:        notificationURL,
		EventTypes: types,
	}, nil)
	if err != nil {
		return "", err
	}
	var hook wireWebhook
	if err := json.Unmarshal(body, &hook); err != nil {
		return "", fmt.Errorf("decode webhook: %w", err)
	}
	return hook.ID, nil
}

// VerifyWebhookSignature asks PayPal to verify an inbound delivery
// against the published signing mechanism. Anything other than an
// explicit SUCCESS fails closed.
func (c *Client) VerifyWebhookSignature(ctx context.Context, params ports.WebhookVerifyParams) (bool, error) {
	body, err := c.do(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", verifySignatureRequest{
		AuthAlgo:         params.AuthAlgo,
		CertURL:          params.CertURL,
		TransmissionID:   params.TransmissionID,
		TransmissionSig:  params.TransmissionSig,
		TransmissionTime: params.TransmissionTime,
		WebhookID:        params.WebhookID,
		WebhookEvent:     json.RawMessage(params.Body),
	}, nil)
	if err != nil {
		return false, err
	}
	var result verifySignatureResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("decode verification response: %w", err)
	}
	return result.VerificationStatus == "SUCCESS", nil
}

func preferRepresentation() map[string]string {
	return map[string]string{"Prefer": "return=representation"}
}
