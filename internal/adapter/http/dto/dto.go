package dto

// ConnectAccountRequest is the request body for linking a PayPal
// merchant account to the organization.
type ConnectAccountRequest struct {
	MerchantID   string  `json:"merchant_id" binding:"required,safe_id,max=64"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	BusinessName *string `json:"business_name,omitempty" binding:"omitempty,max=200"`
	IsLive       bool    `json:"is_live"`
}

// RegisterWebhookRequest is the request body for creating the PayPal
// webhook subscription for the connected account.
type RegisterWebhookRequest struct {
	NotificationURL string `json:"notification_url" binding:"required,safe_url"`
}

// CreateOrderRequest is the request body for order creation. Amounts
// are decimal strings exactly as PayPal expects them.
type CreateOrderRequest struct {
	Amount      string `json:"amount" binding:"required,max=20"`
	PlatformFee string `json:"platform_fee" binding:"required,max=20"`
	Currency    string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Description string `json:"description,omitempty" binding:"omitempty,max=127"`
}

// OrderResponse is the response body for order create/verify.
type OrderResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approve_url,omitempty"`
}

// CaptureResponse is the response body for a finalized capture.
type CaptureResponse struct {
	OrderID     string  `json:"order_id"`
	CaptureID   string  `json:"capture_id"`
	Status      string  `json:"status"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	PlatformFee *string `json:"platform_fee,omitempty"`
	BuyerEmail  *string `json:"buyer_email,omitempty"`
}

// CreateSubscriptionRequest is the request body for subscription
// creation.
type CreateSubscriptionRequest struct {
	PlanID string `json:"plan_id" binding:"required,safe_id,max=64"`
}

// SubscriptionResponse is the response body for subscription create.
type SubscriptionResponse struct {
	ID         string `json:"id"`
	PlanID     string `json:"plan_id,omitempty"`
	Status     string `json:"status"`
	ApproveURL string `json:"approve_url,omitempty"`
}

// ValidateSubscriptionRequest is the request body for the
// post-approval validation callback.
type ValidateSubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required,safe_id,max=64"`
}

// CreatePlanRequest is the request body for billing plan creation.
type CreatePlanRequest struct {
	Name          string `json:"name" binding:"required,max=127"`
	Description   string `json:"description,omitempty" binding:"omitempty,max=256"`
	Price         string `json:"price" binding:"required,max=20"`
	Interval      string `json:"interval" binding:"required,oneof=DAY WEEK MONTH YEAR"`
	TrialPrice    string `json:"trial_price,omitempty" binding:"omitempty,max=20"`
	TrialDuration int    `json:"trial_duration,omitempty" binding:"omitempty,min=1,max=365"`
}

// PlanResponse is the response body for plan reads.
type PlanResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	Price       *string `json:"price,omitempty"`
	Interval    *string `json:"interval,omitempty"`
}

// AccountResponse is the sanitized account view. Credentials never
// appear here.
type AccountResponse struct {
	ID           string  `json:"id"`
	OrgID        string  `json:"org_id"`
	MerchantID   string  `json:"merchant_id"`
	Email        *string `json:"email,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	Status       string  `json:"status"`
	IsLive       bool    `json:"is_live"`
	WebhookID    *string `json:"webhook_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ConnectionStatusResponse answers "is this tenant connected".
type ConnectionStatusResponse struct {
	Connected  bool   `json:"connected"`
	MerchantID string `json:"merchant_id,omitempty"`
}

// ReplayResponse reports how many failed webhook events were retried.
type ReplayResponse struct {
	Replayed int `json:"replayed"`
}
