package paypal

import "encoding/json"

// Wire-format structs for the PayPal REST API. Every nested field is
// optional on the wire; parsing into ports snapshots happens in
// parse.go, nowhere else.

type wireMoney struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type wireLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

type wirePayer struct {
	EmailAddress string `json:"email_address,omitempty"`
}

// --- Orders ---

type orderCreateRequest struct {
	Intent             string              `json:"intent"`
	PurchaseUnits      []purchaseUnitReq   `json:"purchase_units"`
	ApplicationContext *applicationContext `json:"application_context,omitempty"`
}

type purchaseUnitReq struct {
	Amount             wireMoney           `json:"amount"`
	Description        string              `json:"description,omitempty"`
	PaymentInstruction *paymentInstruction `json:"payment_instruction,omitempty"`
}

type paymentInstruction struct {
	DisbursementMode string        `json:"disbursement_mode,omitempty"`
	PlatformFees     []platformFee `json:"platform_fees,omitempty"`
}

type platformFee struct {
	Amount wireMoney `json:"amount"`
}

type applicationContext struct {
	ReturnURL     string         `json:"return_url,omitempty"`
	CancelURL     string         `json:"cancel_url,omitempty"`
	UserAction    string         `json:"user_action,omitempty"`
	PaymentMethod *paymentMethod `json:"payment_method,omitempty"`
}

type paymentMethod struct {
	PayerSelected  string `json:"payer_selected,omitempty"`
	PayeePreferred string `json:"payee_preferred,omitempty"`
}

type wireOrder struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	Intent        string           `json:"intent,omitempty"`
	CreateTime    string           `json:"create_time,omitempty"`
	UpdateTime    string           `json:"update_time,omitempty"`
	Links         []wireLink       `json:"links,omitempty"`
	Payer         *wirePayer       `json:"payer,omitempty"`
	PaymentSource *paymentSource   `json:"payment_source,omitempty"`
	PurchaseUnits []purchaseUnitRe `json:"purchase_units,omitempty"`
}

type paymentSource struct {
	PayPal *wirePayer `json:"paypal,omitempty"`
}

// purchaseUnitRe is the response-side purchase unit.
type purchaseUnitRe struct {
	Description string        `json:"description,omitempty"`
	Items       []wireItem    `json:"items,omitempty"`
	Payments    *wirePayments `json:"payments,omitempty"`
}

type wireItem struct {
	Name string `json:"name,omitempty"`
}

type wirePayments struct {
	Captures []wireCapture `json:"captures,omitempty"`
}

type wireCapture struct {
	ID                        string                     `json:"id"`
	Status                    string                     `json:"status"`
	Amount                    *wireMoney                 `json:"amount,omitempty"`
	Payer                     *wirePayer                 `json:"payer,omitempty"`
	SellerReceivableBreakdown *sellerReceivableBreakdown `json:"seller_receivable_breakdown,omitempty"`
}

type sellerReceivableBreakdown struct {
	PlatformFees []platformFee `json:"platform_fees,omitempty"`
}

// --- Subscriptions ---

type subscriptionCreateRequest struct {
	PlanID             string             `json:"plan_id"`
	CustomID           string             `json:"custom_id,omitempty"`
	ApplicationContext applicationContext `json:"application_context"`
}

type wireSubscription struct {
	ID          string           `json:"id"`
	PlanID      string           `json:"plan_id,omitempty"`
	Status      string           `json:"status,omitempty"`
	CustomID    string           `json:"custom_id,omitempty"`
	StartTime   string           `json:"start_time,omitempty"`
	CreateTime  string           `json:"create_time,omitempty"`
	Subscriber  *wireSubscriber  `json:"subscriber,omitempty"`
	BillingInfo *wireBillingInfo `json:"billing_info,omitempty"`
	Links       []wireLink       `json:"links,omitempty"`
}

type wireSubscriber struct {
	EmailAddress string `json:"email_address,omitempty"`
}

type wireBillingInfo struct {
	NextBillingTime string           `json:"next_billing_time,omitempty"`
	LastPayment     *wireLastPayment `json:"last_payment,omitempty"`
}

type wireLastPayment struct {
	Time   string     `json:"time,omitempty"`
	Amount *wireMoney `json:"amount,omitempty"`
}

type subscriptionListResponse struct {
	Subscriptions []json.RawMessage `json:"subscriptions,omitempty"`
}

type cancelSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// --- Products & Plans ---

type productCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Category    string `json:"category,omitempty"`
}

type wireProduct struct {
	ID string `json:"id"`
}

type planCreateRequest struct {
	ProductID          string             `json:"product_id"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	Status             string             `json:"status"`
	BillingCycles      []billingCycle     `json:"billing_cycles"`
	PaymentPreferences paymentPreferences `json:"payment_preferences"`
}

type billingCycle struct {
	Frequency     frequency      `json:"frequency"`
	TenureType    string         `json:"tenure_type"`
	Sequence      int            `json:"sequence"`
	TotalCycles   int            `json:"total_cycles"`
	PricingScheme *pricingScheme `json:"pricing_scheme,omitempty"`
}

type frequency struct {
	IntervalUnit  string `json:"interval_unit"`
	IntervalCount int    `json:"interval_count"`
}

type pricingScheme struct {
	FixedPrice *wireMoney `json:"fixed_price,omitempty"`
}

type paymentPreferences struct {
	AutoBillOutstanding     bool `json:"auto_bill_outstanding"`
	PaymentFailureThreshold int  `json:"payment_failure_threshold"`
}

type wirePlan struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Description   string         `json:"description,omitempty"`
	Status        string         `json:"status,omitempty"`
	BillingCycles []billingCycle `json:"billing_cycles,omitempty"`
}

type planListResponse struct {
	Plans []wirePlan `json:"plans,omitempty"`
}

// --- Webhooks ---

type webhookCreateRequest struct {
	URL        string             `json:"url"`
	EventTypes []webhookEventType `json:"event_types"`
}

type webhookEventType struct {
	Name string `json:"name"`
}

type wireWebhook struct {
	ID string `json:"id"`
}

type verifySignatureRequest struct {
	AuthAlgo         string          `json:"auth_algo"`
	CertURL          string          `json:"cert_url"`
	TransmissionID   string          `json:"transmission_id"`
	TransmissionSig  string          `json:"transmission_sig"`
	TransmissionTime string          `json:"transmission_time"`
	WebhookID        string          `json:"webhook_id"`
	WebhookEvent     json.RawMessage `json:"webhook_event"`
}

type verifySignatureResponse struct {
	VerificationStatus string `json:"verification_status"`
}

// --- OAuth ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// --- Errors ---

type wireError struct {
	Name             string `json:"name,omitempty"`
	Message          string `json:"message,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	Details          []struct {
		Issue       string `json:"issue,omitempty"`
		Description string `json:"description,omitempty"`
	} `json:"details,omitempty"`
}
