package paypal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"paypal-multiparty/internal/core/ports"
)

// parseOrder converts a raw order payload into a typed snapshot.
func parseOrder(raw []byte) (*ports.OrderSnapshot, error) {
	var w wireOrder
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &ports.OrderSnapshot{
		ID:         w.ID,
		Status:     w.Status,
		Intent:     w.Intent,
		ApproveURL: approveLink(w.Links),
		CreateTime: parseTime(w.CreateTime),
		UpdateTime: parseTime(w.UpdateTime),
	}, nil
}

// parseCapture converts a raw capture payload into a typed snapshot.
// The first capture record of the first purchase unit carries the
// authoritative status and amount; buyer email is resolved from three
// payload locations in priority order: top-level payer, payment-source
// payer, capture-level payer.
func parseCapture(raw []byte) (*ports.CaptureSnapshot, error) {
	var w wireOrder
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}

	snap := &ports.CaptureSnapshot{
		OrderID: w.ID,
		Status:  w.Status,
		Raw:     raw,
	}

	var capture *wireCapture
	if len(w.PurchaseUnits) > 0 && w.PurchaseUnits[0].Payments != nil &&
		len(w.PurchaseUnits[0].Payments.Captures) > 0 {
		capture = &w.PurchaseUnits[0].Payments.Captures[0]
	}
	if capture != nil {
		snap.CaptureID = capture.ID
		if capture.Status != "" {
			snap.Status = capture.Status
		}
		if capture.Amount != nil {
			snap.Amount = ports.Money{Value: capture.Amount.Value, CurrencyCode: capture.Amount.CurrencyCode}
		}
		if capture.SellerReceivableBreakdown != nil && len(capture.SellerReceivableBreakdown.PlatformFees) > 0 {
			fee := capture.SellerReceivableBreakdown.PlatformFees[0].Amount
			snap.PlatformFee = &ports.Money{Value: fee.Value, CurrencyCode: fee.CurrencyCode}
		}
	}

	snap.BuyerEmail = buyerEmail(&w, capture)
	return snap, nil
}

// buyerEmail checks the three possible payer locations in priority
// order. Falling through all three yields nil, never an error.
func buyerEmail(order *wireOrder, capture *wireCapture) *string {
	if order.Payer != nil && order.Payer.EmailAddress != "" {
		return &order.Payer.EmailAddress
	}
	if order.PaymentSource != nil && order.PaymentSource.PayPal != nil &&
		order.PaymentSource.PayPal.EmailAddress != "" {
		return &order.PaymentSource.PayPal.EmailAddress
	}
	if capture != nil && capture.Payer != nil && capture.Payer.EmailAddress != "" {
		return &capture.Payer.EmailAddress
	}
	return nil
}

// parseSubscription converts a raw subscription payload into a typed
// snapshot. Last-payment and next-billing fields are optional at every
// nesting level and default to nil.
func parseSubscription(raw []byte) (*ports.SubscriptionSnapshot, error) {
	var w wireSubscription
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}

	snap := &ports.SubscriptionSnapshot{
		ID:         w.ID,
		PlanID:     w.PlanID,
		Status:     w.Status,
		CustomID:   w.CustomID,
		ApproveURL: approveLink(w.Links),
		StartTime:  parseTime(w.StartTime),
		CreateTime: parseTime(w.CreateTime),
		Raw:        raw,
	}

	if w.Subscriber != nil && w.Subscriber.EmailAddress != "" {
		snap.SubscriberEmail = &w.Subscriber.EmailAddress
	}
	if w.BillingInfo != nil {
		snap.NextBillingTime = parseTime(w.BillingInfo.NextBillingTime)
		if lp := w.BillingInfo.LastPayment; lp != nil {
			snap.LastPaymentTime = parseTime(lp.Time)
			if lp.Amount != nil {
				snap.LastPaymentAmount = &ports.Money{
					Value:        lp.Amount.Value,
					CurrencyCode: lp.Amount.CurrencyCode,
				}
			}
		}
	}
	return snap, nil
}

// parsePlan converts a raw plan payload into a typed snapshot,
// resolving price and interval from the REGULAR billing cycle (or the
// first cycle when no REGULAR one exists).
func parsePlan(raw []byte) (*ports.PlanSnapshot, error) {
	var w wirePlan
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	snap := &ports.PlanSnapshot{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Status:      w.Status,
		Raw:         raw,
	}

	if len(w.BillingCycles) > 0 {
		cycle := w.BillingCycles[0]
		for _, c := range w.BillingCycles {
			if c.TenureType == "REGULAR" {
				cycle = c
				break
			}
		}
		if cycle.PricingScheme != nil && cycle.PricingScheme.FixedPrice != nil {
			price := cycle.PricingScheme.FixedPrice.Value
			snap.Price = &price
		}
		if cycle.Frequency.IntervalUnit != "" {
			interval := strings.ToLower(cycle.Frequency.IntervalUnit)
			snap.Interval = &interval
		}
	}
	return snap, nil
}

func approveLink(links []wireLink) string {
	for _, l := range links {
		if l.Rel == "approve" || l.Rel == "approval_url" {
			return l.Href
		}
	}
	return ""
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
