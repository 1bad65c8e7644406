package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication & Authorization (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrMissingOrganization() *AppError {
	return New("AUTH_002", "Unauthorized, missing organization", http.StatusUnauthorized)
}

func ErrForbidden(message string) *AppError {
	return New("AUTH_003", message, http.StatusForbidden)
}

// ---- Merchant Accounts (ACC) ----

func ErrAccountNotFound() *AppError {
	return New("ACC_001", "No PayPal account found for this organization", http.StatusNotFound)
}

func ErrAccountInactive() *AppError {
	return New("ACC_002", "PayPal account is not active", http.StatusNotFound)
}

// ---- Orders & Captures (ORD) ----

func ErrOrderNotFound() *AppError {
	return New("ORD_001", "Order not found", http.StatusNotFound)
}

// ErrCaptureFailed preserves the remote status code when PayPal
// refuses to capture an order.
func ErrCaptureFailed(remoteStatus int, err error) *AppError {
	status := remoteStatus
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	return Wrap("ORD_002", "Failed to capture PayPal order", status, err)
}

// ---- Subscriptions (SUB) ----

func ErrSubscriptionNotFound() *AppError {
	return New("SUB_001", "Subscription not found", http.StatusNotFound)
}

func ErrSubscriptionNotActive(status string) *AppError {
	return New("SUB_002", fmt.Sprintf("Subscription is not active. Status: %s", status), http.StatusBadRequest)
}

// ---- Webhooks (WHK) ----

func ErrInvalidWebhookSignature() *AppError {
	return New("WHK_001", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Upstream (UPS) ----

// ErrUpstreamUnavailable marks a timeout or transport failure talking
// to PayPal. Retryable, unlike a definitive remote rejection.
func ErrUpstreamUnavailable(err error) *AppError {
	return Wrap("UPS_001", "Payment provider unavailable", http.StatusServiceUnavailable, err)
}

// ErrUpstreamRejected preserves the remote status code when PayPal
// definitively rejects a call.
func ErrUpstreamRejected(remoteStatus int, message string, err error) *AppError {
	status := remoteStatus
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	if message == "" {
		message = "Payment provider rejected the request"
	}
	return Wrap("UPS_002", message, status, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a 400 validation error with the given message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
