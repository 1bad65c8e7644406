package service

import (
	"errors"

	"paypal-multiparty/internal/core/ports"
	"paypal-multiparty/pkg/apperror"
)

// mapGatewayError converts a PayPal gateway error into the
// application taxonomy: transport failures and timeouts are
// retryable 503s, definitive rejections keep the remote status.
func mapGatewayError(err error) *apperror.AppError {
	if errors.Is(err, ports.ErrProviderUnavailable) {
		return apperror.ErrUpstreamUnavailable(err)
	}
	var rejection ports.RemoteRejection
	if errors.As(err, &rejection) {
		return apperror.ErrUpstreamRejected(rejection.RemoteStatus(), rejection.RemoteMessage(), err)
	}
	return apperror.InternalError(err)
}
