package domain

import "errors"

var (
	// ErrInvalidPaymentData covers a missing nonce or an empty cart,
	// detected before the gateway is ever called.
	ErrInvalidPaymentData = errors.New("invalid payment data")

	ErrMissingOrderID = errors.New("order ID is required")
	ErrMissingStatus  = errors.New("status is required")
	ErrInvalidStatus  = errors.New("invalid status value")

	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

// GatewayDeclined is returned when the gateway answers but refuses the
// transaction. Message is the gateway's own wording, surfaced verbatim.
type GatewayDeclined struct {
	Message string
}

func (e *GatewayDeclined) Error() string {
	return e.Message
}

// GatewayError is a transport-level failure of the gateway call itself.
// Message carries the underlying error's wording verbatim, so the
// caller sees exactly what the gateway transport reported.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}
