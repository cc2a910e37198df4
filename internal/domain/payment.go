package domain

import "context"

// SaleRequest is a single authorization attempt against the payment
// gateway. Amount is a fixed-point decimal string with exactly two
// fractional digits ("36.25"); Nonce is the single-use payment-method
// token minted by the client-side payment form.
type SaleRequest struct {
	Amount string
	Nonce  string
}

// PaymentResult is the gateway's verdict, stored verbatim on the Order.
// Success=false with a nil error means the gateway answered and
// declined; the distinction from a transport failure matters because a
// decline carries the gateway's own message to the caller.
type PaymentResult struct {
	Success     bool            `bson:"success" json:"success"`
	Message     string          `bson:"message,omitempty" json:"message,omitempty"`
	Transaction *TransactionRef `bson:"transaction,omitempty" json:"transaction,omitempty"`
}

// TransactionRef is the gateway-side record of a captured transaction.
type TransactionRef struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
	Amount string `bson:"amount" json:"amount"`
}

// PaymentGateway is the external service boundary that authorizes
// monetary transactions. Sale resolves exactly once per call: either a
// non-nil result (success or decline) or a transport-level error, never
// both. Implementations must not retry; a resubmitted sale is a second
// charge.
type PaymentGateway interface {
	Sale(ctx context.Context, req SaleRequest) (*PaymentResult, error)
	// GenerateClientToken mints a client token for the browser drop-in.
	GenerateClientToken(ctx context.Context) (string, error)
}
