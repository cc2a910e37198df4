package gateway

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	braintree "github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var _ domain.PaymentGateway = (*braintreeGateway)(nil)

type braintreeGateway struct {
	bt  *braintree.Braintree
	log *logrus.Logger
}

// NewBraintreeGateway builds the production PaymentGateway over the
// Braintree SDK. env is "sandbox" or "production".
func NewBraintreeGateway(env, merchantID, publicKey, privateKey string, logger *logrus.Logger) (domain.PaymentGateway, error) {
	var environment braintree.Environment
	switch env {
	case "sandbox":
		environment = braintree.Sandbox
	case "production":
		environment = braintree.Production
	default:
		return nil, fmt.Errorf("unknown braintree environment: %q", env)
	}

	return &braintreeGateway{
		bt:  braintree.New(environment, merchantID, publicKey, privateKey),
		log: logger,
	}, nil
}

// Sale submits a single sale transaction with submit-for-settlement.
// A gateway rejection or processor decline comes back as a non-nil
// result with Success=false and the gateway's message; only transport
// failures return an error. Never retried here.
func (g *braintreeGateway) Sale(ctx context.Context, req domain.SaleRequest) (*domain.PaymentResult, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid sale amount %q: %w", req.Amount, err)
	}

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount.Shift(2).IntPart(), 2),
		PaymentMethodNonce: req.Nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		var apiErr *braintree.BraintreeError
		if errors.As(err, &apiErr) {
			g.log.Warnf("Braintree declined sale of %s: %v", req.Amount, apiErr)
			return &domain.PaymentResult{
				Success: false,
				Message: apiErr.Error(),
			}, nil
		}
		g.log.Errorf("Braintree sale of %s failed: %v", req.Amount, err)
		return nil, err
	}

	g.log.Infof("Braintree sale captured: transaction %s (%s)", tx.Id, tx.Status)
	return &domain.PaymentResult{
		Success: true,
		Transaction: &domain.TransactionRef{
			ID:     tx.Id,
			Status: string(tx.Status),
			Amount: tx.Amount.String(),
		},
	}, nil
}

func (g *braintreeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		g.log.Errorf("Failed to generate Braintree client token: %v", err)
		return "", fmt.Errorf("could not generate client token: %w", err)
	}
	return token, nil
}
