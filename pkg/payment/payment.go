// Package payment talks to the card processor. The checkout flow only sees
// the Gateway interface; drivers are picked by PAYMENT_DRIVER.
//
//	gw, err := payment.New()
//	payer, err := gw.CreatePayer(ctx, "ann@x.io", token)
//	charge, err := gw.CreateCharge(ctx, payer, 3000, "usd", "Mug,Shirt")
//	if charge.Status != payment.StatusSucceeded { ... }
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/storefront/config"
)

// Charge statuses reported by processors.
const (
	StatusSucceeded = "succeeded"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// ErrInvalidToken is returned when no card token was supplied.
var ErrInvalidToken = errors.New("payment: missing card token")

// Payer is the processor-side customer a card token is attached to.
type Payer struct {
	ID    string
	Email string

	token string
}

// Charge is the outcome of a charge request.
type Charge struct {
	ID     string
	Status string
	Amount int64
}

// Gateway is implemented by each processor driver.
type Gateway interface {
	CreatePayer(ctx context.Context, email, token string) (Payer, error)
	CreateCharge(ctx context.Context, payer Payer, amountMinor int64, currency, description string) (Charge, error)
}

// New builds the gateway selected by configuration.
func New() (Gateway, error) {
	switch d := config.PaymentDriver(); d {
	case "stripe":
		key := config.StripeSecretKey()
		if key == "" {
			return nil, fmt.Errorf("payment: stripe driver needs STRIPE_SECRET_KEY")
		}
		return NewStripe(key, config.StripeAPIBase(), config.PaymentTimeout()), nil
	case "sandbox":
		return NewSandbox(), nil
	default:
		return nil, fmt.Errorf("payment: unknown PAYMENT_DRIVER %q", d)
	}
}

// FailureStatus names a failed gateway call for the caller: "failed" when
// the processor refused the card, "error" for everything else.
func FailureStatus(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Type == "card_error" {
		return StatusFailed
	}
	return "error"
}
