package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DeclineToken makes the sandbox report a failed charge.
const DeclineToken = "tok_chargeDeclined"

// Sandbox is an offline processor for local development and tests. Every
// charge succeeds unless the payer's token is DeclineToken.
type Sandbox struct{}

func NewSandbox() *Sandbox { return &Sandbox{} }

func (Sandbox) CreatePayer(_ context.Context, email, token string) (Payer, error) {
	if token == "" {
		return Payer{}, ErrInvalidToken
	}
	return Payer{ID: "cus_" + uuid.NewString(), Email: email, token: token}, nil
}

func (Sandbox) CreateCharge(_ context.Context, payer Payer, amountMinor int64, _, _ string) (Charge, error) {
	if amountMinor < 0 {
		return Charge{}, errors.New("payment: negative amount")
	}
	status := StatusSucceeded
	if payer.token == DeclineToken {
		status = StatusFailed
	}
	return Charge{ID: "ch_" + uuid.NewString(), Status: status, Amount: amountMinor}, nil
}
