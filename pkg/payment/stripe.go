package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/http"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// APIError is a non-2xx answer from the Stripe API.
type APIError struct {
	HTTPStatus int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("payment: stripe: status %d", e.HTTPStatus)
	}
	return fmt.Sprintf("payment: stripe: %s", e.Message)
}

// Stripe drives the Stripe REST API with form-encoded requests. Each call is
// attempted once.
type Stripe struct {
	secret  string
	base    string
	timeout time.Duration
}

func NewStripe(secret, base string, timeout time.Duration) *Stripe {
	return &Stripe{secret: secret, base: strings.TrimRight(base, "/"), timeout: timeout}
}

type stripeCustomer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type stripeCharge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type stripeErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Stripe) post(ctx context.Context, path string, form url.Values, dest interface{}) error {
	resp, err := http.Post(s.base+path).
		WithContext(ctx).
		Bearer(s.secret).
		Timeout(s.timeout).
		Form(form).
		Send()
	if err != nil {
		return fmt.Errorf("payment: stripe %s: %w", path, err)
	}

	if !resp.OK() {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		var body stripeErrorBody
		if resp.JSON(&body) == nil {
			apiErr.Type = body.Error.Type
			apiErr.Code = body.Error.Code
			apiErr.Message = body.Error.Message
		}
		logger.WithCtx(ctx).Warn("stripe request rejected",
			"path", path, "status", resp.StatusCode, "type", apiErr.Type, "code", apiErr.Code)
		return apiErr
	}

	return resp.JSON(dest)
}

func (s *Stripe) CreatePayer(ctx context.Context, email, token string) (Payer, error) {
	if token == "" {
		return Payer{}, ErrInvalidToken
	}

	var c stripeCustomer
	err := s.post(ctx, "/v1/customers", url.Values{
		"email":  {email},
		"source": {token},
	}, &c)
	if err != nil {
		return Payer{}, err
	}
	return Payer{ID: c.ID, Email: email}, nil
}

func (s *Stripe) CreateCharge(ctx context.Context, payer Payer, amountMinor int64, currency, description string) (Charge, error) {
	var c stripeCharge
	err := s.post(ctx, "/v1/charges", url.Values{
		"customer":    {payer.ID},
		"amount":      {strconv.FormatInt(amountMinor, 10)},
		"currency":    {currency},
		"description": {description},
	}, &c)
	if err != nil {
		return Charge{}, err
	}
	return Charge{ID: c.ID, Status: c.Status, Amount: c.Amount}, nil
}
