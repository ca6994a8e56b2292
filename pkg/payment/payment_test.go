package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
	sfhttp "github.com/shashiranjanraj/storefront/pkg/http"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

const stripeBase = "https://stripe.test"

func installTransport(t *testing.T, stubs ...testkit.Stub) *testkit.MockTransport {
	t.Helper()
	mt := testkit.NewMockTransport(stubs...)
	sfhttp.DefaultClient.Transport = mt
	t.Cleanup(sfhttp.ResetTransport)
	return mt
}

func TestStripe_CustomerThenCharge(t *testing.T) {
	mt := installTransport(t,
		testkit.Stub{Method: http.MethodPost, URL: stripeBase + "/v1/customers", Body: `{"id":"cus_123","email":"ann@x.io"}`},
		testkit.Stub{Method: http.MethodPost, URL: stripeBase + "/v1/charges", Body: `{"id":"ch_1","status":"succeeded","amount":3000}`},
	)
	gw := NewStripe("sk_test", stripeBase+"/", time.Second)

	payer, err := gw.CreatePayer(context.Background(), "ann@x.io", "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", payer.ID)

	charge, err := gw.CreateCharge(context.Background(), payer, 3000, "usd", "Mug,Shirt")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, charge.Status)
	assert.EqualValues(t, 3000, charge.Amount)

	mt.AssertAllCalled(t)
	calls := mt.Calls()
	require.Len(t, calls, 2)

	assert.Equal(t, "Bearer sk_test", calls[0].Header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", calls[0].Header.Get("Content-Type"))
	assert.Equal(t, "ann@x.io", calls[0].Form().Get("email"))
	assert.Equal(t, "tok_visa", calls[0].Form().Get("source"))

	f := calls[1].Form()
	assert.Equal(t, "cus_123", f.Get("customer"))
	assert.Equal(t, "3000", f.Get("amount"))
	assert.Equal(t, "usd", f.Get("currency"))
	assert.Equal(t, "Mug,Shirt", f.Get("description"))
}

func TestStripe_CardDeclined(t *testing.T) {
	installTransport(t,
		testkit.Stub{URL: stripeBase + "/v1/charges", Status: http.StatusPaymentRequired,
			Body: `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`},
	)
	gw := NewStripe("sk_test", stripeBase, time.Second)

	_, err := gw.CreateCharge(context.Background(), Payer{ID: "cus_1"}, 100, "usd", "Mug")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "card_declined", apiErr.Code)
	assert.Equal(t, "Your card was declined.", apiErr.Message)
	assert.Equal(t, StatusFailed, FailureStatus(err))
}

func TestStripe_TransportErrorIsSingleAttempt(t *testing.T) {
	mt := installTransport(t,
		testkit.Stub{URL: stripeBase + "/v1/customers", Err: errors.New("connection reset")},
	)
	gw := NewStripe("sk_test", stripeBase, time.Second)

	_, err := gw.CreatePayer(context.Background(), "ann@x.io", "tok_visa")
	require.Error(t, err)
	assert.Equal(t, "error", FailureStatus(err))
	assert.Len(t, mt.Calls(), 1)
}

func TestStripe_EmptyTokenNeverCallsOut(t *testing.T) {
	mt := installTransport(t)
	gw := NewStripe("sk_test", stripeBase, time.Second)

	_, err := gw.CreatePayer(context.Background(), "ann@x.io", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, mt.Calls())
}

func TestSandbox(t *testing.T) {
	gw := NewSandbox()
	ctx := context.Background()

	payer, err := gw.CreatePayer(ctx, "ann@x.io", "tok_visa")
	require.NoError(t, err)
	charge, err := gw.CreateCharge(ctx, payer, 3000, "usd", "Mug")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, charge.Status)

	declined, err := gw.CreatePayer(ctx, "ann@x.io", DeclineToken)
	require.NoError(t, err)
	charge, err = gw.CreateCharge(ctx, declined, 3000, "usd", "Mug")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, charge.Status)

	_, err = gw.CreatePayer(ctx, "ann@x.io", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNew_SelectsDriver(t *testing.T) {
	config.Set("PAYMENT_DRIVER", "sandbox")
	t.Cleanup(func() { config.Set("PAYMENT_DRIVER", "") })

	gw, err := New()
	require.NoError(t, err)
	assert.IsType(t, &Sandbox{}, gw)

	config.Set("PAYMENT_DRIVER", "paypal")
	_, err = New()
	assert.Error(t, err)
}
