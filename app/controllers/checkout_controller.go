package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

// ChargeInput carries the card token from the checkout widget.
type ChargeInput struct {
	Token string `form:"stripeToken" json:"stripe_token"`
}

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// priceParam reads {price}. Values the processor cannot be asked to charge are
// treated like any other unknown page.
func priceParam(c *ctx.Context) (int, bool) {
	p, ok := c.ParamInt("price")
	if !ok || int64(p) > services.MaxPrice {
		return 0, false
	}
	return p, true
}

// Show renders the payment form for {price}.
func (cc *CheckoutController) Show(c *ctx.Context) {
	price, ok := priceParam(c)
	if !ok {
		c.NotFound()
		return
	}
	if c.Identity() == nil {
		fail(c, services.ErrUnauthenticated)
		return
	}
	c.Success(page(c, view{"price": price, "key": config.StripePublicKey()}))
}

// Charge bills {price} to the submitted card for the caller's cart.
func (cc *CheckoutController) Charge(c *ctx.Context) {
	price, ok := priceParam(c)
	if !ok {
		c.NotFound()
		return
	}
	if c.Identity() == nil {
		fail(c, services.ErrUnauthenticated)
		return
	}

	var in ChargeInput
	if !c.Bind(&in) {
		return
	}

	receipt, err := cc.checkout.Charge(c.Context(), c.Identity(), price, in.Token)
	if pe, ok := services.IsPaymentError(err); ok {
		c.ErrorWith(http.StatusPaymentRequired, "Payment was not successful",
			map[string]string{"processor": pe.Status})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(page(c, view{"amount": receipt.AmountCharged, "receipt": resource.One(receiptResource, receipt)}))
}
