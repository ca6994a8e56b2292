package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Add puts {productID} in the cart and shows the cart.
func (cc *CartController) Add(c *ctx.Context) {
	productID, ok := c.ParamUint("productID")
	if !ok {
		c.NotFound()
		return
	}

	snap, err := cc.cart.Add(c.Context(), c.Identity(), productID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(page(c, cartView(snap)))
}

// Remove takes {productID} out of the cart and returns to the catalogue.
func (cc *CartController) Remove(c *ctx.Context) {
	productID, ok := c.ParamUint("productID")
	if !ok {
		c.NotFound()
		return
	}

	if err := cc.cart.Remove(c.Context(), c.Identity(), productID); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (cc *CartController) Show(c *ctx.Context) {
	snap, err := cc.cart.Get(c.Context(), c.Identity())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(page(c, cartView(snap)))
}

func cartView(snap services.CartSnapshot) view {
	return view{"items": resource.Collection(productResource, snap.Items), "price": snap.Total}
}
