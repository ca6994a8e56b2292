package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type UserController struct {
	checkout *services.CheckoutService
}

func NewUserController(checkout *services.CheckoutService) *UserController {
	return &UserController{checkout: checkout}
}

// Profile shows the logged-in user and what they have bought.
func (u *UserController) Profile(c *ctx.Context) {
	orders, err := u.checkout.OrderedProducts(c.Context(), c.Identity())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(page(c, view{"orders": resource.Collection(productResource, orders)}))
}
