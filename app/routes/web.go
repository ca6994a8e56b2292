// Package routes declares the storefront's URL table.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Controllers is everything the route table dispatches to.
type Controllers struct {
	Home     *controllers.HomeController
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	User     *controllers.UserController
	Health   *controllers.HealthController
}

// Register adds the storefront routes to r. Path parameters only match
// digits, so "/abc" or "/cart/x" are plain 404s.
func Register(r *router.Router, c Controllers) {
	r.Get("/", "home", ctx.Wrap(c.Home.Index))

	r.Get("/login", "login", ctx.Wrap(c.Auth.ShowLogin))
	r.Post("/login", "login", ctx.Wrap(c.Auth.Login))
	r.Get("/signup", "signup", ctx.Wrap(c.Auth.ShowSignUp))
	r.Post("/signup", "signup", ctx.Wrap(c.Auth.SignUp))
	r.Get("/logout", "logout", ctx.Wrap(c.Auth.Logout))
	r.Get("/user", "user", ctx.Wrap(c.User.Profile))

	r.Get("/cart", "cart.show", ctx.Wrap(c.Cart.Show))
	r.Get("/cart/{productID:[0-9]+}", "cart.add", ctx.Wrap(c.Cart.Add))
	r.Get("/{productID:[0-9]+}", "cart.remove", ctx.Wrap(c.Cart.Remove))

	r.Get("/checkout/{price:[0-9]+}", "checkout", ctx.Wrap(c.Checkout.Show))
	r.Post("/charge/{price:[0-9]+}", "charge", ctx.Wrap(c.Checkout.Charge))

	r.Get("/healthz", "health", ctx.Wrap(c.Health.Check))
	r.Get("/metrics", "", metrics.Handler())
}

// Files serves a local disk's root under prefix.
func Files(r *router.Router, prefix, root string) {
	r.Mount(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(root))))
}
