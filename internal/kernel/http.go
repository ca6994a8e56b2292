// Package kernel assembles the storefront's HTTP handler: services over the
// database, the controllers and routes, and the global middleware stack.
package kernel

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/payment"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// Deps are the collaborators the kernel is built from.
type Deps struct {
	DB       *gorm.DB
	Gateway  payment.Gateway
	Sessions cache.Store
}

// HTTPKernel owns the router and the global middleware.
type HTTPKernel struct {
	router *router.Router
}

var listenOnce sync.Once

// NewHTTPKernel wires services, controllers and routes over deps.
func NewHTTPKernel(deps Deps) (*HTTPKernel, error) {
	sessions, err := session.NewManager(deps.Sessions, config.SecretKey(), session.DefaultOptions())
	if err != nil {
		return nil, err
	}

	users := repositories.NewUserRepository(deps.DB)
	products := repositories.NewProductRepository(deps.DB)
	cart := repositories.NewCartRepository(deps.DB)
	orders := repositories.NewOrderRepository(deps.DB)

	authSvc := services.NewAuthService(users)
	checkoutSvc := services.NewCheckoutService(deps.DB, cart, orders, deps.Gateway, config.PaymentCurrency())

	listenOnce.Do(func() { event.Listen(services.OrderPlaced, logOrder) })

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics
	//  2. Request ID
	//  3. Recovery
	//  4. Logger
	//  5. Session        load the cookie session, save it before the first byte
	//  6. Authenticate   session user or bearer token → *auth.Identity
	//  7. CORS
	//  8. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(sessions.Middleware())
	r.Use(middleware.Authenticate(authSvc.Resolve))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	routes.Register(r, routes.Controllers{
		Home:     controllers.NewHomeController(services.NewCatalogService(products, config.CatalogCacheTTL())),
		Auth:     controllers.NewAuthController(authSvc),
		Cart:     controllers.NewCartController(services.NewCartService(products, cart)),
		Checkout: controllers.NewCheckoutController(checkoutSvc),
		User:     controllers.NewUserController(checkoutSvc),
		Health:   controllers.NewHealthController(deps.DB),
	})

	if d, ok := storage.Default().(*storage.LocalDisk); ok {
		routes.Files(r, config.StorageURL(), d.Root())
	}

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }

func logOrder(ctx context.Context, payload interface{}) {
	receipt, ok := payload.(services.Receipt)
	if !ok {
		return
	}
	logger.WithCtx(ctx).Info("order placed",
		"user_id", receipt.UserID,
		"charge_id", receipt.ChargeID,
		"amount", receipt.AmountCharged,
		"items", len(receipt.Items),
	)
}
