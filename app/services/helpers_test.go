package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/internal/testutil"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/payment"
)

func testRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

// store bundles the services over one seeded database.
type store struct {
	db       *gorm.DB
	auth     *services.AuthService
	cart     *services.CartService
	checkout *services.CheckoutService
}

func newStore(t *testing.T, gw payment.Gateway) *store {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedProducts(t, db)

	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	cart := repositories.NewCartRepository(db)
	orders := repositories.NewOrderRepository(db)

	if gw == nil {
		gw = payment.NewSandbox()
	}
	return &store{
		db:       db,
		auth:     services.NewAuthService(users),
		cart:     services.NewCartService(products, cart),
		checkout: services.NewCheckoutService(db, cart, orders, gw, "usd"),
	}
}

func (s *store) signUp(t *testing.T, name, email string) *auth.Identity {
	t.Helper()
	id, err := s.auth.SignUp(context.Background(), name, email, "pw1")
	require.NoError(t, err)
	return id
}
