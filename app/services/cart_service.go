package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// CartSnapshot is the cart as shown to the user.
type CartSnapshot struct {
	Items []models.Product `json:"items"`
	Total int              `json:"total"`
}

// CartService manages each user's cart.
type CartService struct {
	products *repositories.ProductRepository
	cart     *repositories.CartRepository
}

func NewCartService(products *repositories.ProductRepository, cart *repositories.CartRepository) *CartService {
	return &CartService{products: products, cart: cart}
}

// Add puts a product in the cart. Adding it again changes nothing.
func (s *CartService) Add(ctx context.Context, id *auth.Identity, productID uint) (CartSnapshot, error) {
	if id == nil {
		return CartSnapshot{}, ErrUnauthenticated
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if orm.IsNotFound(err) {
			metrics.CartOperations.WithLabelValues("add", "not_found").Inc()
			return CartSnapshot{}, ErrNotFound
		}
		return CartSnapshot{}, fmt.Errorf("cart: find product: %w", err)
	}

	if err := s.cart.Add(ctx, id.UserID, productID); err != nil {
		return CartSnapshot{}, fmt.Errorf("cart: add: %w", err)
	}
	metrics.CartOperations.WithLabelValues("add", "ok").Inc()

	return s.Get(ctx, id)
}

// Remove takes a product out of the cart. ErrNotFound covers both an
// unknown product and one that is not in the cart.
func (s *CartService) Remove(ctx context.Context, id *auth.Identity, productID uint) error {
	if id == nil {
		return ErrUnauthenticated
	}

	removed, err := s.cart.Remove(ctx, id.UserID, productID)
	if err != nil {
		return fmt.Errorf("cart: remove: %w", err)
	}
	if !removed {
		metrics.CartOperations.WithLabelValues("remove", "not_found").Inc()
		return ErrNotFound
	}

	metrics.CartOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Get returns the cart contents in the order they were added.
func (s *CartService) Get(ctx context.Context, id *auth.Identity) (CartSnapshot, error) {
	if id == nil {
		return CartSnapshot{}, ErrUnauthenticated
	}

	items, err := s.cart.Products(ctx, id.UserID)
	if err != nil {
		return CartSnapshot{}, fmt.Errorf("cart: load: %w", err)
	}

	return CartSnapshot{
		Items: withImageURLs(items),
		Total: collection.Sum(items, func(p models.Product) int { return p.Price }),
	}, nil
}
