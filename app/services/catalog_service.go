package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// CatalogService lists products for the home page.
type CatalogService struct {
	products *repositories.ProductRepository
	ttl      time.Duration
}

func NewCatalogService(products *repositories.ProductRepository, ttl time.Duration) *CatalogService {
	return &CatalogService{products: products, ttl: ttl}
}

// ListProducts returns every product in id order with image references
// resolved to public URLs.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.All(ctx, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return withImageURLs(products), nil
}

func withImageURLs(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Image = storage.URL(p.Image)
		out[i] = p
	}
	return out
}
