package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/internal/testutil"
)

func TestCatalog_ListsProductsInIDOrder(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProducts(t, db)
	catalog := services.NewCatalogService(repositories.NewProductRepository(db), time.Minute)

	products, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, productIDs(products))
	assert.Equal(t, "/storage/products/mug.svg", products[0].Image)
}

func TestCatalog_EmptyStore(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := services.NewCatalogService(repositories.NewProductRepository(db), time.Minute)

	products, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalog_CachedUntilForgotten(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProducts(t, db)
	ctx := context.Background()
	catalog := services.NewCatalogService(repositories.NewProductRepository(db), time.Minute)

	_, err := catalog.ListProducts(ctx)
	require.NoError(t, err)

	testutil.SeedProducts(t, db, models.Product{ID: 4, Name: "Socks", Image: "products/socks.svg", Price: 5})

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	require.NoError(t, repositories.ForgetCache())
	products, err = catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)
}
