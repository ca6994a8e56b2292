// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"

	_ "github.com/shashiranjanraj/storefront/database/migrations"
)

// Products is the catalogue most tests start from.
var Products = []models.Product{
	{ID: 1, Name: "Mug", Image: "products/mug.svg", Price: 10},
	{ID: 2, Name: "Shirt", Image: "products/shirt.svg", Price: 20},
	{ID: 3, Name: "Hat", Image: "https://cdn.example.com/hat.png", Price: 15},
}

// NewDB opens a private in-memory sqlite database with every migration
// applied. It also swaps in a fresh memory cache so cached listings do not
// leak between tests.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	prev := cache.Default()
	cache.Use(cache.NewMemory())

	t.Cleanup(func() {
		cache.Use(prev)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedProducts inserts Products (or the given set) into db.
func SeedProducts(t testing.TB, db *gorm.DB, products ...models.Product) {
	t.Helper()
	if len(products) == 0 {
		products = Products
	}
	_, err := repositories.NewProductRepository(db).Upsert(context.Background(), products)
	require.NoError(t, err)
}

// CreateUser inserts a user with an already-hashed password and returns it.
func CreateUser(t testing.TB, db *gorm.DB, name, email, passwordHash string) models.User {
	t.Helper()
	u := models.User{Name: name, Email: email, Password: passwordHash}
	created, err := repositories.NewUserRepository(db).Create(context.Background(), &u)
	require.NoError(t, err)
	require.True(t, created)
	return u
}
