package seeders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/workerpool"
)

func init() {
	Register("products", SeedProducts)
}

// Catalog is the starter product set.
var Catalog = []models.Product{
	{ID: 1, Name: "Mug", Image: "products/mug.svg", Price: 10},
	{ID: 2, Name: "Shirt", Image: "products/shirt.svg", Price: 20},
	{ID: 3, Name: "Hat", Image: "products/hat.svg", Price: 15},
}

// SeedProducts inserts the starter catalogue and uploads a placeholder image
// for every product whose image is missing on the default disk. It then
// drops the cached listing. Running it twice is harmless.
func SeedProducts(ctx context.Context, db *gorm.DB) error {
	inserted, err := repositories.NewProductRepository(db).Upsert(ctx, Catalog)
	if err != nil {
		return fmt.Errorf("insert products: %w", err)
	}

	disk := storage.Default()
	pool := workerpool.New(ctx, 4)
	for _, p := range Catalog {
		err := pool.Submit(func(ctx context.Context) error {
			ok, err := disk.Exists(ctx, p.Image)
			if err != nil {
				return fmt.Errorf("check image %s: %w", p.Image, err)
			}
			if ok {
				return nil
			}
			if err := disk.Put(ctx, p.Image, []byte(placeholder(p.Name))); err != nil {
				return fmt.Errorf("upload image %s: %w", p.Image, err)
			}
			return nil
		})
		if err != nil {
			break
		}
	}
	if err := pool.Wait(); err != nil {
		return err
	}

	if err := repositories.ForgetCache(); err != nil {
		logger.WithCtx(ctx).Warn("catalog cache not cleared", "error", err)
	}
	logger.WithCtx(ctx).Info("products seeded", "inserted", inserted)
	return nil
}

func placeholder(label string) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" width="240" height="240" viewBox="0 0 240 240">` +
		`<rect width="240" height="240" fill="#eeeeee"/>` +
		`<text x="120" y="128" font-family="sans-serif" font-size="28" text-anchor="middle" fill="#555555">` +
		label + `</text></svg>`
}
