package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// CatalogCacheKey holds the cached product listing.
const CatalogCacheKey = "catalog:products"

// ProductRepository reads the catalogue.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns every product in ascending id order, served from the cache
// for up to ttl.
func (r *ProductRepository) All(ctx context.Context, ttl time.Duration) ([]models.Product, error) {
	products := []models.Product{}
	err := orm.On(r.db).WithContext(ctx).Model(&models.Product{}).Order("id").Cache(CatalogCacheKey, ttl, &products)
	return products, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := orm.On(r.db).WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).First(&p)
	return p, err
}

// Upsert inserts products whose id is not yet present and returns how many
// were new.
func (r *ProductRepository) Upsert(ctx context.Context, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	return orm.On(r.db).WithContext(ctx).CreateIgnore(&products)
}

// ForgetCache drops the cached listing.
func ForgetCache() error {
	return cache.Forget(CatalogCacheKey)
}
