package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// CartRepository manages the shopping_cart association.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// Add puts productID in the user's cart. Adding a product that is already
// there leaves the existing row untouched.
func (r *CartRepository) Add(ctx context.Context, userID, productID uint) error {
	_, err := orm.On(r.db).WithContext(ctx).CreateIgnore(&models.CartEntry{UserID: userID, ProductID: productID})
	return err
}

// Remove deletes one cart row and reports whether it existed.
func (r *CartRepository) Remove(ctx context.Context, userID, productID uint) (bool, error) {
	n, err := orm.On(r.db).WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartEntry{})
	return n > 0, err
}

// Products lists the products in the user's cart in the order they were
// added.
func (r *CartRepository) Products(ctx context.Context, userID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := orm.On(r.db).WithContext(ctx).Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN shopping_cart ON shopping_cart.product_id = products.id").
		Where("shopping_cart.user_id = ?", userID).
		Order("shopping_cart.added_at, products.id").
		Get(&products)
	return products, err
}

// RemoveProducts deletes the given products from the user's cart.
func (r *CartRepository) RemoveProducts(ctx context.Context, userID uint, productIDs []uint) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	return orm.On(r.db).WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&models.CartEntry{})
}
