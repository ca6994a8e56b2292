package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// OrderRepository manages the append-only order_ledger.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Record adds ledger rows for productIDs. Products the user already owns are
// skipped; the number of new rows is returned.
func (r *OrderRepository) Record(ctx context.Context, userID uint, productIDs []uint) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	entries := make([]models.OrderEntry, len(productIDs))
	for i, id := range productIDs {
		entries[i] = models.OrderEntry{UserID: userID, ProductID: id}
	}
	return orm.On(r.db).WithContext(ctx).CreateIgnore(&entries)
}

// Products lists everything the user has bought, oldest first.
func (r *OrderRepository) Products(ctx context.Context, userID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := orm.On(r.db).WithContext(ctx).Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN order_ledger ON order_ledger.product_id = products.id").
		Where("order_ledger.user_id = ?", userID).
		Order("order_ledger.ordered_at, products.id").
		Get(&products)
	return products, err
}
