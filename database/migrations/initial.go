package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_shopping_cart_table", &CreateShoppingCartTable{})
	migration.Register("20260101000003_create_order_ledger_table", &CreateOrderLedgerTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: shopping_cart --------

type CreateShoppingCartTable struct{}

func (m *CreateShoppingCartTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartEntry{})
}

func (m *CreateShoppingCartTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("shopping_cart")
}

// -------- 0004: order_ledger --------

type CreateOrderLedgerTable struct{}

func (m *CreateOrderLedgerTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.OrderEntry{})
}

func (m *CreateOrderLedgerTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_ledger")
}
