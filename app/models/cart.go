package models

import "time"

// CartEntry marks a product as being in a user's cart. The composite key
// makes a repeated add a no-op.
type CartEntry struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (CartEntry) TableName() string { return "shopping_cart" }

// OrderEntry records that a user has bought a product. Rows are only ever
// inserted, by a successful charge.
type OrderEntry struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	OrderedAt time.Time `gorm:"autoCreateTime" json:"ordered_at"`
}

func (OrderEntry) TableName() string { return "order_ledger" }
