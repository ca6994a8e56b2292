package models

// Product is a catalogue item. Price is in whole currency units.
type Product struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Image string `gorm:"size:250" json:"image"`
	Price int    `gorm:"not null;default:0" json:"price"`
}
