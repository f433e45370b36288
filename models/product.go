package models

import (
	"time"
)

// Product represents a stocked part or accessory.
// CurrentStock is a cached running total of the product's stock log;
// it is only ever written together with a StockLog append (see
// services.AdjustStock) and may go negative when an OUT movement
// exceeds the level on hand.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	Description   string    `json:"description"`
	PurchasePrice float64   `gorm:"not null;check:purchase_price >= 0" json:"purchase_price"`
	SellPrice     float64   `gorm:"not null;check:sell_price >= 0" json:"sell_price"`
	CurrentStock  int       `gorm:"not null;default:0" json:"current_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
