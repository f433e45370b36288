package models

import (
	"time"
)

// Stock movement directions
const (
	StockIn  = "IN"
	StockOut = "OUT"
)

// StockLog represents one entry in the append-only inventory ledger.
// Entries are immutable once written; no exposed operation deletes
// them. ProductID is a weak reference: the product may be deleted
// later, leaving the entry in place with Product resolving to null.
type StockLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Direction string    `gorm:"not null" json:"direction"` // "IN" or "OUT"
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the StockLog model
func (StockLog) TableName() string {
	return "stock_logs"
}
