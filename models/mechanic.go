package models

import (
	"time"
)

// Mechanic represents a technician employed by the shop
type Mechanic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Contact   string    `gorm:"not null" json:"contact"`
	Email     string    `json:"email"`
	Status    string    `gorm:"not null;default:'active'" json:"status"` // "active" or "inactive"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Mechanic model
func (Mechanic) TableName() string {
	return "mechanics"
}
