package models

import (
	"time"
)

// Job sheet workflow statuses. Any status may follow any other; the
// set is a display vocabulary, not an enforced state machine.
const (
	JobStatusPending    = "Pending"
	JobStatusProcessing = "Processing"
	JobStatusReady      = "Ready"
	JobStatusDelivered  = "Delivered"
)

// JobSheet represents one repair engagement. Client and mechanic are
// required at creation but all references are weak: deleting the
// referenced record leaves the job in place with the association
// resolving to null on read.
type JobSheet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TrackingCode string    `gorm:"uniqueIndex;not null" json:"tracking_code"`
	ClientID     uint      `gorm:"not null;index" json:"client_id"`
	Client       *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	MechanicID   uint      `gorm:"not null;index" json:"mechanic_id"`
	Mechanic     *Mechanic `gorm:"foreignKey:MechanicID" json:"mechanic,omitempty"`
	ServiceID    *uint     `gorm:"index" json:"service_id"`
	Service      *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	ProductID    *uint     `gorm:"index" json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	DeviceModel  string    `gorm:"not null" json:"device_model"`
	Fault        string    `gorm:"not null" json:"fault"`
	Status       string    `gorm:"not null;default:'Pending'" json:"status"`
	Remarks      string    `json:"remarks"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the JobSheet model
func (JobSheet) TableName() string {
	return "job_sheets"
}
