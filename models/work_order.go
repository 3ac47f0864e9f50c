package models

import (
	"time"
)

// WorkOrder is a maintenance task attached to exactly one vehicle. It has no
// independent lifecycle: deleting the vehicle deletes its work orders.
type WorkOrder struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	VehicleID   uint      `json:"vehicle_id" gorm:"index;not null"`
	Description string    `json:"description" gorm:"not null"`
	Date        time.Time `json:"date"`

	AttachmentFilename *string `json:"attachment_filename" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
