package models

import (
	"time"
)

type MaintenanceLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	VehicleID   uint      `json:"vehicle_id" gorm:"index;not null"`
	ServiceDate time.Time `json:"service_date"`
	ServiceType string    `json:"service_type" gorm:"not null;size:100"`
	Notes       string    `json:"notes"`
	Cost        float64   `json:"cost" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
