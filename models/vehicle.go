package models

import (
	"time"
)

type Vehicle struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	VIN    string `json:"vin" gorm:"uniqueIndex;not null;size:64"`
	UnitNo string `json:"unit_no" gorm:"size:32"`
	Make   string `json:"make" gorm:"not null;size:100"`
	Model  string `json:"model" gorm:"not null;size:100"`
	Year   int    `json:"year" gorm:"not null"`

	Miles int `json:"miles" gorm:"default:0"`
	Hours int `json:"hours" gorm:"default:0"`

	PhotoFilename   *string `json:"photo_filename" gorm:"size:255"`
	InvoiceFilename *string `json:"invoice_filename" gorm:"size:255"`

	// Dynamic attributes keyed by the schema loader's header names.
	Attributes AttributeMap `json:"attributes" gorm:"type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkOrders      []WorkOrder      `json:"work_orders,omitempty" gorm:"foreignKey:VehicleID"`
	FuelLogs        []FuelLog        `json:"fuel_logs,omitempty" gorm:"foreignKey:VehicleID"`
	MaintenanceLogs []MaintenanceLog `json:"maintenance_logs,omitempty" gorm:"foreignKey:VehicleID"`
}
