package models

import (
	"time"

	"gorm.io/gorm"
)

// FuelLog is one fill-up event for a vehicle. CostPerGallon and MPG are
// recomputed on every read and never persisted, so edits to the raw fields
// show up immediately.
type FuelLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VehicleID uint      `json:"vehicle_id" gorm:"index;not null"`
	Date      time.Time `json:"date"`
	LastOd    int       `json:"last_od"`
	CurrOd    int       `json:"curr_od"`
	Gallons   float64   `json:"gallons"`
	TotalCost float64   `json:"total_cost"`

	CostPerGallon float64 `json:"cost_per_gallon" gorm:"-"`
	MPG           float64 `json:"mpg" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CostPerUnit returns total cost divided by gallons, 0 when gallons is 0.
func (fl *FuelLog) CostPerUnit() float64 {
	if fl.Gallons == 0 {
		return 0
	}
	return fl.TotalCost / fl.Gallons
}

// Efficiency returns miles per gallon. An odometer pair that goes backwards
// degrades to 0 instead of a negative reading.
func (fl *FuelLog) Efficiency() float64 {
	if fl.Gallons == 0 {
		return 0
	}
	distance := fl.CurrOd - fl.LastOd
	if distance < 0 {
		return 0
	}
	return float64(distance) / fl.Gallons
}

// AfterFind annotates the derived metrics on every read.
func (fl *FuelLog) AfterFind(tx *gorm.DB) error {
	fl.CostPerGallon = fl.CostPerUnit()
	fl.MPG = fl.Efficiency()
	return nil
}
