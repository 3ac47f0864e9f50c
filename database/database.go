package database

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleettrack-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.WorkOrder{},
		&models.FuelLog{},
		&models.MaintenanceLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// SeedData populates an empty database with a small fleet and an admin
// account for development.
func SeedData(db *gorm.DB) error {
	var vehicleCount int64
	db.Model(&models.Vehicle{}).Count(&vehicleCount)

	if vehicleCount > 0 {
		return nil
	}

	seedVehicles := []models.Vehicle{
		{VIN: "1FTFW1E50NFA00001", UnitNo: "101", Make: "Ford", Model: "F-150", Year: 2022},
		{VIN: "3GCNWAEF4MG100002", UnitNo: "102", Make: "Chevy", Model: "Silverado", Year: 2021},
		{VIN: "1C4RDJDG0LC300003", UnitNo: "103", Make: "Dodge", Model: "Durango", Year: 2020},
	}
	for i := range seedVehicles {
		if err := db.Create(&seedVehicles[i]).Error; err != nil {
			return fmt.Errorf("failed to seed vehicle %s: %w", seedVehicles[i].VIN, err)
		}
	}

	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		admin := models.User{
			ID:           uuid.New().String(),
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	return nil
}
