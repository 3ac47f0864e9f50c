package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleettrack-api/models"
	"fleettrack-api/storage"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.WorkOrder{},
		&models.FuelLog{},
		&models.MaintenanceLog{},
	))
	return db
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testVehicleService(t *testing.T) (*VehicleService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := testDB(t)
	store := testStore(t)
	return NewVehicleService(db, store, zap.NewNop()), db, store
}

func testRecordService(t *testing.T) (*RecordService, *gorm.DB, *storage.Store) {
	t.Helper()
	db := testDB(t)
	store := testStore(t)
	return NewRecordService(db, store, zap.NewNop()), db, store
}
