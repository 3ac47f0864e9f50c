package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleettrack-api/apperrors"
	"fleettrack-api/models"
)

func TestCreateVehicle(t *testing.T) {
	svc, db, _ := testVehicleService(t)

	vehicle, err := svc.CreateVehicle(CreateVehicleInput{
		VIN:    "1FTFW1E50NFA00001",
		UnitNo: "101",
		Make:   "Ford",
		Model:  "F-150",
		Year:   2022,
		Attributes: models.AttributeMap{
			"color":        "white",
			"future_field": "tolerated", // unknown keys are stored as-is
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, vehicle.ID)

	var got models.Vehicle
	require.NoError(t, db.First(&got, vehicle.ID).Error)
	assert.Equal(t, "1FTFW1E50NFA00001", got.VIN)
	assert.Equal(t, "white", got.Attributes["color"])
	assert.Equal(t, "tolerated", got.Attributes["future_field"])
}

func TestCreateVehicle_DuplicateVIN(t *testing.T) {
	svc, db, _ := testVehicleService(t)

	_, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "SAMEVIN", Make: "Ford", Model: "F-150", Year: 2022,
	})
	require.NoError(t, err)

	_, err = svc.CreateVehicle(CreateVehicleInput{
		VIN: "SAMEVIN", Make: "Chevy", Model: "Silverado", Year: 2021,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateVIN)

	// Store is unchanged.
	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDuplicateVINConstraintIsTranslated(t *testing.T) {
	_, db, _ := testVehicleService(t)

	require.NoError(t, db.Create(&models.Vehicle{VIN: "SAMEVIN", Make: "Ford", Model: "F-150", Year: 2022}).Error)
	err := db.Create(&models.Vehicle{VIN: "SAMEVIN", Make: "Chevy", Model: "Silverado", Year: 2021}).Error
	// A duplicate that slips past the pre-check must surface as
	// gorm.ErrDuplicatedKey so the service maps it to the VIN conflict
	// instead of a generic failure.
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateVehicle_ValidationFailsBeforeAnyIO(t *testing.T) {
	svc, db, store := testVehicleService(t)

	_, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "VIN1", Make: "Ford", Model: "F-150", Year: 2022,
		Photo: &Upload{Filename: "photo.jpg", Content: strings.NewReader("img")},
	})
	require.NoError(t, err)

	_, err = svc.CreateVehicle(CreateVehicleInput{
		VIN: "VIN2", Make: "", Model: "F-150", Year: 2022,
		Photo: &Upload{Filename: "other.jpg", Content: strings.NewReader("img")},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Only the successful create's photo exists on disk.
	entries, readErr := os.ReadDir(store.Root())
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestCreateVehicle_WithAttachments(t *testing.T) {
	svc, _, store := testVehicleService(t)

	vehicle, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "1FTFW1E50NFA00001", Make: "Ford", Model: "F-150", Year: 2022,
		Photo:   &Upload{Filename: "photo.JPG", Content: strings.NewReader("img")},
		Invoice: &Upload{Filename: "invoice.pdf", Content: strings.NewReader("pdf")},
	})
	require.NoError(t, err)

	require.NotNil(t, vehicle.PhotoFilename)
	require.NotNil(t, vehicle.InvoiceFilename)
	assert.Equal(t, "1FTFW1E50NFA00001_photo.JPG", *vehicle.PhotoFilename)
	assert.Equal(t, "1FTFW1E50NFA00001_invoice_invoice.pdf", *vehicle.InvoiceFilename)

	_, err = os.Stat(filepath.Join(store.Root(), *vehicle.PhotoFilename))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(store.Root(), *vehicle.InvoiceFilename))
	assert.NoError(t, err)
}

func TestCreateVehicle_RejectedUploadMeansNoRowNoFile(t *testing.T) {
	svc, db, store := testVehicleService(t)

	_, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "VINX", Make: "Ford", Model: "F-150", Year: 2022,
		Photo: &Upload{Filename: "malware.exe", Content: strings.NewReader("payload")},
	})
	assert.ErrorIs(t, err, apperrors.ErrBadExtension)

	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	assert.Zero(t, count)

	entries, readErr := os.ReadDir(store.Root())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestCreateVehicle_SecondFileRejectedCleansUpFirst(t *testing.T) {
	svc, db, store := testVehicleService(t)

	_, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "VINX", Make: "Ford", Model: "F-150", Year: 2022,
		Photo:   &Upload{Filename: "photo.jpg", Content: strings.NewReader("img")},
		Invoice: &Upload{Filename: "invoice.docx", Content: strings.NewReader("doc")},
	})
	assert.ErrorIs(t, err, apperrors.ErrBadExtension)

	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	assert.Zero(t, count)

	entries, readErr := os.ReadDir(store.Root())
	require.NoError(t, readErr)
	assert.Empty(t, entries, "stored photo should be discarded when the invoice is rejected")
}

func TestUpdateVehicle(t *testing.T) {
	svc, _, _ := testVehicleService(t)

	vehicle, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "VIN1", Make: "Ford", Model: "F-150", Year: 2022, Miles: 100,
	})
	require.NoError(t, err)

	newMiles := 250
	newModel := "F-250"
	updated, err := svc.UpdateVehicle(vehicle.ID, UpdateVehicleInput{
		Model: &newModel,
		Miles: &newMiles,
	})
	require.NoError(t, err)
	assert.Equal(t, "F-250", updated.Model)
	assert.Equal(t, 250, updated.Miles)
	assert.Equal(t, "VIN1", updated.VIN, "untouched fields survive a partial update")
}

func TestUpdateVehicle_VINUniqueness(t *testing.T) {
	svc, _, _ := testVehicleService(t)

	_, err := svc.CreateVehicle(CreateVehicleInput{VIN: "VIN1", Make: "Ford", Model: "F-150", Year: 2022})
	require.NoError(t, err)
	second, err := svc.CreateVehicle(CreateVehicleInput{VIN: "VIN2", Make: "Chevy", Model: "Silverado", Year: 2021})
	require.NoError(t, err)

	taken := "VIN1"
	_, err = svc.UpdateVehicle(second.ID, UpdateVehicleInput{VIN: &taken})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateVIN)

	// Re-submitting a vehicle's own VIN is not a conflict.
	own := "VIN2"
	_, err = svc.UpdateVehicle(second.ID, UpdateVehicleInput{VIN: &own})
	assert.NoError(t, err)
}

func TestUpdateVehicle_ReplacingPhotoOrphansOldFile(t *testing.T) {
	svc, _, store := testVehicleService(t)

	vehicle, err := svc.CreateVehicle(CreateVehicleInput{
		VIN: "VIN1", Make: "Ford", Model: "F-150", Year: 2022,
		Photo: &Upload{Filename: "old.jpg", Content: strings.NewReader("old")},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateVehicle(vehicle.ID, UpdateVehicleInput{
		Photo: &Upload{Filename: "new.jpg", Content: strings.NewReader("new")},
	})
	require.NoError(t, err)
	assert.Equal(t, "VIN1_new.jpg", *updated.PhotoFilename)

	// The old file stays on disk; only the reference moves.
	_, err = os.Stat(filepath.Join(store.Root(), "VIN1_old.jpg"))
	assert.NoError(t, err)
}

func TestUpdateVehicle_NotFound(t *testing.T) {
	svc, _, _ := testVehicleService(t)

	m := "Ford"
	_, err := svc.UpdateVehicle(9999, UpdateVehicleInput{Make: &m})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteVehicle_CascadesChildren(t *testing.T) {
	svc, db, store := testVehicleService(t)
	records := NewRecordService(db, store, testLogger())

	vehicle, err := svc.CreateVehicle(CreateVehicleInput{VIN: "VIN1", Make: "Ford", Model: "F-150", Year: 2022})
	require.NoError(t, err)

	_, err = records.AddWorkOrder(vehicle.ID, AddWorkOrderInput{Description: "replace brakes"})
	require.NoError(t, err)
	_, err = records.AddFuelLog(vehicle.ID, AddFuelLogInput{LastOd: 100, CurrOd: 200, Gallons: 10, TotalCost: 35})
	require.NoError(t, err)
	_, err = records.AddMaintenanceLog(vehicle.ID, AddMaintenanceLogInput{ServiceType: "oil change"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVehicle(vehicle.ID))

	var workOrders, fuelLogs, maintenance int64
	db.Model(&models.WorkOrder{}).Where("vehicle_id = ?", vehicle.ID).Count(&workOrders)
	db.Model(&models.FuelLog{}).Where("vehicle_id = ?", vehicle.ID).Count(&fuelLogs)
	db.Model(&models.MaintenanceLog{}).Where("vehicle_id = ?", vehicle.ID).Count(&maintenance)
	assert.Zero(t, workOrders)
	assert.Zero(t, fuelLogs)
	assert.Zero(t, maintenance)

	_, err = svc.GetVehicle(vehicle.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteVehicle_NotFound(t *testing.T) {
	svc, _, _ := testVehicleService(t)
	assert.ErrorIs(t, svc.DeleteVehicle(424242), apperrors.ErrNotFound)
}
