package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleettrack-api/apperrors"
	"fleettrack-api/models"
	"fleettrack-api/storage"
)

// RecordService owns the child records of a vehicle: work orders, fuel logs
// and maintenance logs. A child can only be created against a live vehicle.
type RecordService struct {
	db    *gorm.DB
	files *storage.Store
	log   *zap.Logger
}

func NewRecordService(db *gorm.DB, files *storage.Store, log *zap.Logger) *RecordService {
	return &RecordService{db: db, files: files, log: log}
}

func (s *RecordService) vehicle(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

type AddWorkOrderInput struct {
	Description string
	Date        *time.Time
	Attachment  *Upload
}

func (s *RecordService) AddWorkOrder(vehicleID uint, in AddWorkOrderInput) (*models.WorkOrder, error) {
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	vehicle, err := s.vehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	order := models.WorkOrder{
		VehicleID:   vehicleID,
		Description: in.Description,
		Date:        date,
	}

	var stored string
	if in.Attachment != nil {
		stored, err = s.files.Save(vehicle.VIN, storage.PurposeWorkOrder, in.Attachment.Filename, in.Attachment.Content)
		if err != nil {
			return nil, err
		}
		order.AttachmentFilename = &stored
	}

	if err := s.db.Create(&order).Error; err != nil {
		if stored != "" {
			if rmErr := s.files.Remove(stored); rmErr != nil {
				s.log.Warn("could not remove stored upload after failed write",
					zap.String("file", stored),
					zap.Error(rmErr))
			}
		}
		return nil, err
	}

	return &order, nil
}

func (s *RecordService) ListWorkOrders(vehicleID uint) ([]models.WorkOrder, error) {
	if _, err := s.vehicle(vehicleID); err != nil {
		return nil, err
	}
	var orders []models.WorkOrder
	if err := s.db.Where("vehicle_id = ?", vehicleID).Order("date DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

type AddFuelLogInput struct {
	Date      *time.Time
	LastOd    int
	CurrOd    int
	Gallons   float64
	TotalCost float64
}

// AddFuelLog records a fill-up. An odometer pair that runs backwards is not
// rejected; the derived metrics degrade to zero instead.
func (s *RecordService) AddFuelLog(vehicleID uint, in AddFuelLogInput) (*models.FuelLog, error) {
	if _, err := s.vehicle(vehicleID); err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	entry := models.FuelLog{
		VehicleID: vehicleID,
		Date:      date,
		LastOd:    in.LastOd,
		CurrOd:    in.CurrOd,
		Gallons:   in.Gallons,
		TotalCost: in.TotalCost,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	entry.CostPerGallon = entry.CostPerUnit()
	entry.MPG = entry.Efficiency()
	return &entry, nil
}

func (s *RecordService) ListFuelLogs(vehicleID uint) ([]models.FuelLog, error) {
	if _, err := s.vehicle(vehicleID); err != nil {
		return nil, err
	}
	var entries []models.FuelLog
	if err := s.db.Where("vehicle_id = ?", vehicleID).Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type AddMaintenanceLogInput struct {
	ServiceDate *time.Time
	ServiceType string
	Notes       string
	Cost        float64
}

func (s *RecordService) AddMaintenanceLog(vehicleID uint, in AddMaintenanceLogInput) (*models.MaintenanceLog, error) {
	if in.ServiceType == "" {
		return nil, fmt.Errorf("%w: service_type is required", apperrors.ErrValidation)
	}

	if _, err := s.vehicle(vehicleID); err != nil {
		return nil, err
	}

	serviceDate := time.Now()
	if in.ServiceDate != nil {
		serviceDate = *in.ServiceDate
	}

	entry := models.MaintenanceLog{
		VehicleID:   vehicleID,
		ServiceDate: serviceDate,
		ServiceType: in.ServiceType,
		Notes:       in.Notes,
		Cost:        in.Cost,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *RecordService) ListMaintenanceLogs(vehicleID uint) ([]models.MaintenanceLog, error) {
	if _, err := s.vehicle(vehicleID); err != nil {
		return nil, err
	}
	var entries []models.MaintenanceLog
	if err := s.db.Where("vehicle_id = ?", vehicleID).Order("service_date DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
