package services

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleettrack-api/apperrors"
	"fleettrack-api/models"
	"fleettrack-api/storage"
)

// Upload carries one file part handed in by the HTTP layer.
type Upload struct {
	Filename string
	Content  io.Reader
}

type VehicleService struct {
	db    *gorm.DB
	files *storage.Store
	log   *zap.Logger
}

func NewVehicleService(db *gorm.DB, files *storage.Store, log *zap.Logger) *VehicleService {
	return &VehicleService{db: db, files: files, log: log}
}

type CreateVehicleInput struct {
	VIN        string
	UnitNo     string
	Make       string
	Model      string
	Year       int
	Miles      int
	Hours      int
	Attributes models.AttributeMap

	Photo   *Upload
	Invoice *Upload
}

type UpdateVehicleInput struct {
	VIN        *string
	UnitNo     *string
	Make       *string
	Model      *string
	Year       *int
	Miles      *int
	Hours      *int
	Attributes models.AttributeMap

	Photo   *Upload
	Invoice *Upload
}

// CreateVehicle validates the text fields first, then stores any accepted
// files, then writes the row. A rejected file means no row and no bytes on
// disk; a failed row write removes files stored by this call best-effort.
func (s *VehicleService) CreateVehicle(in CreateVehicleInput) (*models.Vehicle, error) {
	if in.VIN == "" || in.Make == "" || in.Model == "" {
		return nil, fmt.Errorf("%w: vin, make and model are required", apperrors.ErrValidation)
	}
	if in.Year <= 0 {
		return nil, fmt.Errorf("%w: year must be a positive integer", apperrors.ErrValidation)
	}
	if in.Miles < 0 || in.Hours < 0 {
		return nil, fmt.Errorf("%w: miles and hours cannot be negative", apperrors.ErrValidation)
	}

	var existing models.Vehicle
	if err := s.db.Where("vin = ?", in.VIN).First(&existing).Error; err == nil {
		return nil, apperrors.ErrDuplicateVIN
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vehicle := models.Vehicle{
		VIN:        in.VIN,
		UnitNo:     in.UnitNo,
		Make:       in.Make,
		Model:      in.Model,
		Year:       in.Year,
		Miles:      in.Miles,
		Hours:      in.Hours,
		Attributes: in.Attributes,
	}

	var stored []string
	if in.Photo != nil {
		name, err := s.files.Save(in.VIN, storage.PurposePhoto, in.Photo.Filename, in.Photo.Content)
		if err != nil {
			return nil, err
		}
		stored = append(stored, name)
		vehicle.PhotoFilename = &name
	}
	if in.Invoice != nil {
		name, err := s.files.Save(in.VIN, storage.PurposeInvoice, in.Invoice.Filename, in.Invoice.Content)
		if err != nil {
			s.discard(stored)
			return nil, err
		}
		stored = append(stored, name)
		vehicle.InvoiceFilename = &name
	}

	if err := s.db.Create(&vehicle).Error; err != nil {
		s.discard(stored)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateVIN
		}
		return nil, err
	}

	s.log.Info("vehicle created",
		zap.Uint("id", vehicle.ID),
		zap.String("vin", vehicle.VIN))
	return &vehicle, nil
}

// UpdateVehicle applies a partial update. Changing the VIN runs the same
// uniqueness check as creation. A replaced attachment leaves the previously
// stored file orphaned on disk; only the reference moves.
func (s *VehicleService) UpdateVehicle(id uint, in UpdateVehicleInput) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if in.VIN != nil && *in.VIN != vehicle.VIN {
		if *in.VIN == "" {
			return nil, fmt.Errorf("%w: vin cannot be empty", apperrors.ErrValidation)
		}
		var existing models.Vehicle
		if err := s.db.Where("vin = ?", *in.VIN).First(&existing).Error; err == nil {
			return nil, apperrors.ErrDuplicateVIN
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		vehicle.VIN = *in.VIN
	}
	if in.UnitNo != nil {
		vehicle.UnitNo = *in.UnitNo
	}
	if in.Make != nil {
		if *in.Make == "" {
			return nil, fmt.Errorf("%w: make cannot be empty", apperrors.ErrValidation)
		}
		vehicle.Make = *in.Make
	}
	if in.Model != nil {
		if *in.Model == "" {
			return nil, fmt.Errorf("%w: model cannot be empty", apperrors.ErrValidation)
		}
		vehicle.Model = *in.Model
	}
	if in.Year != nil {
		if *in.Year <= 0 {
			return nil, fmt.Errorf("%w: year must be a positive integer", apperrors.ErrValidation)
		}
		vehicle.Year = *in.Year
	}
	if in.Miles != nil {
		if *in.Miles < 0 {
			return nil, fmt.Errorf("%w: miles cannot be negative", apperrors.ErrValidation)
		}
		vehicle.Miles = *in.Miles
	}
	if in.Hours != nil {
		if *in.Hours < 0 {
			return nil, fmt.Errorf("%w: hours cannot be negative", apperrors.ErrValidation)
		}
		vehicle.Hours = *in.Hours
	}
	if in.Attributes != nil {
		if vehicle.Attributes == nil {
			vehicle.Attributes = models.AttributeMap{}
		}
		for k, v := range in.Attributes {
			vehicle.Attributes[k] = v
		}
	}

	var stored []string
	if in.Photo != nil {
		name, err := s.files.Save(vehicle.VIN, storage.PurposePhoto, in.Photo.Filename, in.Photo.Content)
		if err != nil {
			return nil, err
		}
		stored = append(stored, name)
		vehicle.PhotoFilename = &name
	}
	if in.Invoice != nil {
		name, err := s.files.Save(vehicle.VIN, storage.PurposeInvoice, in.Invoice.Filename, in.Invoice.Content)
		if err != nil {
			s.discard(stored)
			return nil, err
		}
		stored = append(stored, name)
		vehicle.InvoiceFilename = &name
	}

	if err := s.db.Save(&vehicle).Error; err != nil {
		s.discard(stored)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateVIN
		}
		return nil, err
	}

	return &vehicle, nil
}

// DeleteVehicle removes the vehicle and every dependent record in a single
// transaction. Either all rows disappear or none do.
func (s *VehicleService) DeleteVehicle(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if err := tx.Where("vehicle_id = ?", id).Delete(&models.WorkOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.FuelLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.MaintenanceLog{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&vehicle).Error; err != nil {
			return err
		}

		s.log.Info("vehicle deleted",
			zap.Uint("id", vehicle.ID),
			zap.String("vin", vehicle.VIN))
		return nil
	})
}

func (s *VehicleService) GetVehicle(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// discard is the best-effort cleanup for files stored by an operation whose
// row write did not go through. Failures are logged, never escalated.
func (s *VehicleService) discard(stored []string) {
	for _, name := range stored {
		if err := s.files.Remove(name); err != nil {
			s.log.Warn("could not remove stored upload after failed write",
				zap.String("file", name),
				zap.Error(err))
		}
	}
}
