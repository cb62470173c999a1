package fleet

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

func (f *Fleet) createVehicle(profileID string, input *models.Vehicle) (*models.Vehicle, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryVehicle),
	)

	if err := f.checkPlateUnique(profileID, input.Plate, ""); err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		ID:                     uuid.NewString(),
		ProfileID:              profileID,
		Plate:                  input.Plate,
		Model:                  input.Model,
		Year:                   input.Year,
		Status:                 models.VehicleStatusAvailable,
		InitialMileage:         input.InitialMileage,
		DriverID:               input.DriverID,
		AcquisitionDate:        input.AcquisitionDate,
		AverageFuelConsumption: input.AverageFuelConsumption,
	}

	if err := f.Db.Conn.Create(&vehicle).Error; err != nil {
		return nil, err
	}
	logger.Info("Vehicle created", zap.String("vehicle_id", vehicle.ID), zap.String("plate", vehicle.Plate))
	return &vehicle, nil
}

func (f *Fleet) updateVehicle(profileID, vehicleID string, input *models.Vehicle) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := f.Db.Conn.First(&vehicle, "id = ? AND profile_id = ?", vehicleID, profileID).Error
	if err != nil {
		return nil, err
	}

	if err := f.checkPlateUnique(profileID, input.Plate, vehicleID); err != nil {
		return nil, err
	}

	vehicle.Plate = input.Plate
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.InitialMileage = input.InitialMileage
	vehicle.DriverID = input.DriverID
	vehicle.AcquisitionDate = input.AcquisitionDate
	vehicle.AverageFuelConsumption = input.AverageFuelConsumption

	if err := f.Db.Conn.Save(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (f *Fleet) checkPlateUnique(profileID, plate, excludeID string) error {
	q := f.Db.Conn.Model(&models.Vehicle{}).
		Where("profile_id = ? AND plate = ?", profileID, plate)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError("plate", "a vehicle with this plate already exists")
	}
	return nil
}

// setVehicleDisabled flips the only authoritative stored state. Enabling puts
// the vehicle back to available; the operational states remain derived.
func (f *Fleet) setVehicleDisabled(profileID, vehicleID string, disabled bool) error {
	var vehicle models.Vehicle
	err := f.Db.Conn.First(&vehicle, "id = ? AND profile_id = ?", vehicleID, profileID).Error
	if err != nil {
		return err
	}

	if disabled {
		vehicle.Status = models.VehicleStatusDisabled
	} else {
		vehicle.Status = models.VehicleStatusAvailable
	}
	return f.Db.Conn.Save(&vehicle).Error
}

// vehicleMileage derives the odometer: initial mileage plus the distance of
// completed routes only, actual distance preferred over the estimate.
// Scheduled and canceled routes never contribute.
func (f *Fleet) vehicleMileage(vehicle *models.Vehicle) (int, error) {
	var routes []models.Route
	err := f.Db.Conn.
		Where("vehicle_id = ? AND status = ?", vehicle.ID, models.ScheduleStatusCompleted).
		Find(&routes).Error
	if err != nil {
		return 0, err
	}

	total := common.Reducer(routes, func(acc float64, r models.Route) float64 {
		if r.ActualDistance != nil {
			return acc + *r.ActualDistance
		}
		if r.EstimatedDistance != nil {
			return acc + *r.EstimatedDistance
		}
		return acc
	}, 0.0)

	return vehicle.InitialMileage + int(total), nil
}

func (f *Fleet) getVehicle(profileID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := f.Db.Conn.First(&vehicle, "id = ? AND profile_id = ?", vehicleID, profileID).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (f *Fleet) listVehicles(profileID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := f.Db.Conn.
		Where("profile_id = ?", profileID).
		Order("plate").
		Find(&vehicles).Error
	return vehicles, err
}

type IVehicleImpl struct {
	fleet *Fleet
}

func (iv *IVehicleImpl) CreateVehicle(profileID string, input *models.Vehicle) (*models.Vehicle, error) {
	return iv.fleet.createVehicle(profileID, input)
}

func (iv *IVehicleImpl) UpdateVehicle(profileID, vehicleID string, input *models.Vehicle) (*models.Vehicle, error) {
	return iv.fleet.updateVehicle(profileID, vehicleID, input)
}

func (iv *IVehicleImpl) SetVehicleDisabled(profileID, vehicleID string, disabled bool) error {
	return iv.fleet.setVehicleDisabled(profileID, vehicleID, disabled)
}

func (iv *IVehicleImpl) VehicleMileage(vehicle *models.Vehicle) (int, error) {
	return iv.fleet.vehicleMileage(vehicle)
}

func (iv *IVehicleImpl) GetVehicle(profileID, vehicleID string) (*models.Vehicle, error) {
	return iv.fleet.getVehicle(profileID, vehicleID)
}

func (iv *IVehicleImpl) ListVehicles(profileID string) ([]models.Vehicle, error) {
	return iv.fleet.listVehicles(profileID)
}

func (f *Fleet) GetIVehicle() IVehicle {
	return &IVehicleImpl{fleet: f}
}
