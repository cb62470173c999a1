package fleet

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

// MaintenanceCompletion carries the closing data for a scheduled service.
type MaintenanceCompletion struct {
	ActualCost    *float64
	ActualEndDate time.Time
}

// MaintenanceResult is the completion outcome. Warning is set when the final
// cost differs from the estimate; the caller decides how to surface it.
type MaintenanceResult struct {
	Maintenance *models.Maintenance
	Warning     string
}

func (f *Fleet) scheduleMaintenance(profileID string, input *models.Maintenance) (*models.Maintenance, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryMaintenance),
	)

	if input.ServiceType == "" {
		return nil, NewValidationError("service_type", "service type is required")
	}

	var vehicle models.Vehicle
	err := f.Db.Conn.First(&vehicle, "id = ? AND profile_id = ?", input.VehicleID, profileID).Error
	if err != nil {
		return nil, err
	}
	if vehicle.Status == models.VehicleStatusDisabled {
		return nil, NewValidationError("vehicle", "cannot schedule maintenance for a disabled vehicle")
	}

	maintenance := models.Maintenance{
		ID:               uuid.NewString(),
		ProfileID:        profileID,
		VehicleID:        input.VehicleID,
		ServiceType:      input.ServiceType,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		MechanicShopName: input.MechanicShopName,
		EstimatedCost:    input.EstimatedCost,
		CurrentMileage:   input.CurrentMileage,
		Notes:            input.Notes,
		Status:           models.ScheduleStatusScheduled,
	}

	// The conflict check and the insert share one transaction so concurrent
	// schedulers serialize on the write.
	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := f.validateMaintenanceWindowTx(tx, profileID, input.VehicleID, input.StartDate, input.EndDate, ""); err != nil {
			return err
		}
		return tx.Create(&maintenance).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Maintenance scheduled",
		zap.String("maintenance_id", maintenance.ID),
		zap.String("vehicle_id", maintenance.VehicleID),
		zap.String("service_type", maintenance.ServiceType))
	return &maintenance, nil
}

func (f *Fleet) updateMaintenance(profileID, maintenanceID string, input *models.Maintenance) (*models.Maintenance, error) {
	var maintenance models.Maintenance
	err := f.Db.Conn.First(&maintenance, "id = ? AND profile_id = ?", maintenanceID, profileID).Error
	if err != nil {
		return nil, err
	}

	if input.ServiceType == "" {
		return nil, NewValidationError("service_type", "service type is required")
	}

	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := f.validateMaintenanceWindowTx(tx, profileID, input.VehicleID, input.StartDate, input.EndDate, maintenanceID); err != nil {
			return err
		}

		maintenance.VehicleID = input.VehicleID
		maintenance.ServiceType = input.ServiceType
		maintenance.StartDate = input.StartDate
		maintenance.EndDate = input.EndDate
		maintenance.MechanicShopName = input.MechanicShopName
		maintenance.EstimatedCost = input.EstimatedCost
		maintenance.CurrentMileage = input.CurrentMileage
		maintenance.Notes = input.Notes
		return tx.Save(&maintenance).Error
	})
	if err != nil {
		return nil, err
	}
	return &maintenance, nil
}

func (f *Fleet) completeMaintenance(profileID, maintenanceID string, completion *MaintenanceCompletion) (*MaintenanceResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryMaintenance),
	)

	var maintenance models.Maintenance
	err := f.Db.Conn.First(&maintenance, "id = ? AND profile_id = ?", maintenanceID, profileID).Error
	if err != nil {
		return nil, err
	}

	maintenance.Status = models.ScheduleStatusCompleted
	maintenance.ActualCost = completion.ActualCost
	actualEnd := completion.ActualEndDate
	maintenance.ActualEndDate = &actualEnd

	result := &MaintenanceResult{Maintenance: &maintenance}
	if maintenance.EstimatedCost != nil && maintenance.ActualCost != nil &&
		*maintenance.EstimatedCost != *maintenance.ActualCost {
		result.Warning = "final cost differs from the estimate"
	}

	if err := f.Db.Conn.Save(&maintenance).Error; err != nil {
		return nil, err
	}
	logger.Info("Maintenance completed", zap.String("maintenance_id", maintenance.ID))
	return result, nil
}

func (f *Fleet) cancelMaintenance(profileID, maintenanceID string) error {
	var maintenance models.Maintenance
	err := f.Db.Conn.First(&maintenance, "id = ? AND profile_id = ?", maintenanceID, profileID).Error
	if err != nil {
		return err
	}

	maintenance.Status = models.ScheduleStatusCanceled
	return f.Db.Conn.Save(&maintenance).Error
}

func (f *Fleet) listMaintenances(profileID string) ([]models.Maintenance, error) {
	var maintenances []models.Maintenance
	err := f.Db.Conn.
		Where("profile_id = ?", profileID).
		Order("start_date DESC").
		Find(&maintenances).Error
	return maintenances, err
}

type IMaintenanceImpl struct {
	fleet *Fleet
}

func (im *IMaintenanceImpl) ScheduleMaintenance(profileID string, input *models.Maintenance) (*models.Maintenance, error) {
	return im.fleet.scheduleMaintenance(profileID, input)
}

func (im *IMaintenanceImpl) UpdateMaintenance(profileID, maintenanceID string, input *models.Maintenance) (*models.Maintenance, error) {
	return im.fleet.updateMaintenance(profileID, maintenanceID, input)
}

func (im *IMaintenanceImpl) CompleteMaintenance(profileID, maintenanceID string, completion *MaintenanceCompletion) (*MaintenanceResult, error) {
	return im.fleet.completeMaintenance(profileID, maintenanceID, completion)
}

func (im *IMaintenanceImpl) CancelMaintenance(profileID, maintenanceID string) error {
	return im.fleet.cancelMaintenance(profileID, maintenanceID)
}

func (im *IMaintenanceImpl) ListMaintenances(profileID string) ([]models.Maintenance, error) {
	return im.fleet.listMaintenances(profileID)
}

func (f *Fleet) GetIMaintenance() IMaintenance {
	return &IMaintenanceImpl{fleet: f}
}
