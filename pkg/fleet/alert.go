package fleet

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

const (
	OverdueUnitKm   = "km"
	OverdueUnitDays = "days"
)

// DefaultServiceCatalog is the fixed set of service types every profile gets
// an alert rule row for.
var DefaultServiceCatalog = []string{
	"Troca de Óleo",
	"Revisão Geral",
	"Troca de Pneus",
	"Freios",
	"Filtros",
}

// VehicleAlert is one overdue-maintenance finding for a (vehicle, rule) pair.
type VehicleAlert struct {
	Vehicle      models.Vehicle       `json:"vehicle"`
	ServiceType  string               `json:"service_type"`
	Message      string               `json:"message"`
	Priority     models.AlertPriority `json:"priority"`
	OverdueValue int                  `json:"overdue_value"`
	OverdueUnit  string               `json:"overdue_unit"`
}

var priorityRank = map[models.AlertPriority]int{
	models.AlertPriorityLow:    0,
	models.AlertPriorityMedium: 1,
	models.AlertPriorityHigh:   2,
}

// LessUrgent is the total order over alerts: lower priority first, then days
// before km at equal priority regardless of magnitude, then smaller overdue
// amount. Sorting with its inverse puts the most urgent alert first.
func LessUrgent(a, b *VehicleAlert) bool {
	ra, rb := priorityRank[a.Priority], priorityRank[b.Priority]
	if ra != rb {
		return ra < rb
	}
	if a.OverdueUnit == OverdueUnitKm && b.OverdueUnit == OverdueUnitDays {
		return false
	}
	if a.OverdueUnit == OverdueUnitDays && b.OverdueUnit == OverdueUnitKm {
		return true
	}
	return a.OverdueValue < b.OverdueValue
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}

// computeAlerts walks every (non-disabled vehicle, active rule) pair of the
// profile. Missing history never errors: the baseline falls back from the last
// completed service to the acquisition date to the reference date itself.
func (f *Fleet) computeAlerts(profileID string, now time.Time, limit int) ([]VehicleAlert, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryAlert),
	)

	var vehicles []models.Vehicle
	err := f.Db.Conn.
		Where("profile_id = ? AND status <> ?", profileID, models.VehicleStatusDisabled).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}

	var rules []models.AlertConfiguration
	err = f.Db.Conn.
		Where("profile_id = ? AND is_active = ?", profileID, true).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	alerts := []VehicleAlert{}
	for i := range vehicles {
		vehicle := vehicles[i]
		currentMileage, err := f.vehicleMileage(&vehicle)
		if err != nil {
			return nil, err
		}

		for _, rule := range rules {
			baselineKm, baselineDate, err := f.serviceBaseline(&vehicle, rule.ServiceType, now)
			if err != nil {
				return nil, err
			}

			kmTriggered := false
			if rule.KmThreshold != nil {
				kmDelta := currentMileage - baselineKm
				if kmDelta >= *rule.KmThreshold {
					overdueKm := kmDelta - *rule.KmThreshold
					alerts = append(alerts, VehicleAlert{
						Vehicle:      vehicle,
						ServiceType:  rule.ServiceType,
						Message:      fmt.Sprintf("Overdue by %d km", overdueKm),
						Priority:     rule.Priority,
						OverdueValue: overdueKm,
						OverdueUnit:  OverdueUnitKm,
					})
					kmTriggered = true
				}
			}

			// The distance check wins: when it fires, the elapsed-time
			// check for the same pair is suppressed.
			if rule.DaysThreshold != nil && !kmTriggered {
				daysDelta := daysBetween(baselineDate, now)
				if daysDelta >= *rule.DaysThreshold {
					overdueDays := daysDelta - *rule.DaysThreshold
					alerts = append(alerts, VehicleAlert{
						Vehicle:      vehicle,
						ServiceType:  rule.ServiceType,
						Message:      fmt.Sprintf("Overdue by %d days", overdueDays),
						Priority:     rule.Priority,
						OverdueValue: overdueDays,
						OverdueUnit:  OverdueUnitDays,
					})
				}
			}
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return LessUrgent(&alerts[j], &alerts[i])
	})

	logger.Info("Computed alerts",
		zap.String("profile_id", profileID),
		zap.Int("count", len(alerts)))

	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

// serviceBaseline resolves the odometer reading and date of the vehicle's most
// recent completed service of the given type.
func (f *Fleet) serviceBaseline(vehicle *models.Vehicle, serviceType string, now time.Time) (int, time.Time, error) {
	var last models.Maintenance
	err := f.Db.Conn.
		Where("vehicle_id = ? AND service_type = ? AND status = ?",
			vehicle.ID, serviceType, models.ScheduleStatusCompleted).
		Order("actual_end_date DESC").
		First(&last).Error
	if err != nil {
		if !isNotFound(err) {
			return 0, time.Time{}, err
		}
		baselineDate := vehicle.AcquisitionDate
		if baselineDate.IsZero() {
			baselineDate = now
		}
		return vehicle.InitialMileage, baselineDate, nil
	}

	baselineDate := last.EndDate
	if last.ActualEndDate != nil {
		baselineDate = *last.ActualEndDate
	}
	if baselineDate.IsZero() {
		baselineDate = vehicle.AcquisitionDate
		if baselineDate.IsZero() {
			baselineDate = now
		}
	}
	return last.CurrentMileage, baselineDate, nil
}

// ensureDefaultConfigs lazily creates the profile's rule rows for the fixed
// service catalog. Idempotent; existing rows are left untouched.
func (f *Fleet) ensureDefaultConfigs(profileID string) error {
	for _, serviceType := range DefaultServiceCatalog {
		config := models.AlertConfiguration{
			ID:          uuid.NewString(),
			ProfileID:   profileID,
			ServiceType: serviceType,
			IsActive:    true,
			Priority:    models.AlertPriorityMedium,
		}
		err := f.Db.Conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "service_type"}},
			DoNothing: true,
		}).Create(&config).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Fleet) upsertConfig(profileID string, input *models.AlertConfiguration) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryAlert),
	)

	config := models.AlertConfiguration{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		ServiceType:   input.ServiceType,
		KmThreshold:   input.KmThreshold,
		DaysThreshold: input.DaysThreshold,
		IsActive:      input.IsActive,
		Priority:      input.Priority,
	}
	if config.Priority == "" {
		config.Priority = models.AlertPriorityMedium
	}

	err := f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "service_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"km_threshold", "days_threshold", "is_active", "priority"}),
	}).Create(&config).Error

	if err == nil {
		logger.Info("Upserted alert config", zap.Reflect("config", config))
	}
	return err
}

func (f *Fleet) getConfigs(profileID string) ([]models.AlertConfiguration, error) {
	var configs []models.AlertConfiguration
	err := f.Db.Conn.
		Where("profile_id = ?", profileID).
		Order("service_type").
		Find(&configs).Error
	return configs, err
}

type IAlertImpl struct {
	fleet *Fleet
}

func (ia *IAlertImpl) ComputeAlerts(profileID string, now time.Time, limit int) ([]VehicleAlert, error) {
	return ia.fleet.computeAlerts(profileID, now, limit)
}

func (ia *IAlertImpl) EnsureDefaultConfigs(profileID string) error {
	return ia.fleet.ensureDefaultConfigs(profileID)
}

func (ia *IAlertImpl) UpsertConfig(profileID string, input *models.AlertConfiguration) error {
	return ia.fleet.upsertConfig(profileID, input)
}

func (ia *IAlertImpl) GetConfigs(profileID string) ([]models.AlertConfiguration, error) {
	return ia.fleet.getConfigs(profileID)
}

func (f *Fleet) GetIAlert() IAlert {
	return &IAlertImpl{fleet: f}
}
