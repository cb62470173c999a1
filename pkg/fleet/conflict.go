package fleet

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

// RouteCandidate is a proposed route window. ExcludeID carries the route's own
// id when editing so the record does not conflict with itself.
type RouteCandidate struct {
	VehicleID     *string
	DriverID      *string
	StartLocation string
	EndLocation   string
	StartTime     time.Time
	EndTime       time.Time
	ExcludeID     string
}

// locationPattern: free text followed by a two-letter region code, "City, ST".
var locationPattern = regexp.MustCompile(`^.+,\s*[A-Za-z]{2}\s*$`)

func validateLocation(field, value string) error {
	if !locationPattern.MatchString(value) {
		return NewValidationError(field, "invalid location format, use 'City, ST'")
	}
	return nil
}

// RegionCode extracts the two-letter region code from a "City, ST" location.
func RegionCode(location string) (string, error) {
	parts := strings.Split(location, ",")
	uf := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if len(uf) != 2 || strings.IndexFunc(uf, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return "", NewValidationError("start_location", "invalid location format, use 'City, ST'")
	}
	return uf, nil
}

// overlapping scopes a query to non-terminal records of a profile whose window
// strictly overlaps [start, end). Back-to-back windows sharing an endpoint do
// not overlap.
func overlappingRoutes(conn *gorm.DB, profileID string, start, end time.Time, excludeID string) *gorm.DB {
	q := conn.Model(&models.Route{}).
		Where("profile_id = ? AND status IN ?", profileID, nonTerminalStatuses).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

func (f *Fleet) validateRouteWindow(profileID string, candidate *RouteCandidate) error {
	return f.validateRouteWindowTx(f.Db.Conn, profileID, candidate)
}

// validateRouteWindowTx runs the full conflict contract on the given handle so
// the write path can re-check inside its transaction.
func (f *Fleet) validateRouteWindowTx(conn *gorm.DB, profileID string, candidate *RouteCandidate) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryConflict),
	)

	if !candidate.StartTime.Before(candidate.EndTime) {
		return NewValidationError("end_time", "scheduled end must be after start")
	}
	if err := validateLocation("start_location", candidate.StartLocation); err != nil {
		return err
	}
	if err := validateLocation("end_location", candidate.EndLocation); err != nil {
		return err
	}

	if candidate.VehicleID != nil {
		var count int64
		err := overlappingRoutes(conn, profileID, candidate.StartTime, candidate.EndTime, candidate.ExcludeID).
			Where("vehicle_id = ?", *candidate.VehicleID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Route window rejected", zap.String("kind", string(ConflictVehicleRoute)))
			return &ConflictError{Kind: ConflictVehicleRoute, Resource: f.vehicleLabel(conn, *candidate.VehicleID)}
		}

		err = conn.Model(&models.Maintenance{}).
			Where("profile_id = ? AND vehicle_id = ? AND status IN ?", profileID, *candidate.VehicleID, nonTerminalStatuses).
			Where("start_date < ? AND end_date > ?", candidate.EndTime, candidate.StartTime).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Route window rejected", zap.String("kind", string(ConflictVehicleMaintenance)))
			return &ConflictError{Kind: ConflictVehicleMaintenance, Resource: f.vehicleLabel(conn, *candidate.VehicleID)}
		}
	}

	if candidate.DriverID != nil {
		var count int64
		err := overlappingRoutes(conn, profileID, candidate.StartTime, candidate.EndTime, candidate.ExcludeID).
			Where("driver_id = ?", *candidate.DriverID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Route window rejected", zap.String("kind", string(ConflictDriverRoute)))
			return &ConflictError{Kind: ConflictDriverRoute, Resource: f.driverLabel(conn, *candidate.DriverID)}
		}
	}

	return nil
}

// validateMaintenanceWindowTx checks a proposed maintenance window against the
// vehicle's non-terminal routes. Overlap between two maintenances on the same
// vehicle is not rejected.
func (f *Fleet) validateMaintenanceWindowTx(conn *gorm.DB, profileID, vehicleID string, start, end time.Time, excludeID string) error {
	if !start.Before(end) {
		return NewValidationError("end_date", "scheduled end must be after start")
	}

	var count int64
	err := overlappingRoutes(conn, profileID, start, end, "").
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		common.GetLoggerWith(
			common.LoggerNameFleetCore,
			zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryConflict),
		).Info("Maintenance window rejected", zap.String("kind", string(ConflictVehicleRoute)))
		return &ConflictError{Kind: ConflictVehicleRoute, Resource: f.vehicleLabel(conn, vehicleID)}
	}
	return nil
}

func (f *Fleet) vehicleLabel(conn *gorm.DB, vehicleID string) string {
	var vehicle models.Vehicle
	if err := conn.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		return vehicleID
	}
	return vehicle.Plate
}

func (f *Fleet) driverLabel(conn *gorm.DB, driverID string) string {
	var driver models.Driver
	if err := conn.First(&driver, "id = ?", driverID).Error; err != nil {
		return driverID
	}
	return driver.FullName
}

type IConflictImpl struct {
	fleet *Fleet
}

func (ic *IConflictImpl) ValidateRouteWindow(profileID string, candidate *RouteCandidate) error {
	return ic.fleet.validateRouteWindow(profileID, candidate)
}

func (ic *IConflictImpl) ValidateMaintenanceWindow(profileID, vehicleID string, start, end time.Time, excludeID string) error {
	return ic.fleet.validateMaintenanceWindowTx(ic.fleet.Db.Conn, profileID, vehicleID, start, end, excludeID)
}

func (f *Fleet) GetIConflict() IConflict {
	return &IConflictImpl{fleet: f}
}
