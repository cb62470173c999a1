package fleet

import (
	"time"

	"fleetops.xyz/fleet-service/pkg/models"
)

// VehicleState is the live view of a vehicle. Only "disabled" comes from
// storage; the operational states are derived from the vehicle's schedule at
// the given instant.
type VehicleState string

const (
	VehicleAvailable     VehicleState = "available"
	VehicleOnRoute       VehicleState = "on_route"
	VehicleInMaintenance VehicleState = "maintenance"
	VehicleDisabled      VehicleState = "disabled"
)

func (s VehicleState) Label() string {
	switch s {
	case VehicleOnRoute:
		return "On Route"
	case VehicleInMaintenance:
		return "In Maintenance"
	case VehicleDisabled:
		return "Disabled"
	}
	return "Available"
}

type MaintenanceState string

const (
	MaintenanceScheduled  MaintenanceState = "scheduled"
	MaintenanceInProgress MaintenanceState = "in_progress"
	MaintenanceOverdue    MaintenanceState = "overdue"
	MaintenanceCompleted  MaintenanceState = "completed"
	MaintenanceCanceled   MaintenanceState = "canceled"
)

func (s MaintenanceState) Label() string {
	switch s {
	case MaintenanceInProgress:
		return "In Progress"
	case MaintenanceOverdue:
		return "Overdue"
	case MaintenanceCompleted:
		return "Completed"
	case MaintenanceCanceled:
		return "Canceled"
	}
	return "Scheduled"
}

type RouteState string

const (
	RouteScheduled  RouteState = "scheduled"
	RouteInProgress RouteState = "in_progress"
	RouteCompleted  RouteState = "completed"
	RouteCanceled   RouteState = "canceled"
)

func (s RouteState) Label() string {
	switch s {
	case RouteInProgress:
		return "In Progress"
	case RouteCompleted:
		return "Completed"
	case RouteCanceled:
		return "Canceled"
	}
	return "Scheduled"
}

var nonTerminalStatuses = []models.ScheduleStatus{
	models.ScheduleStatusScheduled,
	models.ScheduleStatusInProgress,
}

// vehicleDynamicStatus derives the vehicle state at the given instant.
// Precedence is fixed: disabled > maintenance > on_route > available. An
// overdue maintenance that was never closed keeps the vehicle in maintenance
// until an operator completes or cancels it.
func (f *Fleet) vehicleDynamicStatus(vehicle *models.Vehicle, now time.Time) (VehicleState, error) {
	if vehicle.Status == models.VehicleStatusDisabled {
		return VehicleDisabled, nil
	}

	var maintCount int64
	err := f.Db.Conn.Model(&models.Maintenance{}).
		Where("vehicle_id = ? AND status IN ?", vehicle.ID, nonTerminalStatuses).
		Where("(start_date <= ? AND end_date >= ?) OR end_date < ?", now, now, now).
		Count(&maintCount).Error
	if err != nil {
		return VehicleAvailable, err
	}
	if maintCount > 0 {
		return VehicleInMaintenance, nil
	}

	var routeCount int64
	err = f.Db.Conn.Model(&models.Route{}).
		Where("vehicle_id = ? AND status IN ?", vehicle.ID, nonTerminalStatuses).
		Where("start_time <= ? AND end_time >= ?", now, now).
		Count(&routeCount).Error
	if err != nil {
		return VehicleAvailable, err
	}
	if routeCount > 0 {
		return VehicleOnRoute, nil
	}

	return VehicleAvailable, nil
}

// currentRouteDriver returns the driver of the vehicle's currently active
// route, or nil when no route is active or the route has no driver.
func (f *Fleet) currentRouteDriver(vehicle *models.Vehicle, now time.Time) (*models.Driver, error) {
	var route models.Route
	err := f.Db.Conn.
		Where("vehicle_id = ? AND status IN ?", vehicle.ID, nonTerminalStatuses).
		Where("start_time <= ? AND end_time >= ?", now, now).
		Order("start_time").
		First(&route).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if route.DriverID == nil {
		return nil, nil
	}

	var driver models.Driver
	if err := f.Db.Conn.First(&driver, "id = ?", *route.DriverID).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func maintenanceDynamicStatus(m *models.Maintenance, now time.Time) MaintenanceState {
	switch m.Status {
	case models.ScheduleStatusCompleted:
		return MaintenanceCompleted
	case models.ScheduleStatusCanceled:
		return MaintenanceCanceled
	}
	if m.EndDate.Before(now) {
		return MaintenanceOverdue
	}
	if !m.StartDate.After(now) && now.Before(m.EndDate) {
		return MaintenanceInProgress
	}
	return MaintenanceScheduled
}

// routeDynamicStatus derives the route state. A past window reads as
// completed even when the stored status was never transitioned; the stored
// state machine only moves on explicit user completion.
func routeDynamicStatus(r *models.Route, now time.Time) RouteState {
	switch r.Status {
	case models.ScheduleStatusCompleted:
		return RouteCompleted
	case models.ScheduleStatusCanceled:
		return RouteCanceled
	}
	if r.EndTime.Before(now) {
		return RouteCompleted
	}
	if !r.StartTime.After(now) && now.Before(r.EndTime) {
		return RouteInProgress
	}
	return RouteScheduled
}

// routeProgress is a clamped 0..100 percentage of the scheduled window.
func routeProgress(r *models.Route, now time.Time) int {
	if r.Status == models.ScheduleStatusCompleted {
		return 100
	}
	if r.Status == models.ScheduleStatusCanceled {
		return 0
	}
	if !now.Before(r.EndTime) {
		return 100
	}
	if now.Before(r.StartTime) {
		return 0
	}
	total := r.EndTime.Sub(r.StartTime).Seconds()
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(r.StartTime).Seconds()
	percentage := int(elapsed / total * 100)
	if percentage > 100 {
		return 100
	}
	return percentage
}

// normalizeRouteStatus is the pre-save guard for the write path: a route must
// not be stored as completed without a captured distance, so it reverts to
// whichever state the current window implies.
func normalizeRouteStatus(r *models.Route, now time.Time) {
	if r.Status != models.ScheduleStatusCompleted {
		return
	}
	if r.ActualDistance != nil && *r.ActualDistance > 0 {
		return
	}
	if now.Before(r.StartTime) {
		r.Status = models.ScheduleStatusScheduled
	} else {
		r.Status = models.ScheduleStatusInProgress
	}
}

type IStatusImpl struct {
	fleet *Fleet
}

func (is *IStatusImpl) VehicleDynamicStatus(vehicle *models.Vehicle, now time.Time) (VehicleState, error) {
	return is.fleet.vehicleDynamicStatus(vehicle, now)
}

func (is *IStatusImpl) CurrentRouteDriver(vehicle *models.Vehicle, now time.Time) (*models.Driver, error) {
	return is.fleet.currentRouteDriver(vehicle, now)
}

func (is *IStatusImpl) MaintenanceDynamicStatus(maintenance *models.Maintenance, now time.Time) MaintenanceState {
	return maintenanceDynamicStatus(maintenance, now)
}

func (is *IStatusImpl) RouteDynamicStatus(route *models.Route, now time.Time) RouteState {
	return routeDynamicStatus(route, now)
}

func (is *IStatusImpl) RouteProgress(route *models.Route, now time.Time) int {
	return routeProgress(route, now)
}

func (f *Fleet) GetIStatus() IStatus {
	return &IStatusImpl{fleet: f}
}
