package fleet

import (
	"time"

	"fleetops.xyz/fleet-service/pkg/models"
)

type VehicleOverview struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	InUse       int `json:"in_use"`
	Maintenance int `json:"maintenance"`
	Unavailable int `json:"unavailable"`
}

type DriverOverview struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type Overview struct {
	Vehicles             VehicleOverview      `json:"vehicles"`
	Drivers              DriverOverview       `json:"drivers"`
	Alerts               []VehicleAlert       `json:"alerts"`
	UpcomingMaintenances []models.Maintenance `json:"upcoming_maintenances"`
}

const (
	overviewAlertLimit       = 5
	overviewMaintenanceLimit = 3
)

// ProfileOverview assembles the dashboard summary: vehicle counts by dynamic
// status, driver activity counts, the most urgent alerts and the next
// scheduled services.
func (f *Fleet) ProfileOverview(profileID string, now time.Time) (*Overview, error) {
	vehicles, err := f.listVehicles(profileID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{}
	overview.Vehicles.Total = len(vehicles)
	for i := range vehicles {
		state, err := f.vehicleDynamicStatus(&vehicles[i], now)
		if err != nil {
			return nil, err
		}
		switch state {
		case VehicleAvailable:
			overview.Vehicles.Available++
		case VehicleOnRoute:
			overview.Vehicles.InUse++
		case VehicleInMaintenance:
			overview.Vehicles.Maintenance++
		case VehicleDisabled:
			overview.Vehicles.Unavailable++
		}
	}

	drivers, err := f.listDrivers(profileID)
	if err != nil {
		return nil, err
	}
	overview.Drivers.Total = len(drivers)
	for _, driver := range drivers {
		if driver.IsActive {
			overview.Drivers.Active++
		} else {
			overview.Drivers.Inactive++
		}
	}

	overview.Alerts, err = f.computeAlerts(profileID, now, overviewAlertLimit)
	if err != nil {
		return nil, err
	}

	err = f.Db.Conn.
		Where("profile_id = ? AND status = ? AND start_date >= ?",
			profileID, models.ScheduleStatusScheduled, now).
		Order("start_date").
		Limit(overviewMaintenanceLimit).
		Find(&overview.UpcomingMaintenances).Error
	if err != nil {
		return nil, err
	}

	return overview, nil
}
