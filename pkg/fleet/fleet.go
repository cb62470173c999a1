package fleet

import (
	"time"

	"fleetops.xyz/fleet-service/pkg/db"
	"fleetops.xyz/fleet-service/pkg/models"
)

type IStatus interface {
	VehicleDynamicStatus(vehicle *models.Vehicle, now time.Time) (VehicleState, error)
	CurrentRouteDriver(vehicle *models.Vehicle, now time.Time) (*models.Driver, error)
	MaintenanceDynamicStatus(maintenance *models.Maintenance, now time.Time) MaintenanceState
	RouteDynamicStatus(route *models.Route, now time.Time) RouteState
	RouteProgress(route *models.Route, now time.Time) int
}

type IConflict interface {
	ValidateRouteWindow(profileID string, candidate *RouteCandidate) error
	ValidateMaintenanceWindow(profileID, vehicleID string, start, end time.Time, excludeID string) error
}

type IAlert interface {
	ComputeAlerts(profileID string, now time.Time, limit int) ([]VehicleAlert, error)
	EnsureDefaultConfigs(profileID string) error
	UpsertConfig(profileID string, input *models.AlertConfiguration) error
	GetConfigs(profileID string) ([]models.AlertConfiguration, error)
}

type IVehicle interface {
	CreateVehicle(profileID string, input *models.Vehicle) (*models.Vehicle, error)
	UpdateVehicle(profileID, vehicleID string, input *models.Vehicle) (*models.Vehicle, error)
	SetVehicleDisabled(profileID, vehicleID string, disabled bool) error
	VehicleMileage(vehicle *models.Vehicle) (int, error)
	GetVehicle(profileID, vehicleID string) (*models.Vehicle, error)
	ListVehicles(profileID string) ([]models.Vehicle, error)
}

type IDriver interface {
	CreateDriver(profileID string, input *models.Driver) (*models.Driver, error)
	UpdateDriver(profileID, driverID string, input *models.Driver) (*models.Driver, error)
	DeactivateDriver(profileID, driverID string, now time.Time) error
	ReactivateDriver(profileID, driverID string) error
	ListDrivers(profileID string) ([]models.Driver, error)
}

type IMaintenance interface {
	ScheduleMaintenance(profileID string, input *models.Maintenance) (*models.Maintenance, error)
	UpdateMaintenance(profileID, maintenanceID string, input *models.Maintenance) (*models.Maintenance, error)
	CompleteMaintenance(profileID, maintenanceID string, completion *MaintenanceCompletion) (*MaintenanceResult, error)
	CancelMaintenance(profileID, maintenanceID string) error
	ListMaintenances(profileID string) ([]models.Maintenance, error)
}

type IRoute interface {
	CreateRoute(profileID string, input *models.Route) (*models.Route, error)
	UpdateRoute(profileID, routeID string, input *models.Route) (*models.Route, error)
	CompleteRoute(profileID, routeID string, actualDistance *float64) (*models.Route, error)
	CancelRoute(profileID, routeID string) error
	ReactivateRoute(profileID, routeID string) error
	ListRoutes(profileID string) ([]models.Route, error)
	EstimatedFuelCost(route *models.Route) (*float64, error)
}

// Fleet is the core aggregate: the status engine, conflict detector, alert
// engine and entity operations share one DB handle. The costing providers are
// the only outward dependencies.
type Fleet struct {
	Db db.DB

	Status      IStatus
	Conflict    IConflict
	Alert       IAlert
	Vehicle     IVehicle
	Driver      IDriver
	Maintenance IMaintenance
	Route       IRoute

	RouteDetails RouteDetailsProvider
	FuelPrice    FuelPriceProvider
}

type ServiceOpts struct {
	Status      IStatus
	Conflict    IConflict
	Alert       IAlert
	Vehicle     IVehicle
	Driver      IDriver
	Maintenance IMaintenance
	Route       IRoute

	RouteDetails RouteDetailsProvider
	FuelPrice    FuelPriceProvider
}

func (f *Fleet) WithServices(opts ServiceOpts) *Fleet {
	if opts.Status != nil {
		f.Status = opts.Status
	}
	if opts.Conflict != nil {
		f.Conflict = opts.Conflict
	}
	if opts.Alert != nil {
		f.Alert = opts.Alert
	}
	if opts.Vehicle != nil {
		f.Vehicle = opts.Vehicle
	}
	if opts.Driver != nil {
		f.Driver = opts.Driver
	}
	if opts.Maintenance != nil {
		f.Maintenance = opts.Maintenance
	}
	if opts.Route != nil {
		f.Route = opts.Route
	}
	if opts.RouteDetails != nil {
		f.RouteDetails = opts.RouteDetails
	}
	if opts.FuelPrice != nil {
		f.FuelPrice = opts.FuelPrice
	}
	return f
}
