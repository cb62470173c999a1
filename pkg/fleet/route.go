package fleet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
)

// createRoute validates the window and locations, fetches the costing data
// from the external providers, and only then persists. A provider failure
// aborts before anything is written.
func (f *Fleet) createRoute(profileID string, input *models.Route) (*models.Route, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryRoute),
	)

	now := time.Now()
	candidate := &RouteCandidate{
		VehicleID:     input.VehicleID,
		DriverID:      input.DriverID,
		StartLocation: input.StartLocation,
		EndLocation:   input.EndLocation,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
	}
	if err := f.validateRouteWindow(profileID, candidate); err != nil {
		return nil, err
	}

	estimate, err := f.fetchEstimates(input.StartLocation, input.EndLocation)
	if err != nil {
		return nil, err
	}

	route := models.Route{
		ID:                uuid.NewString(),
		ProfileID:         profileID,
		VehicleID:         input.VehicleID,
		DriverID:          input.DriverID,
		StartLocation:     input.StartLocation,
		EndLocation:       input.EndLocation,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		Status:            models.ScheduleStatusScheduled,
		EstimatedDistance: &estimate.details.DistanceKm,
		EstimatedTollCost: &estimate.details.TollCost,
		FuelPricePerLiter: &estimate.fuelPrice,
	}
	normalizeRouteStatus(&route, now)

	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := f.validateRouteWindowTx(tx, profileID, candidate); err != nil {
			return err
		}
		return tx.Create(&route).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Route created",
		zap.String("route_id", route.ID),
		zap.Float64("estimated_distance", estimate.details.DistanceKm),
		zap.Float64("toll_cost", estimate.details.TollCost),
		zap.Float64("fuel_price", estimate.fuelPrice))
	return &route, nil
}

func (f *Fleet) updateRoute(profileID, routeID string, input *models.Route) (*models.Route, error) {
	var route models.Route
	err := f.Db.Conn.First(&route, "id = ? AND profile_id = ?", routeID, profileID).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	candidate := &RouteCandidate{
		VehicleID:     input.VehicleID,
		DriverID:      input.DriverID,
		StartLocation: input.StartLocation,
		EndLocation:   input.EndLocation,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		ExcludeID:     routeID,
	}
	if err := f.validateRouteWindow(profileID, candidate); err != nil {
		return nil, err
	}

	estimate, err := f.fetchEstimates(input.StartLocation, input.EndLocation)
	if err != nil {
		return nil, err
	}

	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := f.validateRouteWindowTx(tx, profileID, candidate); err != nil {
			return err
		}

		route.VehicleID = input.VehicleID
		route.DriverID = input.DriverID
		route.StartLocation = input.StartLocation
		route.EndLocation = input.EndLocation
		route.StartTime = input.StartTime
		route.EndTime = input.EndTime
		route.EstimatedDistance = &estimate.details.DistanceKm
		route.EstimatedTollCost = &estimate.details.TollCost
		route.FuelPricePerLiter = &estimate.fuelPrice
		normalizeRouteStatus(&route, now)
		return tx.Save(&route).Error
	})
	if err != nil {
		return nil, err
	}
	return &route, nil
}

type routeEstimate struct {
	details   *RouteDetails
	fuelPrice float64
}

func (f *Fleet) fetchEstimates(startLocation, endLocation string) (*routeEstimate, error) {
	details, err := f.RouteDetails.Details(context.Background(), startLocation, endLocation)
	if err != nil {
		return nil, err
	}

	uf, err := RegionCode(startLocation)
	if err != nil {
		return nil, err
	}
	fuelPrice, err := f.FuelPrice.DieselPrice(context.Background(), uf)
	if err != nil {
		return nil, err
	}

	return &routeEstimate{details: details, fuelPrice: fuelPrice}, nil
}

// completeRoute records the real mileage and transitions the route to
// completed. An absent or non-positive actual distance is backfilled from the
// estimate; when no distance is available at all the completion is reverted by
// the normalization guard.
func (f *Fleet) completeRoute(profileID, routeID string, actualDistance *float64) (*models.Route, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryRoute),
	)

	var route models.Route
	err := f.Db.Conn.First(&route, "id = ? AND profile_id = ?", routeID, profileID).Error
	if err != nil {
		return nil, err
	}

	if actualDistance != nil && *actualDistance > 0 {
		route.ActualDistance = actualDistance
	} else {
		route.ActualDistance = route.EstimatedDistance
	}
	route.Status = models.ScheduleStatusCompleted
	normalizeRouteStatus(&route, time.Now())

	if err := f.Db.Conn.Save(&route).Error; err != nil {
		return nil, err
	}
	logger.Info("Route completed", zap.String("route_id", route.ID), zap.String("status", string(route.Status)))
	return &route, nil
}

func (f *Fleet) cancelRoute(profileID, routeID string) error {
	return f.setRouteStatus(profileID, routeID, models.ScheduleStatusCanceled)
}

func (f *Fleet) reactivateRoute(profileID, routeID string) error {
	return f.setRouteStatus(profileID, routeID, models.ScheduleStatusScheduled)
}

func (f *Fleet) setRouteStatus(profileID, routeID string, status models.ScheduleStatus) error {
	var route models.Route
	err := f.Db.Conn.First(&route, "id = ? AND profile_id = ?", routeID, profileID).Error
	if err != nil {
		return err
	}

	route.Status = status
	normalizeRouteStatus(&route, time.Now())
	return f.Db.Conn.Save(&route).Error
}

func (f *Fleet) listRoutes(profileID string) ([]models.Route, error) {
	var routes []models.Route
	err := f.Db.Conn.
		Where("profile_id = ?", profileID).
		Order("start_time DESC").
		Find(&routes).Error
	return routes, err
}

// estimatedFuelCost = distance / vehicle consumption * price per liter, when
// every input is present.
func (f *Fleet) estimatedFuelCost(route *models.Route) (*float64, error) {
	if route.EstimatedDistance == nil || route.FuelPricePerLiter == nil || route.VehicleID == nil {
		return nil, nil
	}

	var vehicle models.Vehicle
	err := f.Db.Conn.First(&vehicle, "id = ?", *route.VehicleID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if vehicle.AverageFuelConsumption == nil || *vehicle.AverageFuelConsumption <= 0 {
		return nil, nil
	}

	liters := *route.EstimatedDistance / *vehicle.AverageFuelConsumption
	cost := liters * *route.FuelPricePerLiter
	return &cost, nil
}

type IRouteImpl struct {
	fleet *Fleet
}

func (ir *IRouteImpl) CreateRoute(profileID string, input *models.Route) (*models.Route, error) {
	return ir.fleet.createRoute(profileID, input)
}

func (ir *IRouteImpl) UpdateRoute(profileID, routeID string, input *models.Route) (*models.Route, error) {
	return ir.fleet.updateRoute(profileID, routeID, input)
}

func (ir *IRouteImpl) CompleteRoute(profileID, routeID string, actualDistance *float64) (*models.Route, error) {
	return ir.fleet.completeRoute(profileID, routeID, actualDistance)
}

func (ir *IRouteImpl) CancelRoute(profileID, routeID string) error {
	return ir.fleet.cancelRoute(profileID, routeID)
}

func (ir *IRouteImpl) ReactivateRoute(profileID, routeID string) error {
	return ir.fleet.reactivateRoute(profileID, routeID)
}

func (ir *IRouteImpl) ListRoutes(profileID string) ([]models.Route, error) {
	return ir.fleet.listRoutes(profileID)
}

func (ir *IRouteImpl) EstimatedFuelCost(route *models.Route) (*float64, error) {
	return ir.fleet.estimatedFuelCost(route)
}

func (f *Fleet) GetIRoute() IRoute {
	return &IRouteImpl{fleet: f}
}
