package fleet

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"fleetops.xyz/fleet-service/pkg/db"
	"fleetops.xyz/fleet-service/pkg/models"
)

func GetFleetWithMemorySqliteDialector(t *testing.T) *Fleet {
	dbInstance := db.GetInstance(db.UseMemorySqliteDialector())
	fleetInstance := &Fleet{Db: *dbInstance}

	fleetInstance.WithServices(ServiceOpts{
		Status:      fleetInstance.GetIStatus(),
		Conflict:    fleetInstance.GetIConflict(),
		Alert:       fleetInstance.GetIAlert(),
		Vehicle:     fleetInstance.GetIVehicle(),
		Driver:      fleetInstance.GetIDriver(),
		Maintenance: fleetInstance.GetIMaintenance(),
		Route:       fleetInstance.GetIRoute(),
	})

	return fleetInstance
}

// stubRouteDetails is a canned RouteDetailsProvider for tests that exercise
// the route write path without a network.
type stubRouteDetails struct {
	details *RouteDetails
	err     error
	calls   int
}

func (s *stubRouteDetails) Details(_ context.Context, _, _ string) (*RouteDetails, error) {
	s.calls++
	return s.details, s.err
}

type stubFuelPrice struct {
	price  float64
	err    error
	lastUF string
}

func (s *stubFuelPrice) DieselPrice(_ context.Context, uf string) (float64, error) {
	s.lastUF = uf
	return s.price, s.err
}

func seedVehicle(t *testing.T, f *Fleet, profileID string, mutate func(*models.Vehicle)) *models.Vehicle {
	vehicle := &models.Vehicle{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Plate:     "ABC" + uuid.NewString()[:7],
		Model:     "Test Truck",
		Year:      2020,
		Status:    models.VehicleStatusAvailable,
	}
	if mutate != nil {
		mutate(vehicle)
	}
	require.NoError(t, f.Db.Conn.Create(vehicle).Error)
	return vehicle
}

func seedDriver(t *testing.T, f *Fleet, profileID string, mutate func(*models.Driver)) *models.Driver {
	driver := &models.Driver{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		FullName:      "Test Driver",
		Email:         uuid.NewString()[:8] + "@example.com",
		LicenseNumber: uuid.NewString()[:11],
		IsActive:      true,
	}
	if mutate != nil {
		mutate(driver)
	}
	require.NoError(t, f.Db.Conn.Create(driver).Error)
	return driver
}

func seedRoute(t *testing.T, f *Fleet, profileID string, mutate func(*models.Route)) *models.Route {
	route := &models.Route{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		StartLocation: "Curitiba, PR",
		EndLocation:   "São Paulo, SP",
		StartTime:     time.Now().Add(time.Hour),
		EndTime:       time.Now().Add(3 * time.Hour),
		Status:        models.ScheduleStatusScheduled,
	}
	if mutate != nil {
		mutate(route)
	}
	require.NoError(t, f.Db.Conn.Create(route).Error)
	return route
}

func seedMaintenance(t *testing.T, f *Fleet, profileID, vehicleID string, mutate func(*models.Maintenance)) *models.Maintenance {
	maintenance := &models.Maintenance{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		VehicleID:   vehicleID,
		ServiceType: "Troca de Óleo",
		StartDate:   time.Now().Add(time.Hour),
		EndDate:     time.Now().Add(3 * time.Hour),
		Status:      models.ScheduleStatusScheduled,
	}
	if mutate != nil {
		mutate(maintenance)
	}
	require.NoError(t, f.Db.Conn.Create(maintenance).Error)
	return maintenance
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
