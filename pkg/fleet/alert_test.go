package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/models"
	_ "fleetops.xyz/fleet-service/pkg/testing"
)

func seedAlertRule(t *testing.T, f *Fleet, profileID, serviceType string, mutate func(*models.AlertConfiguration)) *models.AlertConfiguration {
	rule := &models.AlertConfiguration{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		ServiceType: serviceType,
		IsActive:    true,
		Priority:    models.AlertPriorityMedium,
	}
	if mutate != nil {
		mutate(rule)
	}
	require.NoError(t, f.Db.Conn.Create(rule).Error)
	return rule
}

func completedRoute(t *testing.T, f *Fleet, profileID, vehicleID string, distance float64) {
	seedRoute(t, f, profileID, func(r *models.Route) {
		r.VehicleID = &vehicleID
		r.StartTime = time.Now().Add(-48 * time.Hour)
		r.EndTime = time.Now().Add(-46 * time.Hour)
		r.Status = models.ScheduleStatusCompleted
		r.ActualDistance = &distance
	})
}

func TestComputeAlertsKmThreshold(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	vehicle := seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.InitialMileage = 10000
		v.AcquisitionDate = now.Add(-24 * time.Hour)
	})
	completedRoute(t, fleetObj, profileID, vehicle.ID, 4501)

	seedAlertRule(t, fleetObj, profileID, "Troca de Óleo", func(r *models.AlertConfiguration) {
		r.KmThreshold = intPtr(4500)
		r.Priority = models.AlertPriorityHigh
	})

	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, "Troca de Óleo", alert.ServiceType)
	assert.Equal(t, "Overdue by 1 km", alert.Message)
	assert.Equal(t, 1, alert.OverdueValue)
	assert.Equal(t, OverdueUnitKm, alert.OverdueUnit)
	assert.Equal(t, models.AlertPriorityHigh, alert.Priority)
}

func TestComputeAlertsDaysThreshold(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.AcquisitionDate = now.AddDate(0, 0, -100)
	})
	seedAlertRule(t, fleetObj, profileID, "Revisão Geral", func(r *models.AlertConfiguration) {
		r.DaysThreshold = intPtr(90)
	})

	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Overdue by 10 days", alerts[0].Message)
	assert.Equal(t, OverdueUnitDays, alerts[0].OverdueUnit)
}

func TestComputeAlertsKmSuppressesDays(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	vehicle := seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.AcquisitionDate = now.AddDate(0, 0, -100)
	})
	completedRoute(t, fleetObj, profileID, vehicle.ID, 200)

	// Both thresholds exceeded; only the km alert surfaces.
	seedAlertRule(t, fleetObj, profileID, "Troca de Óleo", func(r *models.AlertConfiguration) {
		r.KmThreshold = intPtr(100)
		r.DaysThreshold = intPtr(10)
	})

	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, OverdueUnitKm, alerts[0].OverdueUnit)
	assert.Equal(t, 100, alerts[0].OverdueValue)
}

func TestComputeAlertsBaselineFromCompletedService(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	vehicle := seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.InitialMileage = 1000
		v.AcquisitionDate = now.AddDate(0, 0, -300)
	})
	completedRoute(t, fleetObj, profileID, vehicle.ID, 500)

	// The last completed service resets both baselines.
	actualEnd := now.AddDate(0, 0, -5)
	seedMaintenance(t, fleetObj, profileID, vehicle.ID, func(m *models.Maintenance) {
		m.ServiceType = "Troca de Óleo"
		m.Status = models.ScheduleStatusCompleted
		m.CurrentMileage = 1400
		m.ActualEndDate = &actualEnd
	})

	seedAlertRule(t, fleetObj, profileID, "Troca de Óleo", func(r *models.AlertConfiguration) {
		r.KmThreshold = intPtr(200)
		r.DaysThreshold = intPtr(30)
	})

	// Mileage 1500, baseline 1400: 100 km below the threshold, 5 days elapsed.
	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 0)
}

func TestComputeAlertsSkipsDisabledVehiclesAndInactiveRules(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.Status = models.VehicleStatusDisabled
		v.AcquisitionDate = now.AddDate(0, 0, -100)
	})
	seedAlertRule(t, fleetObj, profileID, "Revisão Geral", func(r *models.AlertConfiguration) {
		r.DaysThreshold = intPtr(10)
	})

	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	assert.Len(t, alerts, 0)

	seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.AcquisitionDate = now.AddDate(0, 0, -100)
	})
	seedAlertRule(t, fleetObj, profileID, "Freios", func(r *models.AlertConfiguration) {
		r.DaysThreshold = intPtr(10)
		r.IsActive = false
	})

	alerts, err = fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Revisão Geral", alerts[0].ServiceType)
}

func TestLessUrgent(t *testing.T) {
	kmHigh := &VehicleAlert{Priority: models.AlertPriorityHigh, OverdueUnit: OverdueUnitKm, OverdueValue: 1}
	daysHigh := &VehicleAlert{Priority: models.AlertPriorityHigh, OverdueUnit: OverdueUnitDays, OverdueValue: 10000}
	daysMedium := &VehicleAlert{Priority: models.AlertPriorityMedium, OverdueUnit: OverdueUnitDays, OverdueValue: 5}
	kmHighBig := &VehicleAlert{Priority: models.AlertPriorityHigh, OverdueUnit: OverdueUnitKm, OverdueValue: 300}

	// At equal priority a km alert outranks any days alert.
	assert.True(t, LessUrgent(daysHigh, kmHigh))
	assert.False(t, LessUrgent(kmHigh, daysHigh))

	// Priority dominates unit.
	assert.True(t, LessUrgent(daysMedium, daysHigh))

	// Same priority and unit: larger overdue amount is more urgent.
	assert.True(t, LessUrgent(kmHigh, kmHighBig))
}

func TestComputeAlertsOrderingAndLimit(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()
	now := time.Now()

	vehicle := seedVehicle(t, fleetObj, profileID, func(v *models.Vehicle) {
		v.AcquisitionDate = now.AddDate(0, 0, -100)
	})
	completedRoute(t, fleetObj, profileID, vehicle.ID, 101)

	// High-priority km alert overdue by 1.
	seedAlertRule(t, fleetObj, profileID, "Troca de Óleo", func(r *models.AlertConfiguration) {
		r.KmThreshold = intPtr(100)
		r.Priority = models.AlertPriorityHigh
	})
	// High-priority days alert overdue by 90.
	seedAlertRule(t, fleetObj, profileID, "Revisão Geral", func(r *models.AlertConfiguration) {
		r.DaysThreshold = intPtr(10)
		r.Priority = models.AlertPriorityHigh
	})
	// Medium-priority days alert.
	seedAlertRule(t, fleetObj, profileID, "Freios", func(r *models.AlertConfiguration) {
		r.DaysThreshold = intPtr(10)
		r.Priority = models.AlertPriorityMedium
	})

	alerts, err := fleetObj.Alert.ComputeAlerts(profileID, now, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// The small km overshoot still outranks the large days overshoot.
	assert.Equal(t, "Troca de Óleo", alerts[0].ServiceType)
	assert.Equal(t, "Revisão Geral", alerts[1].ServiceType)
	assert.Equal(t, "Freios", alerts[2].ServiceType)

	limited, err := fleetObj.Alert.ComputeAlerts(profileID, now, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "Troca de Óleo", limited[0].ServiceType)
}

func TestEnsureDefaultConfigsIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()

	require.NoError(t, fleetObj.Alert.EnsureDefaultConfigs(profileID))
	require.NoError(t, fleetObj.Alert.EnsureDefaultConfigs(profileID))

	configs, err := fleetObj.Alert.GetConfigs(profileID)
	require.NoError(t, err)
	assert.Len(t, configs, len(DefaultServiceCatalog))

	for _, config := range configs {
		assert.True(t, config.IsActive)
		assert.Equal(t, models.AlertPriorityMedium, config.Priority)
		assert.Nil(t, config.KmThreshold)
		assert.Nil(t, config.DaysThreshold)
	}
}

func TestEnsureDefaultConfigsKeepsCustomizations(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()

	require.NoError(t, fleetObj.Alert.UpsertConfig(profileID, &models.AlertConfiguration{
		ServiceType: "Troca de Óleo",
		KmThreshold: intPtr(7000),
		IsActive:    true,
		Priority:    models.AlertPriorityHigh,
	}))
	require.NoError(t, fleetObj.Alert.EnsureDefaultConfigs(profileID))

	configs, err := fleetObj.Alert.GetConfigs(profileID)
	require.NoError(t, err)
	assert.Len(t, configs, len(DefaultServiceCatalog))

	for _, config := range configs {
		if config.ServiceType == "Troca de Óleo" {
			require.NotNil(t, config.KmThreshold)
			assert.Equal(t, 7000, *config.KmThreshold)
			assert.Equal(t, models.AlertPriorityHigh, config.Priority)
		}
	}
}

func TestUpsertConfigOverwrites(t *testing.T) {
	common.SetTestLoggerNop()

	fleetObj := GetFleetWithMemorySqliteDialector(t)
	profileID := uuid.NewString()

	require.NoError(t, fleetObj.Alert.UpsertConfig(profileID, &models.AlertConfiguration{
		ServiceType:   "Freios",
		KmThreshold:   intPtr(5000),
		DaysThreshold: intPtr(180),
		IsActive:      true,
	}))
	require.NoError(t, fleetObj.Alert.UpsertConfig(profileID, &models.AlertConfiguration{
		ServiceType: "Freios",
		KmThreshold: intPtr(8000),
		IsActive:    false,
		Priority:    models.AlertPriorityLow,
	}))

	configs, err := fleetObj.Alert.GetConfigs(profileID)
	require.NoError(t, err)
	require.Len(t, configs, 1)

	config := configs[0]
	require.NotNil(t, config.KmThreshold)
	assert.Equal(t, 8000, *config.KmThreshold)
	assert.Nil(t, config.DaysThreshold)
	assert.False(t, config.IsActive)
	assert.Equal(t, models.AlertPriorityLow, config.Priority)
}
