package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fleetops.xyz/fleet-service/pkg/fleet/mocks"
	_ "fleetops.xyz/fleet-service/pkg/testing"

	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/db"
	"fleetops.xyz/fleet-service/pkg/fleet"
	"fleetops.xyz/fleet-service/pkg/models"
)

func setupTestServer() *RestfulServer {
	fleetObj := fleet.Fleet{
		Db: *db.GetInstance(db.UseMemorySqliteDialector()),
	}
	fleetObj.WithServices(fleet.ServiceOpts{
		Status:      fleetObj.GetIStatus(),
		Conflict:    fleetObj.GetIConflict(),
		Alert:       fleetObj.GetIAlert(),
		Vehicle:     fleetObj.GetIVehicle(),
		Driver:      fleetObj.GetIDriver(),
		Maintenance: fleetObj.GetIMaintenance(),
		Route:       fleetObj.GetIRoute(),
	})

	rs := &RestfulServer{
		Server: gin.Default(),
		Fleet:  &fleetObj,
		// default we use no limiter, if need, later assign it rs.RateLimiterStore = fleet.NewRateLimiterStore(...)
	}

	rs.Setup()

	return rs
}

func setupTestServerWithProviders(details fleet.RouteDetailsProvider, fuel fleet.FuelPriceProvider) *RestfulServer {
	rs := setupTestServer()
	rs.Fleet.WithServices(fleet.ServiceOpts{
		RouteDetails: details,
		FuelPrice:    fuel,
	})
	return rs
}

func seedHTTPVehicle(t *testing.T, rs *RestfulServer, profileID string) *models.Vehicle {
	vehicle := &models.Vehicle{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Plate:     "HTT" + uuid.NewString()[:7],
		Model:     "Test Truck",
		Year:      2021,
		Status:    models.VehicleStatusAvailable,
	}
	require.NoError(t, rs.Fleet.Db.Conn.Create(vehicle).Error)
	return vehicle
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPostVehicleAndList(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	profileID := uuid.NewString()

	vehicleReq := VehicleRequest{
		Plate: "ABC1D23",
		Model: "Volvo FH",
		Year:  2021,
	}
	body, _ := json.Marshal(vehicleReq)

	req := httptest.NewRequest("POST", "/profiles/"+profileID+"/vehicles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Vehicle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ABC1D23", created.Plate)
	assert.NotEmpty(t, created.ID)

	listReq := httptest.NewRequest("GET", "/profiles/"+profileID+"/vehicles", nil)
	listW := httptest.NewRecorder()
	rs.Server.ServeHTTP(listW, listReq)

	require.Equal(t, http.StatusOK, listW.Code)

	var listed []VehicleResponse
	require.NoError(t, json.Unmarshal(listW.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "available", listed[0].DynamicStatus)
	assert.Equal(t, 0, listed[0].Mileage)
}

func TestPostVehicle_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		rs := setupTestServer()
		profileID := uuid.NewString()
		// empty payload should be rejected
		payload := []byte("{}")
		req := httptest.NewRequest("POST", "/profiles/"+profileID+"/vehicles", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		rs := setupTestServer()
		profileID := uuid.NewString()
		// duplicate plate within a profile is a field error
		vehicleReq := VehicleRequest{Plate: "DUP1A23", Year: 2020}
		body, _ := json.Marshal(vehicleReq)

		req := httptest.NewRequest("POST", "/profiles/"+profileID+"/vehicles", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest("POST", "/profiles/"+profileID+"/vehicles", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "plate")
	}
}

func TestPostRouteWithProviders(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDetails := mocks.NewMockRouteDetailsProvider(ctrl)
	mockFuel := mocks.NewMockFuelPriceProvider(ctrl)
	mockDetails.EXPECT().
		Details(gomock.Any(), gomock.Eq("Curitiba, PR"), gomock.Eq("São Paulo, SP")).
		Return(&fleet.RouteDetails{DistanceKm: 408.5, TollCost: 37.9}, nil).
		Times(1)
	mockFuel.EXPECT().
		DieselPrice(gomock.Any(), gomock.Eq("PR")).
		Return(5.89, nil).
		Times(1)

	rs := setupTestServerWithProviders(mockDetails, mockFuel)
	profileID := uuid.NewString()
	vehicle := seedHTTPVehicle(t, rs, profileID)

	routeReq := RouteRequest{
		VehicleID:     &vehicle.ID,
		StartLocation: "Curitiba, PR",
		EndLocation:   "São Paulo, SP",
		StartTime:     time.Now().Add(time.Hour),
		EndTime:       time.Now().Add(6 * time.Hour),
	}
	body, _ := json.Marshal(routeReq)

	req := httptest.NewRequest("POST", "/profiles/"+profileID+"/routes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Route
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.EstimatedDistance)
	assert.InDelta(t, 408.5, *created.EstimatedDistance, 0.001)
	require.NotNil(t, created.FuelPricePerLiter)
	assert.InDelta(t, 5.89, *created.FuelPricePerLiter, 0.001)
}

func TestPostRoute_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		// unknown locality is a field error, providers never called
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rs := setupTestServerWithProviders(
			mocks.NewMockRouteDetailsProvider(ctrl),
			mocks.NewMockFuelPriceProvider(ctrl),
		)
		profileID := uuid.NewString()

		routeReq := RouteRequest{
			StartLocation: "Nowhere",
			EndLocation:   "São Paulo, SP",
			StartTime:     time.Now().Add(time.Hour),
			EndTime:       time.Now().Add(3 * time.Hour),
		}
		body, _ := json.Marshal(routeReq)

		req := httptest.NewRequest("POST", "/profiles/"+profileID+"/routes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "start_location")
	}

	{
		// provider failure surfaces as bad gateway with the provider's text
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockDetails := mocks.NewMockRouteDetailsProvider(ctrl)
		mockDetails.EXPECT().
			Details(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fleet.NewProviderError("connection error")).
			Times(1)
		rs := setupTestServerWithProviders(mockDetails, mocks.NewMockFuelPriceProvider(ctrl))
		profileID := uuid.NewString()

		routeReq := RouteRequest{
			StartLocation: "Curitiba, PR",
			EndLocation:   "São Paulo, SP",
			StartTime:     time.Now().Add(time.Hour),
			EndTime:       time.Now().Add(3 * time.Hour),
		}
		body, _ := json.Marshal(routeReq)

		req := httptest.NewRequest("POST", "/profiles/"+profileID+"/routes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"connection error"}`, w.Body.String())
	}
}

func TestPostRouteConflict(t *testing.T) {
	common.SetTestLoggerNop()

	// No expectations set: a conflicting window must be rejected before any
	// provider call is made.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	rs := setupTestServerWithProviders(
		mocks.NewMockRouteDetailsProvider(ctrl),
		mocks.NewMockFuelPriceProvider(ctrl),
	)

	profileID := uuid.NewString()
	vehicle := seedHTTPVehicle(t, rs, profileID)

	start := time.Now().Add(time.Hour)
	end := start.Add(4 * time.Hour)
	existing := &models.Route{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		VehicleID:     &vehicle.ID,
		StartLocation: "Curitiba, PR",
		EndLocation:   "São Paulo, SP",
		StartTime:     start,
		EndTime:       end,
		Status:        models.ScheduleStatusScheduled,
	}
	require.NoError(t, rs.Fleet.Db.Conn.Create(existing).Error)

	routeReq := RouteRequest{
		VehicleID:     &vehicle.ID,
		StartLocation: "Curitiba, PR",
		EndLocation:   "São Paulo, SP",
		StartTime:     start.Add(time.Hour),
		EndTime:       end.Add(time.Hour),
	}
	body, _ := json.Marshal(routeReq)

	req := httptest.NewRequest("POST", "/profiles/"+profileID+"/routes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), vehicle.Plate)
}

func TestPostMaintenanceCompleteWarning(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	profileID := uuid.NewString()
	vehicle := seedHTTPVehicle(t, rs, profileID)

	estimated := 300.0
	maintenance := &models.Maintenance{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		VehicleID:     vehicle.ID,
		ServiceType:   "Troca de Óleo",
		StartDate:     time.Now().Add(-3 * time.Hour),
		EndDate:       time.Now().Add(-time.Hour),
		EstimatedCost: &estimated,
		Status:        models.ScheduleStatusScheduled,
	}
	require.NoError(t, rs.Fleet.Db.Conn.Create(maintenance).Error)

	actual := 452.75
	completeReq := MaintenanceCompleteRequest{
		ActualCost:    &actual,
		ActualEndDate: time.Now(),
	}
	body, _ := json.Marshal(completeReq)

	req := httptest.NewRequest("POST", "/profiles/"+profileID+"/maintenances/"+maintenance.ID+"/complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Maintenance models.Maintenance `json:"maintenance"`
		Warning     string             `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.ScheduleStatusCompleted, response.Maintenance.Status)
	assert.NotEmpty(t, response.Warning)
}

func TestGetAlertsAndConfigs(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	profileID := uuid.NewString()

	req := httptest.NewRequest("GET", "/profiles/"+profileID+"/alerts", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var alertBody struct {
		Alerts []fleet.VehicleAlert `json:"alerts"`
		Stats  map[string]int       `json:"stats"`
		Total  int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alertBody))
	assert.Equal(t, 0, alertBody.Total)
	assert.Equal(t, 0, alertBody.Stats["high"])

	// The first alert request seeds the default rule catalog
	configReq := httptest.NewRequest("GET", "/profiles/"+profileID+"/alert-configs", nil)
	configW := httptest.NewRecorder()
	rs.Server.ServeHTTP(configW, configReq)

	require.Equal(t, http.StatusOK, configW.Code)

	var configs []models.AlertConfiguration
	require.NoError(t, json.Unmarshal(configW.Body.Bytes(), &configs))
	assert.Len(t, configs, 5)
}

func TestPutAlertConfig(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	profileID := uuid.NewString()

	threshold := 7000
	upsertReq := AlertConfigRequest{
		ServiceType: "Troca de Óleo",
		KmThreshold: &threshold,
		IsActive:    true,
		Priority:    "high",
	}
	body, _ := json.Marshal(upsertReq)

	req := httptest.NewRequest("PUT", "/profiles/"+profileID+"/alert-configs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var config models.AlertConfiguration
	err := rs.Fleet.Db.Conn.
		Where("profile_id = ? AND service_type = ?", profileID, "Troca de Óleo").
		First(&config).Error
	require.NoError(t, err)
	require.NotNil(t, config.KmThreshold)
	assert.Equal(t, 7000, *config.KmThreshold)
	assert.Equal(t, models.AlertPriorityHigh, config.Priority)
}

func TestGetDashboard(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	profileID := uuid.NewString()
	seedHTTPVehicle(t, rs, profileID)

	req := httptest.NewRequest("GET", "/profiles/"+profileID+"/dashboard", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var overview fleet.Overview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.Vehicles.Total)
	assert.Equal(t, 1, overview.Vehicles.Available)
}

func setupTestServerWithLimiter(limiter *fleet.RateLimiterStore) *RestfulServer {
	rs := setupTestServer()
	rs.RateLimiterStore = limiter
	return rs
}

func TestRequestsWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(fleet.NewRateLimiterStore(2, 2))

	profileID := uuid.NewString()

	// Simulate 3 requests in quick succession — only 2 should be allowed
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/profiles/"+profileID+"/vehicles", nil)
		w := httptest.NewRecorder()

		rs.Server.ServeHTTP(w, req)

		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	limiterReq := LimiterRequest{
		Rate:  2,
		Burst: 2,
	}
	limiterReqBody, _ := json.Marshal(limiterReq)
	req := httptest.NewRequest(http.MethodPost, "/profiles/"+profileID+"/limiter", bytes.NewReader(limiterReqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	req = httptest.NewRequest("GET", "/profiles/"+profileID+"/vehicles", nil)
	w = httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "request after limiter reset should be allowed")
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(fleet.NewRateLimiterStore(2, 2))

	profileID := uuid.NewString()

	// empty payload should be rejected
	payload := []byte("{}")
	req := httptest.NewRequest("POST", "/profiles/"+profileID+"/limiter", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(fleet.NewRateLimiterStore(0, 0))

	profileID := uuid.NewString()

	// nothing should pass below
	{
		req := httptest.NewRequest("GET", "/profiles/"+profileID+"/vehicles", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}

	{
		req := httptest.NewRequest("GET", "/profiles/"+profileID+"/alerts", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}

	{
		req := httptest.NewRequest("GET", "/profiles/"+profileID+"/dashboard", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	}
}

func TestSetLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer() // default without limiter store

	profileID := uuid.NewString()

	{
		// without limiter store setup limiter should be allowed and just return ok (but no effect)
		limiterReq := LimiterRequest{
			Rate:  2,
			Burst: 2,
		}
		limiterReqBody, _ := json.Marshal(limiterReq)
		req := httptest.NewRequest(http.MethodPost, "/profiles/"+profileID+"/limiter", bytes.NewReader(limiterReqBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		rs.Server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")
	}

	{
		// and listing should return an empty set instead of too many requests
		req := httptest.NewRequest("GET", "/profiles/"+profileID+"/vehicles", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
