package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetops.xyz/fleet-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"fleetops.xyz/fleet-service/pkg/fleet"
)

type VehicleRequest struct {
	Plate                  string    `json:"plate"`
	Model                  string    `json:"model"`
	Year                   int       `json:"year"`
	InitialMileage         int       `json:"initial_mileage"`
	DriverID               *string   `json:"driver_id"`
	AcquisitionDate        time.Time `json:"acquisition_date"`
	AverageFuelConsumption *float64  `json:"average_fuel_consumption"`
}

var vehicleRequestSchema = z.Struct(z.Shape{
	"Plate":                  z.String().Required(),
	"Model":                  z.String().Optional(),
	"Year":                   z.Int().Required(),
	"InitialMileage":         z.Int().Optional(),
	"DriverID":               z.Ptr(z.String()),
	"AcquisitionDate":        z.Time().Optional(),
	"AverageFuelConsumption": z.Ptr(z.Float64()),
})

func (req *VehicleRequest) toModel() *models.Vehicle {
	return &models.Vehicle{
		Plate:                  req.Plate,
		Model:                  req.Model,
		Year:                   req.Year,
		InitialMileage:         req.InitialMileage,
		DriverID:               req.DriverID,
		AcquisitionDate:        req.AcquisitionDate,
		AverageFuelConsumption: req.AverageFuelConsumption,
	}
}

type VehicleResponse struct {
	Vehicle       models.Vehicle `json:"vehicle"`
	DynamicStatus string         `json:"dynamic_status"`
	Mileage       int            `json:"mileage"`
}

func (rs *RestfulServer) vehicleResponse(vehicle *models.Vehicle, now time.Time) (*VehicleResponse, error) {
	state, err := rs.Fleet.Status.VehicleDynamicStatus(vehicle, now)
	if err != nil {
		return nil, err
	}
	mileage, err := rs.Fleet.Vehicle.VehicleMileage(vehicle)
	if err != nil {
		return nil, err
	}
	return &VehicleResponse{Vehicle: *vehicle, DynamicStatus: string(state), Mileage: mileage}, nil
}

func (rs *RestfulServer) ListVehicles(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	vehicles, err := rs.Fleet.Vehicle.ListVehicles(profileID)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	now := time.Now()
	response := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		item, err := rs.vehicleResponse(&vehicles[i], now)
		if err != nil {
			rs.renderError(c, err)
			return
		}
		response = append(response, *item)
	}

	c.JSON(http.StatusOK, response)
}

func (rs *RestfulServer) PostVehicle(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req VehicleRequest
	if err := vehicleRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	vehicle, err := rs.Fleet.Vehicle.CreateVehicle(profileID, req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (rs *RestfulServer) GetVehicle(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	vehicle, err := rs.Fleet.Vehicle.GetVehicle(profileID, c.Param("vehicle_id"))
	if err != nil {
		rs.renderError(c, err)
		return
	}

	response, err := rs.vehicleResponse(vehicle, time.Now())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (rs *RestfulServer) PutVehicle(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req VehicleRequest
	if err := vehicleRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	vehicle, err := rs.Fleet.Vehicle.UpdateVehicle(profileID, c.Param("vehicle_id"), req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

type VehicleDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

var vehicleDisabledRequestSchema = z.Struct(z.Shape{
	"Disabled": z.Bool(),
})

func (rs *RestfulServer) PostVehicleDisabled(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req VehicleDisabledRequest
	if err := vehicleDisabledRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Fleet.Vehicle.SetVehicleDisabled(profileID, c.Param("vehicle_id"), req.Disabled); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type DriverRequest struct {
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	AdmissionDate time.Time `json:"admission_date"`
}

var driverRequestSchema = z.Struct(z.Shape{
	"FullName":      z.String().Required(),
	"Email":         z.String().Required(),
	"Phone":         z.String().Optional(),
	"LicenseNumber": z.String().Required(),
	"AdmissionDate": z.Time().Optional(),
})

func (req *DriverRequest) toModel() *models.Driver {
	return &models.Driver{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		AdmissionDate: req.AdmissionDate,
	}
}

func (rs *RestfulServer) ListDrivers(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	drivers, err := rs.Fleet.Driver.ListDrivers(profileID)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, drivers)
}

func (rs *RestfulServer) PostDriver(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req DriverRequest
	if err := driverRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	driver, err := rs.Fleet.Driver.CreateDriver(profileID, req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driver)
}

func (rs *RestfulServer) PutDriver(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req DriverRequest
	if err := driverRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	driver, err := rs.Fleet.Driver.UpdateDriver(profileID, c.Param("driver_id"), req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

func (rs *RestfulServer) PostDriverDeactivate(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Driver.DeactivateDriver(profileID, c.Param("driver_id"), time.Now()); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) PostDriverReactivate(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Driver.ReactivateDriver(profileID, c.Param("driver_id")); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type MaintenanceRequest struct {
	VehicleID        string    `json:"vehicle_id"`
	ServiceType      string    `json:"service_type"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	MechanicShopName string    `json:"mechanic_shop_name"`
	EstimatedCost    *float64  `json:"estimated_cost"`
	CurrentMileage   int       `json:"current_mileage"`
	Notes            string    `json:"notes"`
}

var maintenanceRequestSchema = z.Struct(z.Shape{
	"VehicleID":        z.String().Required(),
	"ServiceType":      z.String().Required(),
	"StartDate":        z.Time().Required(),
	"EndDate":          z.Time().Required(),
	"MechanicShopName": z.String().Optional(),
	"EstimatedCost":    z.Ptr(z.Float64()),
	"CurrentMileage":   z.Int().Optional(),
	"Notes":            z.String().Optional(),
})

func (req *MaintenanceRequest) toModel() *models.Maintenance {
	return &models.Maintenance{
		VehicleID:        req.VehicleID,
		ServiceType:      req.ServiceType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		MechanicShopName: req.MechanicShopName,
		EstimatedCost:    req.EstimatedCost,
		CurrentMileage:   req.CurrentMileage,
		Notes:            req.Notes,
	}
}

func (rs *RestfulServer) ListMaintenances(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	maintenances, err := rs.Fleet.Maintenance.ListMaintenances(profileID)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	type maintenanceItem struct {
		Maintenance   models.Maintenance `json:"maintenance"`
		DynamicStatus string             `json:"dynamic_status"`
	}

	now := time.Now()
	wanted := strings.TrimSpace(c.Query("status"))
	response := make([]maintenanceItem, 0, len(maintenances))
	for i := range maintenances {
		state := rs.Fleet.Status.MaintenanceDynamicStatus(&maintenances[i], now)
		if wanted != "" && wanted != string(state) {
			continue
		}
		response = append(response, maintenanceItem{
			Maintenance:   maintenances[i],
			DynamicStatus: string(state),
		})
	}

	c.JSON(http.StatusOK, response)
}

func (rs *RestfulServer) PostMaintenance(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req MaintenanceRequest
	if err := maintenanceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	maintenance, err := rs.Fleet.Maintenance.ScheduleMaintenance(profileID, req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, maintenance)
}

func (rs *RestfulServer) PutMaintenance(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req MaintenanceRequest
	if err := maintenanceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	maintenance, err := rs.Fleet.Maintenance.UpdateMaintenance(profileID, c.Param("maintenance_id"), req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, maintenance)
}

type MaintenanceCompleteRequest struct {
	ActualCost    *float64  `json:"actual_cost"`
	ActualEndDate time.Time `json:"actual_end_date"`
}

var maintenanceCompleteRequestSchema = z.Struct(z.Shape{
	"ActualCost":    z.Ptr(z.Float64()),
	"ActualEndDate": z.Time().Required(),
})

func (rs *RestfulServer) PostMaintenanceComplete(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req MaintenanceCompleteRequest
	if err := maintenanceCompleteRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Fleet.Maintenance.CompleteMaintenance(profileID, c.Param("maintenance_id"), &fleet.MaintenanceCompletion{
		ActualCost:    req.ActualCost,
		ActualEndDate: req.ActualEndDate,
	})
	if err != nil {
		rs.renderError(c, err)
		return
	}

	response := gin.H{"maintenance": result.Maintenance}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}
	c.JSON(http.StatusOK, response)
}

func (rs *RestfulServer) PostMaintenanceCancel(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Maintenance.CancelMaintenance(profileID, c.Param("maintenance_id")); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type RouteRequest struct {
	VehicleID     *string   `json:"vehicle_id"`
	DriverID      *string   `json:"driver_id"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

var routeRequestSchema = z.Struct(z.Shape{
	"VehicleID":     z.Ptr(z.String()),
	"DriverID":      z.Ptr(z.String()),
	"StartLocation": z.String().Required(),
	"EndLocation":   z.String().Required(),
	"StartTime":     z.Time().Required(),
	"EndTime":       z.Time().Required(),
})

func (req *RouteRequest) toModel() *models.Route {
	return &models.Route{
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
}

func (rs *RestfulServer) ListRoutes(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	routes, err := rs.Fleet.Route.ListRoutes(profileID)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	type routeItem struct {
		Route             models.Route `json:"route"`
		DynamicStatus     string       `json:"dynamic_status"`
		Progress          int          `json:"progress"`
		EstimatedFuelCost *float64     `json:"estimated_fuel_cost"`
	}

	now := time.Now()
	response := make([]routeItem, 0, len(routes))
	for i := range routes {
		fuelCost, err := rs.Fleet.Route.EstimatedFuelCost(&routes[i])
		if err != nil {
			rs.renderError(c, err)
			return
		}
		response = append(response, routeItem{
			Route:             routes[i],
			DynamicStatus:     string(rs.Fleet.Status.RouteDynamicStatus(&routes[i], now)),
			Progress:          rs.Fleet.Status.RouteProgress(&routes[i], now),
			EstimatedFuelCost: fuelCost,
		})
	}

	c.JSON(http.StatusOK, response)
}

func (rs *RestfulServer) PostRoute(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req RouteRequest
	if err := routeRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	route, err := rs.Fleet.Route.CreateRoute(profileID, req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

func (rs *RestfulServer) PutRoute(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req RouteRequest
	if err := routeRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	route, err := rs.Fleet.Route.UpdateRoute(profileID, c.Param("route_id"), req.toModel())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

type RouteCompleteRequest struct {
	ActualDistance *float64 `json:"actual_distance"`
}

var routeCompleteRequestSchema = z.Struct(z.Shape{
	"ActualDistance": z.Ptr(z.Float64()),
})

func (rs *RestfulServer) PostRouteComplete(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req RouteCompleteRequest
	if err := routeCompleteRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	route, err := rs.Fleet.Route.CompleteRoute(profileID, c.Param("route_id"), req.ActualDistance)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

func (rs *RestfulServer) PostRouteCancel(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Route.CancelRoute(profileID, c.Param("route_id")); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) PostRouteReactivate(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Route.ReactivateRoute(profileID, c.Param("route_id")); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetAlerts recomputes the profile's maintenance alerts. Default alert rules
// are ensured first so a fresh profile gets the standard catalog. Supports
// ?q= free text over plate/model/service type, ?priority= exact match and
// ?limit=.
func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Alert.EnsureDefaultConfigs(profileID); err != nil {
		rs.renderError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"limit": "must be a non-negative integer"}})
			return
		}
		limit = parsed
	}

	alerts, err := rs.Fleet.Alert.ComputeAlerts(profileID, time.Now(), limit)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	priority := strings.TrimSpace(c.Query("priority"))

	filtered := make([]fleet.VehicleAlert, 0, len(alerts))
	stats := gin.H{"high": 0, "medium": 0, "low": 0}
	counts := map[models.AlertPriority]int{}
	for _, alert := range alerts {
		if priority != "" && priority != string(alert.Priority) {
			continue
		}
		if query != "" && !alertMatches(&alert, query) {
			continue
		}
		filtered = append(filtered, alert)
		counts[alert.Priority]++
	}
	stats["high"] = counts[models.AlertPriorityHigh]
	stats["medium"] = counts[models.AlertPriorityMedium]
	stats["low"] = counts[models.AlertPriorityLow]

	c.JSON(http.StatusOK, gin.H{
		"alerts": filtered,
		"stats":  stats,
		"total":  len(filtered),
	})
}

func alertMatches(alert *fleet.VehicleAlert, query string) bool {
	return strings.Contains(strings.ToLower(alert.Vehicle.Plate), query) ||
		strings.Contains(strings.ToLower(alert.Vehicle.Model), query) ||
		strings.Contains(strings.ToLower(alert.ServiceType), query)
}

func (rs *RestfulServer) GetAlertConfigs(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if err := rs.Fleet.Alert.EnsureDefaultConfigs(profileID); err != nil {
		rs.renderError(c, err)
		return
	}

	configs, err := rs.Fleet.Alert.GetConfigs(profileID)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, configs)
}

type AlertConfigRequest struct {
	ServiceType   string `json:"service_type"`
	KmThreshold   *int   `json:"km_threshold"`
	DaysThreshold *int   `json:"days_threshold"`
	IsActive      bool   `json:"is_active"`
	Priority      string `json:"priority"`
}

var alertConfigRequestSchema = z.Struct(z.Shape{
	"ServiceType":   z.String().Required(),
	"KmThreshold":   z.Ptr(z.Int()),
	"DaysThreshold": z.Ptr(z.Int()),
	"IsActive":      z.Bool(),
	"Priority":      z.String().Required(),
})

func (rs *RestfulServer) PutAlertConfig(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req AlertConfigRequest
	if err := alertConfigRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	config := models.AlertConfiguration{
		ServiceType:   req.ServiceType,
		KmThreshold:   req.KmThreshold,
		DaysThreshold: req.DaysThreshold,
		IsActive:      req.IsActive,
		Priority:      models.AlertPriority(req.Priority),
	}

	if err := rs.Fleet.Alert.UpsertConfig(profileID, &config); err != nil {
		rs.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetDashboard(c *gin.Context) {
	profileID := c.Param("profile_id")

	if !rs.CheckProfileLimiter(profileID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	overview, err := rs.Fleet.ProfileOverview(profileID, time.Now())
	if err != nil {
		rs.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	profileID := c.Param("profile_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(profileID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
