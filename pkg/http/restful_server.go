package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"fleetops.xyz/fleet-service/pkg/fleet"
)

type RestfulServer struct {
	Server           *gin.Engine
	Fleet            *fleet.Fleet
	RateLimiterStore *fleet.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(profileID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(profileID)
	}
}

func (rs *RestfulServer) CheckProfileLimiter(profileID string) bool {
	limiter := rs.GetLimiter(profileID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(profileID string, profileRate float64, profileBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(profileID, rate.Limit(profileRate), profileBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	profiles := rs.Server.Group("/profiles/:profile_id")
	{
		profiles.GET("/vehicles", rs.ListVehicles)
		profiles.POST("/vehicles", rs.PostVehicle)
		profiles.GET("/vehicles/:vehicle_id", rs.GetVehicle)
		profiles.PUT("/vehicles/:vehicle_id", rs.PutVehicle)
		profiles.POST("/vehicles/:vehicle_id/disabled", rs.PostVehicleDisabled)

		profiles.GET("/drivers", rs.ListDrivers)
		profiles.POST("/drivers", rs.PostDriver)
		profiles.PUT("/drivers/:driver_id", rs.PutDriver)
		profiles.POST("/drivers/:driver_id/deactivate", rs.PostDriverDeactivate)
		profiles.POST("/drivers/:driver_id/reactivate", rs.PostDriverReactivate)

		profiles.GET("/maintenances", rs.ListMaintenances)
		profiles.POST("/maintenances", rs.PostMaintenance)
		profiles.PUT("/maintenances/:maintenance_id", rs.PutMaintenance)
		profiles.POST("/maintenances/:maintenance_id/complete", rs.PostMaintenanceComplete)
		profiles.POST("/maintenances/:maintenance_id/cancel", rs.PostMaintenanceCancel)

		profiles.GET("/routes", rs.ListRoutes)
		profiles.POST("/routes", rs.PostRoute)
		profiles.PUT("/routes/:route_id", rs.PutRoute)
		profiles.POST("/routes/:route_id/complete", rs.PostRouteComplete)
		profiles.POST("/routes/:route_id/cancel", rs.PostRouteCancel)
		profiles.POST("/routes/:route_id/reactivate", rs.PostRouteReactivate)

		profiles.GET("/alerts", rs.GetAlerts)
		profiles.GET("/alert-configs", rs.GetAlertConfigs)
		profiles.PUT("/alert-configs", rs.PutAlertConfig)

		profiles.GET("/dashboard", rs.GetDashboard)
		profiles.POST("/limiter", rs.PostLimiter)
	}
}

// renderError maps domain errors onto HTTP statuses: field validation
// problems to 400 with a field map, scheduling conflicts to 409, costing
// provider failures to 502 with the provider's own text.
func (rs *RestfulServer) renderError(c *gin.Context, err error) {
	if ve, ok := fleet.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{ve.Field: ve.Reason}})
		return
	}
	if ce, ok := fleet.AsConflictError(err); ok {
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
		return
	}
	if pe, ok := fleet.AsProviderError(err); ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": pe.Message})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
