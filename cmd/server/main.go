package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fleetops.xyz/fleet-service/config"
	"fleetops.xyz/fleet-service/pkg/common"
	"fleetops.xyz/fleet-service/pkg/db"
	"fleetops.xyz/fleet-service/pkg/fleet"
	fleetHttp "fleetops.xyz/fleet-service/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	fleetDbType := os.Getenv(common.EnvKeyFleetDBType)
	switch fleetDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FLEET_DB_TYPE: " + fleetDbType)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := common.GetLogger()

	providerTimeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second

	fleetCore := fleet.Fleet{
		Db: *dbInstance,
	}
	fleetCore.WithServices(fleet.ServiceOpts{
		Status:      fleetCore.GetIStatus(),
		Conflict:    fleetCore.GetIConflict(),
		Alert:       fleetCore.GetIAlert(),
		Vehicle:     fleetCore.GetIVehicle(),
		Driver:      fleetCore.GetIDriver(),
		Maintenance: fleetCore.GetIMaintenance(),
		Route:       fleetCore.GetIRoute(),

		RouteDetails: fleet.NewRoutesAPIProvider(cfg.Providers.RoutesBaseURL, cfg.Providers.RoutesAPIKey, providerTimeout),
		FuelPrice:    fleet.NewFuelAPIProvider(cfg.Providers.FuelPriceBaseURL, providerTimeout),
	})

	rs := &fleetHttp.RestfulServer{
		Server:           gin.Default(),
		Fleet:            &fleetCore,
		RateLimiterStore: fleet.NewRateLimiterStore(rate.Limit(cfg.Limiter.Rate), cfg.Limiter.Burst),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.Limiter.Rate, cfg.Limiter.Burst)))

	logger.Info("Starting HTTP server on: " + cfg.Server.Port)
	if err := rs.Server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
