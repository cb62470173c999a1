package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFleetDBType string = "FLEET_DB_TYPE"
	EnvKeyFleetDbPath string = "FLEET_DB_PATH"

	EnvKeyFleetHttpHostPort string = "FLEET_HTTP_HOST_PORT"

	EnvKeyFleetDefaultRate  string = "FLEET_DEFAULT_RATE"
	EnvKeyFleetDefaultBurst string = "FLEET_DEFAULT_BURST"

	LoggerNameFleetCore     string = "fleet_core"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldFleetCategory string = "category"

	LoggerCategoryStatus      string = "status"
	LoggerCategoryConflict    string = "conflict"
	LoggerCategoryAlert       string = "alert"
	LoggerCategoryVehicle     string = "vehicle"
	LoggerCategoryDriver      string = "driver"
	LoggerCategoryMaintenance string = "maintenance"
	LoggerCategoryRoute       string = "route"
	LoggerCategoryCosting     string = "costing"
)
