package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type ProvidersConfig struct {
	RoutesBaseURL    string `mapstructure:"routesBaseURL"`
	RoutesAPIKey     string `mapstructure:"routesAPIKey"`
	FuelPriceBaseURL string `mapstructure:"fuelPriceBaseURL"`
	TimeoutSeconds   int    `mapstructure:"timeoutSeconds"`
}

type LimiterConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Limiter   LimiterConfig   `mapstructure:"limiter"`
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing file is fine, env vars alone can carry the whole config.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "FLEET_HTTP_HOST_PORT")
	viper.BindEnv("providers.routesBaseURL", "FLEET_ROUTES_BASE_URL")
	viper.BindEnv("providers.routesAPIKey", "FLEET_ROUTES_API_KEY")
	viper.BindEnv("providers.fuelPriceBaseURL", "FLEET_FUEL_PRICE_BASE_URL")
	viper.BindEnv("providers.timeoutSeconds", "FLEET_PROVIDER_TIMEOUT_SECONDS")
	viper.BindEnv("limiter.rate", "FLEET_DEFAULT_RATE")
	viper.BindEnv("limiter.burst", "FLEET_DEFAULT_BURST")

	viper.SetDefault("server.port", ":1080")
	viper.SetDefault("providers.timeoutSeconds", 10)
	viper.SetDefault("limiter.rate", 5.0)
	viper.SetDefault("limiter.burst", 10)

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
