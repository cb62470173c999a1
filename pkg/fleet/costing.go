package fleet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"fleetops.xyz/fleet-service/pkg/common"
)

// RouteDetails is the success payload of the distance/toll provider.
type RouteDetails struct {
	DistanceKm float64
	TollCost   float64
}

// RouteDetailsProvider resolves a start/end location pair into driving
// distance and estimated toll cost.
type RouteDetailsProvider interface {
	Details(ctx context.Context, origin, destination string) (*RouteDetails, error)
}

// FuelPriceProvider returns the current diesel price per liter for a
// two-letter region code.
type FuelPriceProvider interface {
	DieselPrice(ctx context.Context, uf string) (float64, error)
}

// RoutesAPIProvider calls a Google-Routes-style computeRoutes endpoint.
// Failures come back as ProviderError with the provider's own text; callers
// abort the route write on any error here.
type RoutesAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewRoutesAPIProvider(baseURL, apiKey string, timeout time.Duration) *RoutesAPIProvider {
	return &RoutesAPIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

type routesAPIResponse struct {
	Routes []struct {
		DistanceMeters float64 `json:"distanceMeters"`
		TravelAdvisory struct {
			TollInfo struct {
				EstimatedPrice []struct {
					Units string  `json:"units"`
					Nanos float64 `json:"nanos"`
				} `json:"estimatedPrice"`
			} `json:"tollInfo"`
		} `json:"travelAdvisory"`
	} `json:"routes"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *RoutesAPIProvider) Details(ctx context.Context, origin, destination string) (*RouteDetails, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryCosting),
	)

	body := map[string]any{
		"origin":                map[string]string{"address": origin},
		"destination":           map[string]string{"address": destination},
		"travelMode":            "DRIVE",
		"routeModifiers":        map[string]any{"vehicleInfo": map[string]string{"emissionType": "DIESEL"}, "avoidTolls": false},
		"extraComputations":     []string{"TOLLS"},
		"computeAlternativeRoutes": false,
		"units":                 "METRIC",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, NewProviderError("routes API request error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", p.APIKey)
	req.Header.Set("X-Goog-FieldMask", "routes.distanceMeters,routes.travelAdvisory.tollInfo")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, NewProviderError("routes API connection error: %v", err)
	}
	defer resp.Body.Close()

	var decoded routesAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError("routes API returned an unreadable response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError("routes API error (HTTP %d): %s", resp.StatusCode, decoded.Error.Message)
	}
	if len(decoded.Routes) == 0 {
		message := decoded.Error.Message
		if message == "" {
			message = "no route found between the locations"
		}
		return nil, NewProviderError("routes API error: %s", message)
	}

	route := decoded.Routes[0]
	tollCost := 0.0
	for _, price := range route.TravelAdvisory.TollInfo.EstimatedPrice {
		units, _ := strconv.ParseFloat(price.Units, 64)
		tollCost += units + price.Nanos/1_000_000_000
	}

	details := &RouteDetails{
		DistanceKm: roundTo2(route.DistanceMeters / 1000),
		TollCost:   roundTo2(tollCost),
	}
	logger.Info("Fetched route details",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Float64("distance_km", details.DistanceKm),
		zap.Float64("toll_cost", details.TollCost))
	return details, nil
}

// FuelAPIProvider calls a fuel-price listing endpoint that keys prices by
// fuel kind and lowercase region code, with comma decimal separators.
type FuelAPIProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewFuelAPIProvider(baseURL string, timeout time.Duration) *FuelAPIProvider {
	return &FuelAPIProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type fuelAPIResponse struct {
	Error   bool                         `json:"error"`
	Message string                       `json:"message"`
	Precos  map[string]map[string]string `json:"precos"`
}

func (p *FuelAPIProvider) DieselPrice(ctx context.Context, uf string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL, nil)
	if err != nil {
		return 0, NewProviderError("fuel API request error: %v", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, NewProviderError("fuel API connection error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, NewProviderError("fuel API error (HTTP %d)", resp.StatusCode)
	}

	var decoded fuelAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, NewProviderError("fuel API returned an unreadable response: %v", err)
	}
	if decoded.Error {
		return 0, NewProviderError("fuel API returned an error: %s", decoded.Message)
	}
	diesel, ok := decoded.Precos["diesel"]
	if !ok {
		return 0, NewProviderError("unexpected fuel API response structure (no diesel prices)")
	}
	priceStr, ok := diesel[strings.ToLower(uf)]
	if !ok {
		return 0, NewProviderError("no diesel price for region %s", strings.ToUpper(uf))
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(priceStr, ",", "."), 64)
	if err != nil {
		return 0, NewProviderError("unparseable diesel price %q for region %s", priceStr, strings.ToUpper(uf))
	}
	return price, nil
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
