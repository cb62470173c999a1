package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxProfiles int = 50
var vehiclesPerProfile int = 40
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	profileIDs := make([]string, maxProfiles)
	for i := 0; i < maxProfiles; i++ {
		profileIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v profile IDs\n", maxProfiles)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	totalVehicles := maxProfiles * vehiclesPerProfile

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxProfiles; i++ {
		i := i
		wg.Add(1)
		go func() {
			raiseLimiter(profileIDs[i])
			for j := 0; j < vehiclesPerProfile; j++ {
				insertVehicle(profileIDs[i], j)
			}
			fmt.Printf("\rinserted vehicles for profile %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted %v vehicles across %v profiles: used time=%v seconds, throughput=%v action/second\n",
		totalVehicles, maxProfiles, usedTime.Seconds(), float64(totalVehicles)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxProfiles; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(profileIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v profiles: used time=%v seconds, throughput=%v action/second\n",
		maxProfiles, usedTime.Seconds(), float64(maxProfiles*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

// raiseLimiter lifts the per-profile rate limit so the bulk insert below is
// not throttled by the server default.
func raiseLimiter(profileID string) {
	payload := map[string]any{
		"rate":  1000.0,
		"burst": 1000,
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/profiles/%s/limiter", httpHostPort, profileID), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("limiter setup failed with status %v", resp.StatusCode))
	}
}

func insertVehicle(profileID string, seq int) {
	payload := map[string]any{
		"plate":                    fmt.Sprintf("BEN%04d", seq),
		"model":                    "Benchmark Truck",
		"year":                     2018 + rnd.Intn(8),
		"initial_mileage":          rnd.Intn(200000),
		"acquisition_date":         time.Now().AddDate(-rnd.Intn(5), 0, 0).Format(time.RFC3339),
		"average_fuel_consumption": rndFloat64(1.5, 4.5, 1),
	}

	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/profiles/%s/vehicles", httpHostPort, profileID), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		panic(fmt.Sprintf("vehicle insert failed with status %v", resp.StatusCode))
	}
}

func doAction(profileID string) {
	actions := []func(){
		genUpsertAlertConfigAction(profileID),
		genGetAlertsAction(profileID),
		genGetDashboardAction(profileID),
	}
	actionNames := []string{
		"UpsertAlertConfig",
		"GetAlerts",
		"GetDashboard",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for profile %v", actionNames[index], profileID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genUpsertAlertConfigAction(profileID string) func() {
	return func() {
		km := 5000 + rnd.Intn(10000)
		days := 90 + rnd.Intn(180)
		payload := map[string]any{
			"service_type":   "Troca de Óleo",
			"km_threshold":   km,
			"days_threshold": days,
			"is_active":      true,
			"priority":       "high",
		}

		jsonData, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("http://%s/profiles/%s/alert-configs", httpHostPort, profileID), bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}

func genGetAlertsAction(profileID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/profiles/%s/alerts", httpHostPort, profileID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}

func genGetDashboardAction(profileID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/profiles/%s/dashboard", httpHostPort, profileID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}
