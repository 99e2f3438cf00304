package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"trip-distance-service/internal/adapters/airports"
	"trip-distance-service/internal/adapters/cache"
	"trip-distance-service/internal/adapters/ors"
	"trip-distance-service/internal/api"
	"trip-distance-service/internal/config"
	"trip-distance-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (static airport dataset, ORS) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// The airport directory is loaded once and shared read-only across all
	// queries for the process lifetime.
	directory, err := airports.NewDirectory(cfg.AirportsPath)
	if err != nil {
		log.Fatal(err)
	}

	client, err := ors.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.HTTPTimeout, cfg.RequestsPerSec)
	if err != nil {
		log.Fatal(err)
	}

	geocoder := ors.NewGeocoder(client, cache.NewTTLCache(cfg.GeocodeCacheTTL))
	routes := ors.NewDirectionsProvider(client)

	svc := services.NewDistanceService(directory, geocoder, routes)
	svc.ScanConcurrency = cfg.ScanConcurrency
	svc.NearestCutoffKm = cfg.NearestCutoffKm

	router := api.NewRouter(svc)

	// Write timeout leaves room for a cold nearest-airport scan (many
	// external routing calls behind the rate limiter).
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
