package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the distance service.
type Config struct {
	ORSAPIKey       string
	ORSBaseURL      string
	Port            string
	HTTPTimeout     time.Duration
	RequestsPerSec  float64
	GeocodeCacheTTL time.Duration
	ScanConcurrency int
	NearestCutoffKm float64
	AirportsPath    string
}

// Load reads configuration from an optional YAML file and TRIPDIST_-prefixed
// environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("ors_base_url", "https://api.openrouteservice.org")
	v.SetDefault("port", "8080")
	v.SetDefault("http_timeout_seconds", 20)
	v.SetDefault("requests_per_sec", 2.0)
	v.SetDefault("geocode_cache_ttl_minutes", 60)
	v.SetDefault("scan_concurrency", 8)
	v.SetDefault("nearest_cutoff_km", 200.0)
	v.SetDefault("airports_path", "data/airports.json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if configPath := os.Getenv("TRIPDIST_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; defaults + env vars apply.
	}

	v.SetEnvPrefix("TRIPDIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Accept the conventional unprefixed ORS variable as well.
	_ = v.BindEnv("ors_api_key", "TRIPDIST_ORS_API_KEY", "ORS_API_KEY")

	cfg := &Config{
		ORSAPIKey:       v.GetString("ors_api_key"),
		ORSBaseURL:      v.GetString("ors_base_url"),
		Port:            v.GetString("port"),
		HTTPTimeout:     time.Duration(v.GetInt("http_timeout_seconds")) * time.Second,
		RequestsPerSec:  v.GetFloat64("requests_per_sec"),
		GeocodeCacheTTL: time.Duration(v.GetInt("geocode_cache_ttl_minutes")) * time.Minute,
		ScanConcurrency: v.GetInt("scan_concurrency"),
		NearestCutoffKm: v.GetFloat64("nearest_cutoff_km"),
		AirportsPath:    v.GetString("airports_path"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		return fmt.Errorf("ors_api_key is required")
	}

	if cfg.Port == "" {
		return fmt.Errorf("port is required")
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout_seconds must be greater than 0")
	}

	if cfg.ScanConcurrency < 1 || cfg.ScanConcurrency > 64 {
		return fmt.Errorf("scan_concurrency must be between 1 and 64")
	}

	if cfg.NearestCutoffKm <= 0 {
		return fmt.Errorf("nearest_cutoff_km must be greater than 0")
	}

	if cfg.AirportsPath == "" {
		return fmt.Errorf("airports_path is required")
	}

	return nil
}
