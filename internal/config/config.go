package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/canaryfuel/fuel-price-dashboard/internal/warehouse"
)

// DefaultEndpoint is the public Spanish fuel-price open-data API.
const DefaultEndpoint = "https://sedeaplicaciones.minetur.gob.es/ServiciosRESTCarburantes/PreciosCarburantes/EstacionesTerrestres/"

// AppConfig bundles the environment-provided configuration.
type AppConfig struct {
	// APIEndpoint is the upstream snapshot URL.
	APIEndpoint string

	// DB holds the warehouse connection settings.
	DB warehouse.DBConfig

	// FetchInterval controls how often an ingestion run is scheduled.
	FetchInterval time.Duration

	// HTTPTimeout bounds the outbound snapshot fetch.
	HTTPTimeout time.Duration

	// StationMasterPath is the CSV file for the initial station bulk load.
	StationMasterPath string

	// TopN is the default ranking size for the dashboard.
	TopN int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.APIEndpoint = getenvDefault("FUEL_API_ENDPOINT", DefaultEndpoint)

	cfg.DB = warehouse.DBConfig{
		Host:     getenvDefault("DB_HOST", "localhost"),
		Port:     getenvInt("DB_PORT", 5432),
		User:     getenvDefault("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getenvDefault("DB_NAME", "canaryfuel"),
		SSLMode:  getenvDefault("DB_SSLMODE", "disable"),
	}

	// The upstream refreshes a handful of times per day; one run per
	// time-of-day slot is enough.
	intervalStr := getenvDefault("FETCH_INTERVAL", "4h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.StationMasterPath = getenvDefault("STATION_MASTER_PATH", "data/init/baseline_master.csv")
	cfg.TopN = getenvInt("DASHBOARD_TOP_N", 10)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
