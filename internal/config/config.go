package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port           string
	DBDSN          string
	GeocodeURL     string
	GeocodeAPIKey  string
	GeocodeTimeout time.Duration
	LogFile        string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "veneya.db" // sqlite file in project root
	}
	geoURL := os.Getenv("GEOCODE_URL") // empty means the default Google endpoint
	geoKey := os.Getenv("GEOCODE_API_KEY")

	// Bounded by the position-acquisition timeout it serves.
	geoTimeout := 20 * time.Second
	if v := os.Getenv("GEOCODE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			geoTimeout = d
		} else {
			log.Printf("[config] ignoring bad GEOCODE_TIMEOUT=%q", v)
		}
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:           port,
		DBDSN:          dsn,
		GeocodeURL:     geoURL,
		GeocodeAPIKey:  geoKey,
		GeocodeTimeout: geoTimeout,
		LogFile:        logFile,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s GEOCODE_TIMEOUT=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.GeocodeTimeout, cfg.LogFile)
	return cfg
}
