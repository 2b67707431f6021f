package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string // the store file holding all blobs
	SnapshotPath     string // where zip snapshots of the store land
	SnapshotCron     string // standard cron expression for snapshots
	SnapshotKeep     int    // how many snapshots to retain
	StoreSoftLimitMB int    // warn when the store file grows past this
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	keep, err := strconv.Atoi(getEnv("SNAPSHOT_KEEP", "10"))
	if err != nil {
		return nil, err
	}

	softLimit, err := strconv.Atoi(getEnv("STORE_SOFT_LIMIT_MB", "64"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./minisocial.db"),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "./snapshots"),
		SnapshotCron:     getEnv("SNAPSHOT_CRON", "0 * * * *"),
		SnapshotKeep:     keep,
		StoreSoftLimitMB: softLimit,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
