// Package config loads sweid configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config captures process level settings for the CLI and check service.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string

	// AllowCoordinationNumber controls whether samordningsnummer are accepted.
	AllowCoordinationNumber bool
	// BatchWorkers bounds concurrent checks in a batch run.
	BatchWorkers int

	MetricsNamespace string

	// Today pins the clock when set, so batch output is reproducible.
	Today time.Time
}

// Load builds a Config from environment variables, reading a .env file from
// the working directory or any parent first.
func Load() (Config, error) {
	loadDotEnv()

	cfg := Config{
		LogLevel:                env.GetString("SWEID_LOG_LEVEL", "info"),
		LogFormat:               env.GetString("SWEID_LOG_FORMAT", "text"),
		AllowCoordinationNumber: env.GetBool("SWEID_ALLOW_COORDINATION_NUMBER", true),
		BatchWorkers:            env.GetInt("SWEID_BATCH_WORKERS", 4),
		MetricsNamespace:        env.GetString("SWEID_METRICS_NAMESPACE", "sweid"),
	}

	if raw := env.GetString("SWEID_TODAY", ""); raw != "" {
		today, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return Config{}, fmt.Errorf("SWEID_TODAY must be YYYY-MM-DD: %w", err)
		}
		cfg.Today = today
	}

	if cfg.BatchWorkers < 1 {
		return Config{}, fmt.Errorf("SWEID_BATCH_WORKERS must be at least 1, got %d", cfg.BatchWorkers)
	}

	return cfg, nil
}

func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
