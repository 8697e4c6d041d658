package cartctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries settings for one cartctl invocation.
type Config struct {
	APIURL         string
	DataPath       string
	LogLevel       string
	MirrorDebounce time.Duration
	RequestTimeout time.Duration
}

// LoadConfig reads an optional .env file, then environment variables, and
// applies defaults. Variables already set in the environment win over .env.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, file := range envFiles {
			if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("load %s: %w", file, err)
			}
		}
	}

	cfg := Config{
		APIURL:         envDefault("CARTCTL_API_URL", "http://localhost:8080"),
		DataPath:       envDefault("CARTCTL_DATA", defaultDataPath()),
		LogLevel:       envDefault("CARTCTL_LOG_LEVEL", "warn"),
		MirrorDebounce: 500 * time.Millisecond,
		RequestTimeout: 5 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("CARTCTL_MIRROR_DEBOUNCE_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("CARTCTL_MIRROR_DEBOUNCE_MS must be a non-negative integer")
		}
		cfg.MirrorDebounce = time.Duration(ms) * time.Millisecond
	}
	if raw := strings.TrimSpace(os.Getenv("CARTCTL_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("CARTCTL_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cartctl.db"
	}
	return filepath.Join(dir, "cartctl", "cart.db")
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
