package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	UploadDir   string
	LogDir      string
	LogStdout   bool
	OpenBrowser bool
	BucketWidth time.Duration
	Window      time.Duration
	WindowStep  time.Duration
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var env envReader
	cfg := &Config{
		Port:        env.get("PORT", "8080"),
		UploadDir:   env.get("UPLOAD_DIR", "uploads"),
		LogDir:      env.get("LOG_DIR", "logs"),
		LogStdout:   env.bool("LOG_STDOUT", true),
		OpenBrowser: env.bool("OPEN_BROWSER", false),
		BucketWidth: env.duration("BUCKET_WIDTH", 2*time.Minute),
		Window:      env.duration("WINDOW", 2*time.Hour),
		WindowStep:  env.duration("WINDOW_STEP", 2*time.Minute),
	}
	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the grid settings are usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.BucketWidth <= 0 {
		return fmt.Errorf("BUCKET_WIDTH must be positive, got %s", c.BucketWidth)
	}
	if c.Window <= 0 {
		return fmt.Errorf("WINDOW must be positive, got %s", c.Window)
	}
	if c.WindowStep <= 0 {
		return fmt.Errorf("WINDOW_STEP must be positive, got %s", c.WindowStep)
	}
	if c.Window%c.BucketWidth != 0 {
		return fmt.Errorf("WINDOW (%s) must be a multiple of BUCKET_WIDTH (%s)", c.Window, c.BucketWidth)
	}
	// interval starts must land on the bucket grid
	if c.WindowStep%c.BucketWidth != 0 {
		return fmt.Errorf("WINDOW_STEP (%s) must be a multiple of BUCKET_WIDTH (%s)", c.WindowStep, c.BucketWidth)
	}
	return nil
}

// envReader reads variables with defaults and collects parse errors for
// values that are set but malformed.
type envReader struct {
	errs []error
}

func (e *envReader) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (e *envReader) bool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a boolean", key, value))
		return defaultValue
	}
	return b
}

func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a duration", key, value))
		return defaultValue
	}
	return d
}
