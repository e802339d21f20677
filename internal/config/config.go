package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings that come from the environment rather than
// the tables document: credentials, model selection and the retry/pacing
// knobs of the analysis client.
type Config struct {
	APIKey            string
	Endpoint          string
	Model             string
	MaxAttempts       int
	InitialDelay      time.Duration
	BackoffFactor     float64
	InterRequestDelay time.Duration
	RequestTimeout    time.Duration
}

// LoadFromEnv reads configuration from environment variables, consulting a
// .env file when present. Values from the tables document's api section
// override the defaults here but never the environment.
func LoadFromEnv() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:            os.Getenv("GOOGLE_API_KEY"),
		Endpoint:          os.Getenv("GEMINI_ENDPOINT"),
		Model:             getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		MaxAttempts:       int(parseIntOrDefault("ANALYSIS_MAX_ATTEMPTS", 4)),
		InitialDelay:      parseDurationOrDefault("ANALYSIS_INITIAL_DELAY", 2*time.Second),
		BackoffFactor:     2.0,
		InterRequestDelay: parseDurationOrDefault("ANALYSIS_INTER_REQUEST_DELAY", 1*time.Second),
		RequestTimeout:    parseDurationOrDefault("ANALYSIS_REQUEST_TIMEOUT", 60*time.Second),
	}

	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("ANALYSIS_MAX_ATTEMPTS must be >= 1 (got %d)", cfg.MaxAttempts)
	}
	if cfg.InitialDelay <= 0 || cfg.InterRequestDelay < 0 || cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("delays must be positive (got initial=%s, pacing=%s, timeout=%s)",
			cfg.InitialDelay, cfg.InterRequestDelay, cfg.RequestTimeout)
	}
	return cfg, nil
}

// ApplyAPISection overlays settings from the tables document's api section.
// Zero values mean "not set" and leave the current value in place.
func (c *Config) ApplyAPISection(s APISection) {
	if s.Endpoint != "" {
		c.Endpoint = s.Endpoint
	}
	if s.Model != "" {
		c.Model = s.Model
	}
	if s.MaxAttempts > 0 {
		c.MaxAttempts = s.MaxAttempts
	}
	if s.InitialDelay.Duration > 0 {
		c.InitialDelay = s.InitialDelay.Duration
	}
	if s.InterRequestDelay.Duration > 0 {
		c.InterRequestDelay = s.InterRequestDelay.Duration
	}
	if s.RequestTimeout.Duration > 0 {
		c.RequestTimeout = s.RequestTimeout.Duration
	}
}

// Validate checks settings that are required for live analysis calls.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
