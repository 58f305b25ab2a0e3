package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port              string
	RequestsPerMinute int

	// Upstream FEC API
	FECAPIKey      string
	FECBaseURL     string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	RateDelay      time.Duration

	// Analysis defaults
	DefaultCycle int
	MaxPages     int

	// Receipt cache (optional; empty path disables caching)
	SQLiteDBPath string
	CacheMaxAge  time.Duration

	// AMQP (optional; empty URL disables report export)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets report (worker)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port:              getEnv("PORT", "8081"),
		RequestsPerMinute: getEnvInt("REQUESTS_PER_MINUTE", 60),

		FECAPIKey:      getEnv("FEC_API_KEY", ""),
		FECBaseURL:     getEnv("FEC_BASE_URL", "https://api.open.fec.gov/v1"),
		RequestTimeout: getEnvDuration("FEC_REQUEST_TIMEOUT", 30*time.Second),
		RetryAttempts:  getEnvInt("FEC_RETRY_ATTEMPTS", 3),
		RetryDelay:     getEnvDuration("FEC_RETRY_DELAY", 2*time.Second),
		RateDelay:      getEnvDuration("FEC_RATE_DELAY", 500*time.Millisecond),

		DefaultCycle: getEnvInt("DEFAULT_CYCLE", 2026),
		MaxPages:     getEnvInt("MAX_PAGES", 10),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", ""),
		CacheMaxAge:  getEnvDuration("CACHE_MAX_AGE", 6*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "scorecard"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_exports"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Scorecard"),

		DataBackend: getEnv("DATA_BACKEND", "openfec"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"openfec", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// The live backend needs an API key; the memory backend does not.
	if c.DataBackend == "openfec" && c.FECAPIKey == "" {
		errors = append(errors, "FEC API key is required when using the openfec backend (set FEC_API_KEY)")
	}

	if c.FECBaseURL != "" {
		if parsedURL, err := url.Parse(c.FECBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid FEC base URL '%s': %v", c.FECBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid FEC base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.RetryAttempts < 1 {
		errors = append(errors, fmt.Sprintf("invalid retry attempts %d: must be at least 1", c.RetryAttempts))
	} else if c.RetryAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid retry attempts %d: must be at most 10", c.RetryAttempts))
	}

	if c.RequestTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at least 1 second", c.RequestTimeout))
	}

	if c.DefaultCycle < 1976 || c.DefaultCycle%2 != 0 {
		errors = append(errors, fmt.Sprintf("invalid default cycle %d: must be an even year from 1976 on", c.DefaultCycle))
	}

	if c.MaxPages < 1 || c.MaxPages > 100 {
		errors = append(errors, fmt.Sprintf("invalid max pages %d: must be between 1 and 100", c.MaxPages))
	}

	if c.RequestsPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid requests per minute %d: must be at least 1", c.RequestsPerMinute))
	}

	// Validate receipt cache settings if caching is enabled
	if c.SQLiteDBPath != "" {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create receipt cache directory '%s': %v", dir, err))
				}
			}
		}
		if c.CacheMaxAge < time.Minute {
			errors = append(errors, fmt.Sprintf("invalid cache max age %v: must be at least 1 minute", c.CacheMaxAge))
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
