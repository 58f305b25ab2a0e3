package backend

import (
	"fmt"
	"time"

	"scorecard/internal/config"
)

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// OpenFEC specific
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	RateDelay      time.Duration

	// Receipt cache (optional; empty path disables caching)
	SQLiteDBPath string
	CacheMaxAge  time.Duration
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		APIKey:         appConfig.FECAPIKey,
		BaseURL:        appConfig.FECBaseURL,
		RequestTimeout: appConfig.RequestTimeout,
		RetryAttempts:  appConfig.RetryAttempts,
		RetryDelay:     appConfig.RetryDelay,
		RateDelay:      appConfig.RateDelay,

		SQLiteDBPath: appConfig.SQLiteDBPath,
		CacheMaxAge:  appConfig.CacheMaxAge,
	}, nil
}
