// Package config provides application configuration loading from environment variables and .env files.
// It uses viper for flexible configuration management with sensible defaults.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables or .env file.
// Configuration priority: environment variables > .env file > defaults.
type Config struct {
	AppEnv            string // Application environment (dev, staging, prod)
	HTTPAddr          string // HTTP server bind address (e.g., ":8080")
	MetricsAddr       string // Metrics/pprof server bind address
	LogLevel          string // zerolog level name (debug, info, warn, error)
	CRMBaseURL        string // RetailCRM account base URL (e.g., https://demo.retailcrm.ru)
	CRMAPIKey         string // RetailCRM API key
	CRMAPIPrefix      string // RetailCRM API path prefix
	CRMTimeoutSeconds int    // Outbound request timeout in seconds
	CRMMaxRetries     int    // Extra attempts for transient outbound failures (0 = single attempt)
	RateLimitPerIP    int    // Inbound rate limit per IP per minute
}

// Load reads configuration from environment variables and .env file (if present).
// Environment variables take precedence over .env file values.
// Returns a Config struct with all values populated (either from env or defaults).
//
// Validation:
//   This function performs basic configuration loading but does NOT validate
//   configuration constraints (e.g., production requires an API key).
//   Use Validate() method to check production-readiness constraints.
func Load() (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = viperInstance.ReadInConfig()    // Ignore error - .env is optional
	viperInstance.AutomaticEnv()        // Read from environment variables

	setConfigDefaults(viperInstance)

	return &Config{
		AppEnv:            viperInstance.GetString("APP_ENV"),
		HTTPAddr:          viperInstance.GetString("APP_HTTP_ADDR"),
		MetricsAddr:       viperInstance.GetString("METRICS_ADDR"),
		LogLevel:          viperInstance.GetString("LOG_LEVEL"),
		CRMBaseURL:        viperInstance.GetString("RETAIL_CRM_URL"),
		CRMAPIKey:         viperInstance.GetString("RETAIL_CRM_API_KEY"),
		CRMAPIPrefix:      viperInstance.GetString("RETAIL_CRM_API_PREFIX"),
		CRMTimeoutSeconds: viperInstance.GetInt("CRM_TIMEOUT_SECONDS"),
		CRMMaxRetries:     viperInstance.GetInt("CRM_MAX_RETRIES"),
		RateLimitPerIP:    viperInstance.GetInt("RATE_LIMIT_PER_IP"),
	}, nil
}

// setConfigDefaults sets default values for all configuration options.
// These defaults are suitable for local development but should be overridden in production.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RETAIL_CRM_URL", "https://demo.retailcrm.ru")
	v.SetDefault("RETAIL_CRM_API_KEY", "") // Must be set for real accounts
	v.SetDefault("RETAIL_CRM_API_PREFIX", "/api/v5")
	v.SetDefault("CRM_TIMEOUT_SECONDS", 30)
	v.SetDefault("CRM_MAX_RETRIES", 0)
	v.SetDefault("RATE_LIMIT_PER_IP", 100)
}

// CRMTimeout returns the outbound request timeout as a duration.
func (c *Config) CRMTimeout() time.Duration {
	return time.Duration(c.CRMTimeoutSeconds) * time.Second
}

// ValidationError represents a configuration validation error with details about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration is suitable for use.
//
// This performs stricter validation than Load() and is intended to be called
// at application startup to fail fast on misconfiguration.
//
// Validation Rules:
//   1. HTTPAddr must be non-empty
//   2. MetricsAddr must be non-empty
//   3. RETAIL_CRM_URL must be a valid absolute http(s) URL
//   4. CRM_TIMEOUT_SECONDS must be positive
//   5. CRM_MAX_RETRIES must not be negative
//
// Production Safety:
//   In production (AppEnv == "prod" or "production"), RETAIL_CRM_API_KEY
//   must be set; the demo account default base URL is not allowed.
//
// Returns:
//   - nil if configuration is valid
//   - ValidationError describing the first validation failure
func (c *Config) Validate() error {
	// 1. HTTP address is required
	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "APP_HTTP_ADDR",
			Message: "HTTP server address cannot be empty",
		}
	}

	// 2. Metrics address is required
	if c.MetricsAddr == "" {
		return ValidationError{
			Field:   "METRICS_ADDR",
			Message: "metrics server address cannot be empty",
		}
	}

	// 3. CRM base URL must parse and carry a scheme + host
	u, err := url.Parse(c.CRMBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{
			Field:   "RETAIL_CRM_URL",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got '%s'", c.CRMBaseURL),
		}
	}

	// 4. Timeout must be positive
	if c.CRMTimeoutSeconds <= 0 {
		return ValidationError{
			Field:   "CRM_TIMEOUT_SECONDS",
			Message: "outbound timeout must be positive",
		}
	}

	// 5. Retries cannot be negative
	if c.CRMMaxRetries < 0 {
		return ValidationError{
			Field:   "CRM_MAX_RETRIES",
			Message: "retry count cannot be negative",
		}
	}

	// Production-specific checks (stricter validation)
	if c.AppEnv == "prod" || c.AppEnv == "production" {
		if c.CRMAPIKey == "" {
			return ValidationError{
				Field:   "RETAIL_CRM_API_KEY",
				Message: "API key is required in production. Set RETAIL_CRM_API_KEY environment variable.",
			}
		}
		if c.CRMBaseURL == "https://demo.retailcrm.ru" {
			return ValidationError{
				Field:   "RETAIL_CRM_URL",
				Message: "the demo account URL is not allowed in production",
			}
		}
	}

	return nil
}
