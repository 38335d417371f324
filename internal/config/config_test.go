package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	env := []string{
		"APP_ENV", "APP_HTTP_ADDR", "METRICS_ADDR", "LOG_LEVEL",
		"RETAIL_CRM_URL", "RETAIL_CRM_API_KEY", "RETAIL_CRM_API_PREFIX",
		"CRM_TIMEOUT_SECONDS", "CRM_MAX_RETRIES", "RATE_LIMIT_PER_IP",
	}
	for _, key := range env {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify default values
	if cfg.AppEnv != "dev" {
		t.Errorf("Expected AppEnv='dev', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr=':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("Expected MetricsAddr=':9090', got '%s'", cfg.MetricsAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel='info', got '%s'", cfg.LogLevel)
	}
	if cfg.CRMBaseURL != "https://demo.retailcrm.ru" {
		t.Errorf("Expected CRMBaseURL='https://demo.retailcrm.ru', got '%s'", cfg.CRMBaseURL)
	}
	if cfg.CRMAPIPrefix != "/api/v5" {
		t.Errorf("Expected CRMAPIPrefix='/api/v5', got '%s'", cfg.CRMAPIPrefix)
	}
	if cfg.CRMTimeoutSeconds != 30 {
		t.Errorf("Expected CRMTimeoutSeconds=30, got %d", cfg.CRMTimeoutSeconds)
	}
	if cfg.CRMMaxRetries != 0 {
		t.Errorf("Expected CRMMaxRetries=0, got %d", cfg.CRMMaxRetries)
	}
	if cfg.RateLimitPerIP != 100 {
		t.Errorf("Expected RateLimitPerIP=100, got %d", cfg.RateLimitPerIP)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_HTTP_ADDR", ":9999")
	os.Setenv("METRICS_ADDR", ":7777")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("RETAIL_CRM_URL", "https://acme.retailcrm.ru")
	os.Setenv("RETAIL_CRM_API_KEY", "secret-key")
	os.Setenv("CRM_TIMEOUT_SECONDS", "10")
	os.Setenv("CRM_MAX_RETRIES", "2")
	os.Setenv("RATE_LIMIT_PER_IP", "200")

	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify environment overrides
	if cfg.AppEnv != "test" {
		t.Errorf("Expected AppEnv='test', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected HTTPAddr=':9999', got '%s'", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":7777" {
		t.Errorf("Expected MetricsAddr=':7777', got '%s'", cfg.MetricsAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel='debug', got '%s'", cfg.LogLevel)
	}
	if cfg.CRMBaseURL != "https://acme.retailcrm.ru" {
		t.Errorf("Expected CRMBaseURL='https://acme.retailcrm.ru', got '%s'", cfg.CRMBaseURL)
	}
	if cfg.CRMAPIKey != "secret-key" {
		t.Errorf("Expected CRMAPIKey='secret-key', got '%s'", cfg.CRMAPIKey)
	}
	if cfg.CRMTimeoutSeconds != 10 {
		t.Errorf("Expected CRMTimeoutSeconds=10, got %d", cfg.CRMTimeoutSeconds)
	}
	if cfg.CRMMaxRetries != 2 {
		t.Errorf("Expected CRMMaxRetries=2, got %d", cfg.CRMMaxRetries)
	}
	if cfg.RateLimitPerIP != 200 {
		t.Errorf("Expected RateLimitPerIP=200, got %d", cfg.RateLimitPerIP)
	}
}

func TestLoad_MissingEnvFileIsAcceptable(t *testing.T) {
	// Even if .env file doesn't exist, Load should succeed with defaults
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not fail when .env is missing: %v", err)
	}
	if cfg == nil {
		t.Fatal("Config should not be nil")
	}
}

func TestCRMTimeout(t *testing.T) {
	cfg := &Config{CRMTimeoutSeconds: 15}
	if got := cfg.CRMTimeout(); got != 15*time.Second {
		t.Errorf("CRMTimeout() = %v, want 15s", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppEnv:            "dev",
			HTTPAddr:          ":8080",
			MetricsAddr:       ":9090",
			LogLevel:          "info",
			CRMBaseURL:        "https://demo.retailcrm.ru",
			CRMAPIPrefix:      "/api/v5",
			CRMTimeoutSeconds: 30,
			RateLimitPerIP:    100,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string // "" means valid
	}{
		{"valid dev config", func(c *Config) {}, ""},
		{"missing http addr", func(c *Config) { c.HTTPAddr = "" }, "APP_HTTP_ADDR"},
		{"missing metrics addr", func(c *Config) { c.MetricsAddr = "" }, "METRICS_ADDR"},
		{"empty crm url", func(c *Config) { c.CRMBaseURL = "" }, "RETAIL_CRM_URL"},
		{"relative crm url", func(c *Config) { c.CRMBaseURL = "demo.retailcrm.ru" }, "RETAIL_CRM_URL"},
		{"bad scheme", func(c *Config) { c.CRMBaseURL = "ftp://demo.retailcrm.ru" }, "RETAIL_CRM_URL"},
		{"zero timeout", func(c *Config) { c.CRMTimeoutSeconds = 0 }, "CRM_TIMEOUT_SECONDS"},
		{"negative retries", func(c *Config) { c.CRMMaxRetries = -1 }, "CRM_MAX_RETRIES"},
		{"prod without api key", func(c *Config) { c.AppEnv = "prod"; c.CRMBaseURL = "https://acme.retailcrm.ru" }, "RETAIL_CRM_API_KEY"},
		{"prod with demo url", func(c *Config) { c.AppEnv = "prod"; c.CRMAPIKey = "k" }, "RETAIL_CRM_URL"},
		{"prod fully configured", func(c *Config) {
			c.AppEnv = "prod"
			c.CRMAPIKey = "k"
			c.CRMBaseURL = "https://acme.retailcrm.ru"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}
