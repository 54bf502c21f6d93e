package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Dashboard DashboardConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// DashboardConfig controls pipeline behavior.
type DashboardConfig struct {
	CacheTTLSeconds int
	RefreshSeconds  int
	MaxUploadMB     int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "assist-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Dashboard: DashboardConfig{
			CacheTTLSeconds: getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 15),
			RefreshSeconds:  getEnvAsInt("DASHBOARD_REFRESH_SECONDS", 15),
			MaxUploadMB:     getEnvAsInt("DASHBOARD_MAX_UPLOAD_MB", 20),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Dashboard.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("DASHBOARD_CACHE_TTL_SECONDS must be positive")
	}
	if cfg.Dashboard.RefreshSeconds <= 0 {
		return nil, fmt.Errorf("DASHBOARD_REFRESH_SECONDS must be positive")
	}
	if cfg.Dashboard.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("DASHBOARD_MAX_UPLOAD_MB must be positive")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the parse-cache time to live.
func (d DashboardConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheTTLSeconds) * time.Second
}

// MaxUploadBytes returns the upload size limit in bytes.
func (d DashboardConfig) MaxUploadBytes() int64 {
	return int64(d.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
