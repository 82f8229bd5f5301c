package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://my.clockodo.com/api/"

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Clockodo ClockodoConfig
	Access   AccessConfig
	App      AppConfig
	JWT      JWTConfig
}

// ClockodoConfig holds upstream credentials and identification.
type ClockodoConfig struct {
	APIUser            string
	APIKey             string
	UserAgent          string
	BaseURL            string
	ExternalAppContact string
	Timeout            time.Duration
}

// AccessConfig holds the raw role selection. It is resolved into a
// capability set once at startup.
type AccessConfig struct {
	Role   string
	Preset string

	// Deprecated per-feature switches
	EnableHRReadonly bool
	EnableUserRead   bool
	EnableUserEdit   bool
	EnableTeamLeader bool
	EnableAdminRead  bool
	EnableAdminEdit  bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Transport string
	Port      int
	Env       string
	LogLevel  string
	LogFormat string

	// AllowedOrigins is the CORS allow list of the HTTP transport.
	AllowedOrigins []string

	// ComplianceInterval schedules the compliance snapshot job. Zero disables it.
	ComplianceInterval time.Duration
}

// JWTConfig protects the HTTP transport when Secret is set.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// Load reads the configuration and validates it for serving.
func Load(envFiles ...string) (*Config, error) {
	config, err := Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Read loads the optional .env file, then the process environment. Only
// malformed values fail; missing credentials are left to Validate.
func Read(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	config := &Config{}

	// Clockodo configuration
	timeout, err := time.ParseDuration(getEnv("CLOCKODO_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOCKODO_TIMEOUT: %w", err)
	}

	config.Clockodo = ClockodoConfig{
		APIUser:            getEnv("CLOCKODO_API_USER", ""),
		APIKey:             getEnv("CLOCKODO_API_KEY", ""),
		UserAgent:          getEnv("CLOCKODO_USER_AGENT", ""),
		BaseURL:            getEnv("CLOCKODO_BASE_URL", DefaultBaseURL),
		ExternalAppContact: getEnv("CLOCKODO_EXTERNAL_APP_CONTACT", ""),
		Timeout:            timeout,
	}

	// Access configuration
	config.Access = AccessConfig{
		Role:             getEnv("CLOCKODO_MCP_ROLE", ""),
		Preset:           getEnv("CLOCKODO_MCP_PRESET", ""),
		EnableHRReadonly: getEnvBool("CLOCKODO_MCP_ENABLE_HR_READONLY", false),
		EnableUserRead:   getEnvBool("CLOCKODO_MCP_ENABLE_USER_READ", false),
		EnableUserEdit:   getEnvBool("CLOCKODO_MCP_ENABLE_USER_EDIT", false),
		EnableTeamLeader: getEnvBool("CLOCKODO_MCP_ENABLE_TEAM_LEADER", false),
		EnableAdminRead:  getEnvBool("CLOCKODO_MCP_ENABLE_ADMIN_READ", false),
		EnableAdminEdit:  getEnvBool("CLOCKODO_MCP_ENABLE_ADMIN_EDIT", false),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	complianceInterval, err := time.ParseDuration(getEnv("COMPLIANCE_SNAPSHOT_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLIANCE_SNAPSHOT_INTERVAL: %w", err)
	}

	config.App = AppConfig{
		Transport: strings.ToLower(getEnv("MCP_TRANSPORT", TransportStdio)),
		Port:      appPort,
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AllowedOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ComplianceInterval: complianceInterval,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Clockodo.APIUser == "" {
		return fmt.Errorf("CLOCKODO_API_USER is required")
	}
	if c.Clockodo.APIKey == "" {
		return fmt.Errorf("CLOCKODO_API_KEY is required")
	}
	if c.Clockodo.Timeout <= 0 {
		return fmt.Errorf("CLOCKODO_TIMEOUT must be positive")
	}
	if c.App.Transport != TransportStdio && c.App.Transport != TransportHTTP {
		return fmt.Errorf("MCP_TRANSPORT must be %q or %q", TransportStdio, TransportHTTP)
	}
	if c.App.ComplianceInterval < 0 {
		return fmt.Errorf("COMPLIANCE_SNAPSHOT_INTERVAL must not be negative")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvList(key string, fallback []string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
