package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Desktop   DesktopConfig
	Auth      AuthConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// AllowOrigins is a comma separated CORS allow-list. Empty allows any origin.
	AllowOrigins []string `envconfig:"CORS_ORIGINS"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DesktopConfig describes the simulated machine and its initial filesystem.
type DesktopConfig struct {
	User     string `envconfig:"DESKTOP_USER" default:"ubuntu"`
	Hostname string `envconfig:"DESKTOP_HOSTNAME" default:"web"`
	// SeedFile is a YAML, TOML or JSON manifest applied after the stock tree.
	SeedFile string `envconfig:"SEED_FILE"`
	// SeedDir is a host directory imported under SeedMount.
	SeedDir   string `envconfig:"SEED_DIR"`
	SeedMount string `envconfig:"SEED_MOUNT" default:"/srv/import"`
}

// Home returns the user's home directory.
func (d DesktopConfig) Home() string {
	return "/home/" + d.User
}

// AuthConfig holds login gating configuration.
type AuthConfig struct {
	Required bool   `envconfig:"AUTH_REQUIRED" default:"false"`
	Password string `envconfig:"LOGIN_PASSWORD" default:"password"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the desktop cannot boot with.
func (c *Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a TCP port, got %q", c.Server.Port))
	}
	if c.Desktop.User == "" || strings.ContainsAny(c.Desktop.User, "/ ") {
		errs = append(errs, fmt.Errorf("DESKTOP_USER must be a single path segment, got %q", c.Desktop.User))
	}
	if c.Desktop.SeedMount != "" && !strings.HasPrefix(c.Desktop.SeedMount, "/") {
		errs = append(errs, fmt.Errorf("SEED_MOUNT must be absolute, got %q", c.Desktop.SeedMount))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the configuration Load produces with an empty environment.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8000", Host: "0.0.0.0"},
		Desktop: DesktopConfig{User: "ubuntu", Hostname: "web", SeedMount: "/srv/import"},
		Auth:    AuthConfig{Password: "password"},
		Logging: LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
