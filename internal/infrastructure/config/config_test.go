package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "ubuntu", cfg.Desktop.User)
	assert.Equal(t, "web", cfg.Desktop.Hostname)
	assert.Equal(t, "/home/ubuntu", cfg.Desktop.Home())
	assert.Empty(t, cfg.Desktop.SeedFile)

	assert.False(t, cfg.Auth.Required)
	assert.Equal(t, "password", cfg.Auth.Password)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"DESKTOP_USER":       "ada",
		"DESKTOP_HOSTNAME":   "lab",
		"SEED_FILE":          "/etc/webdesk/seed.yaml",
		"SEED_DIR":           "/srv/share",
		"SEED_MOUNT":         "/mnt/share",
		"AUTH_REQUIRED":      "true",
		"LOGIN_PASSWORD":     "hunter2",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "ada", cfg.Desktop.User)
	assert.Equal(t, "/home/ada", cfg.Desktop.Home())
	assert.Equal(t, "lab", cfg.Desktop.Hostname)
	assert.Equal(t, "/etc/webdesk/seed.yaml", cfg.Desktop.SeedFile)
	assert.Equal(t, "/srv/share", cfg.Desktop.SeedDir)
	assert.Equal(t, "/mnt/share", cfg.Desktop.SeedMount)
	assert.True(t, cfg.Auth.Required)
	assert.Equal(t, "hunter2", cfg.Auth.Password)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		host     string
		wantPort string
		wantHost string
	}{
		{"default values", "", "", "8000", "0.0.0.0"},
		{"custom port", "9000", "", "9000", "0.0.0.0"},
		{"custom host", "", "localhost", "8000", "localhost"},
		{"custom port and host", "3000", "127.0.0.1", "3000", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.port != "" {
				t.Setenv("PORT", tt.port)
			}
			if tt.host != "" {
				t.Setenv("HOST", tt.host)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
		})
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric rps", "RATE_LIMIT_RPS", "fast"},
		{"non-bool dev flag", "LOG_DEV", "sometimes"},
		{"non-bool auth flag", "AUTH_REQUIRED", "maybe"},
		{"port out of range", "PORT", "70000"},
		{"user with slash", "DESKTOP_USER", "a/b"},
		{"relative seed mount", "SEED_MOUNT", "srv/import"},
		{"zero burst", "RATE_LIMIT_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestAllowOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,http://desk.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "http://desk.local"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
}
