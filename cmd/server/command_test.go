package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"occupancyDash/internal/config"
)

func runCommand(t *testing.T, cfg *config.Config, args ...string) *config.Config {
	t.Helper()
	var got *config.Config
	cmd := newCommand(cfg, func(_ context.Context, c *config.Config) error {
		got = c
		return nil
	})
	require.NoError(t, cmd.Run(context.Background(), append([]string{"occupancy-dash"}, args...)))
	require.NotNil(t, got)
	return got
}

func clearFlagEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL", "LOG_LEVEL", "LOG_FORMAT", "LAYOUT_FILE"} {
		t.Setenv(key, "")
	}
}

func TestCommandDefaultsToLoadedConfig(t *testing.T) {
	clearFlagEnv(t)
	cfg := runCommand(t, &config.Config{ServerPort: "8080", BackendURL: "http://api:8000", LogLevel: "info", LogFormat: "text"})

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://api:8000", cfg.BackendURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestCommandReadsEnvironment(t *testing.T) {
	clearFlagEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "backend.local:8000/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LAYOUT_FILE", "/etc/layout.yaml")

	cfg := runCommand(t, &config.Config{ServerPort: "8080", LogLevel: "info", LogFormat: "text"})

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "http://backend.local:8000", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/etc/layout.yaml", cfg.LayoutFile)
}

func TestCommandPublicBackendURLWins(t *testing.T) {
	clearFlagEnv(t)
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "https://public.example")
	t.Setenv("BACKEND_URL", "http://private:8000")

	cfg := runCommand(t, &config.Config{})
	assert.Equal(t, "https://public.example", cfg.BackendURL)
}

func TestCommandBlankEnvironmentKeepsConfig(t *testing.T) {
	clearFlagEnv(t)
	t.Setenv("BACKEND_URL", "http://private:8000")

	cfg := runCommand(t, &config.Config{ServerPort: "8080", BackendURL: "http://private:8000"})
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://private:8000", cfg.BackendURL)
}

func TestCommandFlagsOverrideEnvironment(t *testing.T) {
	clearFlagEnv(t)
	t.Setenv("PORT", "9090")

	cfg := runCommand(t, &config.Config{ServerPort: "8080"}, "--port", "7070")
	assert.Equal(t, "7070", cfg.ServerPort)
}
