package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		envHost, envHTTPPort, envServerExpiryMs, envProbeTimeoutMs, envStoreMaxEntries, envRedisAddr,
		envAnnounceRateLimit, envAnnounceRateBurst, envExposeProbeErrors, envLogLevel, envConfigPath,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, 60*time.Second, cfg.ServerExpiry)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 0, cfg.StoreMaxEntries)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Zero(t, cfg.AnnounceRateLimit)
	assert.Equal(t, 5, cfg.AnnounceRateBurst)
	assert.True(t, cfg.ExposeProbeErrors)
	assert.Equal(t, "info", cfg.logLevelName)
	assert.NotNil(t, cfg.LogLevel)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHost, "127.0.0.1")
	t.Setenv(envHTTPPort, "9000")
	t.Setenv(envServerExpiryMs, "1000")
	t.Setenv(envProbeTimeoutMs, "250")
	t.Setenv(envStoreMaxEntries, "10")
	t.Setenv(envRedisAddr, "redis://localhost:6379")
	t.Setenv(envAnnounceRateLimit, "0.5")
	t.Setenv(envAnnounceRateBurst, "2")
	t.Setenv(envExposeProbeErrors, "false")
	t.Setenv(envLogLevel, "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, time.Second, cfg.ServerExpiry)
	assert.Equal(t, 250*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, 10, cfg.StoreMaxEntries)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0.5, cfg.AnnounceRateLimit)
	assert.Equal(t, 2, cfg.AnnounceRateBurst)
	assert.False(t, cfg.ExposeProbeErrors)
	assert.Equal(t, "debug", cfg.logLevelName)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "prsnt.yaml")
	content := `
host: 10.0.0.1
port: 8080
server_expiry_ms: 30000
probe_timeout_ms: 2000
store_max_entries: 100
announce_rate_limit: 1
expose_probe_errors: false
log_level: warn
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	t.Setenv(envConfigPath, cfgPath)
	t.Setenv(envHTTPPort, "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:9090", cfg.Addr(), "env overrides file")
	assert.Equal(t, 30*time.Second, cfg.ServerExpiry)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 100, cfg.StoreMaxEntries)
	assert.Equal(t, 1.0, cfg.AnnounceRateLimit)
	assert.Equal(t, 5, cfg.AnnounceRateBurst)
	assert.False(t, cfg.ExposeProbeErrors)
	assert.Equal(t, "warn", cfg.logLevelName)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		error string
	}{
		{name: "port not a number", env: map[string]string{envHTTPPort: "abc"}, error: "invalid SERVICE_PORT_HTTP"},
		{name: "port out of range", env: map[string]string{envHTTPPort: "70000"}, error: "SERVICE_PORT_HTTP must be 1-65535"},
		{name: "zero expiry", env: map[string]string{envServerExpiryMs: "0"}, error: "SERVER_EXPIRY_MS must be positive"},
		{name: "negative probe timeout", env: map[string]string{envProbeTimeoutMs: "-1"}, error: "PROBE_TIMEOUT_MS must be positive"},
		{name: "negative capacity", env: map[string]string{envStoreMaxEntries: "-1"}, error: "STORE_MAX_ENTRIES must not be negative"},
		{name: "bad rate", env: map[string]string{envAnnounceRateLimit: "fast"}, error: "invalid ANNOUNCE_RATE_LIMIT"},
		{name: "zero burst", env: map[string]string{envAnnounceRateLimit: "1", envAnnounceRateBurst: "0"}, error: "ANNOUNCE_RATE_BURST must be positive"},
		{name: "bad bool", env: map[string]string{envExposeProbeErrors: "maybe"}, error: "invalid EXPOSE_PROBE_ERRORS"},
		{name: "bad log level", env: map[string]string{envLogLevel: "trace"}, error: "LOG_LEVEL must be debug|info|warn|error"},
		{name: "missing file", env: map[string]string{envConfigPath: "/nonexistent/prsnt.yaml"}, error: "load config /nonexistent/prsnt.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.error)
		})
	}
}
