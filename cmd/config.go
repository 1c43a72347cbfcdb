package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/modulesio/prsnt/adapters/myredis"
)

// Env variable names.
const (
	envHost              = "SERVICE_HOST"
	envHTTPPort          = "SERVICE_PORT_HTTP"
	envServerExpiryMs    = "SERVER_EXPIRY_MS"
	envProbeTimeoutMs    = "PROBE_TIMEOUT_MS"
	envStoreMaxEntries   = "STORE_MAX_ENTRIES"
	envRedisAddr         = "REDIS_ADDR"
	envAnnounceRateLimit = "ANNOUNCE_RATE_LIMIT"
	envAnnounceRateBurst = "ANNOUNCE_RATE_BURST"
	envExposeProbeErrors = "EXPOSE_PROBE_ERRORS"
	envLogLevel          = "LOG_LEVEL"
	envConfigPath        = "CONFIG_PATH"
)

// Defaults.
const (
	defaultHost              = "0.0.0.0"
	defaultHTTPPort          = 8000
	defaultServerExpiryMs    = 60000
	defaultProbeTimeoutMs    = 5000
	defaultAnnounceRateBurst = 5
	defaultLogLevel          = "info"
)

// PrsntConfig holds the registry configuration loaded by LoadConfig.
type PrsntConfig struct {
	Host              string
	HTTPPort          int
	ServerExpiry      time.Duration
	ProbeTimeout      time.Duration
	StoreMaxEntries   int // 0 = unbounded
	Redis             myredis.RedisConfig
	AnnounceRateLimit float64 // announces per second per client IP, 0 = off
	AnnounceRateBurst int
	ExposeProbeErrors bool
	LogLevel          level.Option
	logLevelName      string
}

// yamlConfig mirrors PrsntConfig in the optional file at CONFIG_PATH.
// Nil fields are left at their default.
type yamlConfig struct {
	Host              *string  `yaml:"host"`
	Port              *int     `yaml:"port"`
	ServerExpiryMs    *int     `yaml:"server_expiry_ms"`
	ProbeTimeoutMs    *int     `yaml:"probe_timeout_ms"`
	StoreMaxEntries   *int     `yaml:"store_max_entries"`
	RedisAddr         *string  `yaml:"redis_addr"`
	AnnounceRateLimit *float64 `yaml:"announce_rate_limit"`
	AnnounceRateBurst *int     `yaml:"announce_rate_burst"`
	ExposeProbeErrors *bool    `yaml:"expose_probe_errors"`
	LogLevel          *string  `yaml:"log_level"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the registry config from defaults, the optional YAML file at CONFIG_PATH
// and environment variables, in that order of precedence (env wins).
// Returns an error on unreadable file or any invalid value.
func LoadConfig() (*PrsntConfig, error) {
	host := defaultHost
	port := defaultHTTPPort
	serverExpiryMs := defaultServerExpiryMs
	probeTimeoutMs := defaultProbeTimeoutMs
	storeMaxEntries := 0
	redisAddr := ""
	rateLimit := 0.0
	rateBurst := defaultAnnounceRateBurst
	exposeProbeErrors := true
	logLevel := defaultLogLevel

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		setFrom(&host, raw.Host)
		setFrom(&port, raw.Port)
		setFrom(&serverExpiryMs, raw.ServerExpiryMs)
		setFrom(&probeTimeoutMs, raw.ProbeTimeoutMs)
		setFrom(&storeMaxEntries, raw.StoreMaxEntries)
		setFrom(&redisAddr, raw.RedisAddr)
		setFrom(&rateLimit, raw.AnnounceRateLimit)
		setFrom(&rateBurst, raw.AnnounceRateBurst)
		setFrom(&exposeProbeErrors, raw.ExposeProbeErrors)
		setFrom(&logLevel, raw.LogLevel)
	}

	if v := strings.TrimSpace(os.Getenv(envHost)); v != "" {
		host = v
	}
	if v := strings.TrimSpace(os.Getenv(envRedisAddr)); v != "" {
		redisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		logLevel = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{envHTTPPort, &port},
		{envServerExpiryMs, &serverExpiryMs},
		{envProbeTimeoutMs, &probeTimeoutMs},
		{envStoreMaxEntries, &storeMaxEntries},
		{envAnnounceRateBurst, &rateBurst},
	} {
		if err := intFromEnv(e.name, e.dst); err != nil {
			return nil, err
		}
	}
	if v := strings.TrimSpace(os.Getenv(envAnnounceRateLimit)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envAnnounceRateLimit, err)
		}
		rateLimit = f
	}
	if v := strings.TrimSpace(os.Getenv(envExposeProbeErrors)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envExposeProbeErrors, err)
		}
		exposeProbeErrors = b
	}

	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, port)
	}
	if serverExpiryMs <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", envServerExpiryMs, serverExpiryMs)
	}
	if probeTimeoutMs <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", envProbeTimeoutMs, probeTimeoutMs)
	}
	if storeMaxEntries < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", envStoreMaxEntries, storeMaxEntries)
	}
	if rateLimit < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %v", envAnnounceRateLimit, rateLimit)
	}
	if rateLimit > 0 && rateBurst < 1 {
		return nil, fmt.Errorf("%s must be positive when %s is set, got %d", envAnnounceRateBurst, envAnnounceRateLimit, rateBurst)
	}
	levelOption, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	return &PrsntConfig{
		Host:              host,
		HTTPPort:          port,
		ServerExpiry:      time.Duration(serverExpiryMs) * time.Millisecond,
		ProbeTimeout:      time.Duration(probeTimeoutMs) * time.Millisecond,
		StoreMaxEntries:   storeMaxEntries,
		Redis:             myredis.RedisConfig{Addr: redisAddr},
		AnnounceRateLimit: rateLimit,
		AnnounceRateBurst: rateBurst,
		ExposeProbeErrors: exposeProbeErrors,
		LogLevel:          levelOption,
		logLevelName:      strings.ToLower(logLevel),
	}, nil
}

// Addr returns the listen address host:port.
func (c *PrsntConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

func setFrom[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func intFromEnv(name string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

func parseLogLevel(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("%s must be debug|info|warn|error, got %q", envLogLevel, s)
	}
}
