package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/modulesio/prsnt/adapters/memstore"
	"github.com/modulesio/prsnt/adapters/myredis"
	"github.com/modulesio/prsnt/adapters/probe"
	"github.com/modulesio/prsnt/handlers"
	"github.com/modulesio/prsnt/interfaces"
	"github.com/modulesio/prsnt/service"
)

const (
	redisKeyPrefix        = "prsnt:server"
	redisOperationTimeout = 3 * time.Second
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, config.LogLevel)

	level.Info(logger).Log("msg", "Starting prsnt service")
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"addr", config.Addr(),
		"server_expiry", config.ServerExpiry,
		"probe_timeout", config.ProbeTimeout,
		"store_max_entries", config.StoreMaxEntries,
		"redis_addr", config.Redis.Addr,
		"announce_rate_limit", config.AnnounceRateLimit,
		"expose_probe_errors", config.ExposeProbeErrors,
		"log_level", config.logLevelName,
	)

	clk := clock.New()

	var store interfaces.RegistryStore
	if config.Redis.Addr != "" {
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr, myredis.WithOperationTimeout(redisOperationTimeout))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		store = myredis.NewStore(redisClient, redisKeyPrefix, config.ServerExpiry)
	} else {
		store = memstore.New(clk, config.ServerExpiry, config.StoreMaxEntries)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(registry)

	// Create services
	var httpServer handlers.ServerInterface
	{
		validator, err := service.NewPayloadValidator()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load announce schema", "err", err)
			os.Exit(1)
		}
		livenessProbe := probe.NewHTTPProbe(probe.NewClient(), config.ProbeTimeout, logger)
		announcer := service.NewAnnouncer(
			store,
			livenessProbe,
			validator,
			clk,
			metrics,
			service.AnnouncerConfig{ExposeProbeErrors: config.ExposeProbeErrors},
			logger,
		)
		lister := service.NewLister(store, metrics)
		httpServer = handlers.NewHTTPServer(announcer, lister, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)

		var announceMiddleware []echo.MiddlewareFunc
		if config.AnnounceRateLimit > 0 {
			announceMiddleware = append(announceMiddleware, handlers.AnnounceRateLimiter(config.AnnounceRateLimit, config.AnnounceRateBurst))
		}
		handlers.RegisterHandlers(e, httpServer, announceMiddleware...)
		handlers.RegisterMetricsHandler(e, registry)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", config.Addr())
		if err := e.Start(config.Addr()); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout; in-flight announcements may wait for their probe
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ProbeTimeout+5*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
