package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServersPath  = "/prsnt/servers.json"
	AnnouncePath = "/prsnt/announce"
	HealthzPath  = "/healthz"
	MetricsPath  = "/metrics"

	announceBodyLimit = "100K"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// GetServers (GET /prsnt/servers.json)
	GetServers(ctx echo.Context) error
	// Announce (POST /prsnt/announce)
	Announce(ctx echo.Context) error
	// Healthz (GET /healthz)
	Healthz(ctx echo.Context) error
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	Add(method string, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
// announceMiddleware runs after CORS on POST /prsnt/announce only.
func RegisterHandlers(router EchoRouter, si ServerInterface, announceMiddleware ...echo.MiddlewareFunc) {
	serversCORS := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead},
	})
	announceCORS := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc:  func(origin string) (bool, error) { return true, nil },
		AllowMethods:     []string{http.MethodPost},
		AllowHeaders:     []string{echo.HeaderContentType},
		AllowCredentials: true,
	})

	router.Add(http.MethodGet, ServersPath, si.GetServers, serversCORS)
	router.Add(http.MethodOptions, ServersPath, preflight, serversCORS)

	announce := append([]echo.MiddlewareFunc{announceCORS, middleware.BodyLimit(announceBodyLimit)}, announceMiddleware...)
	router.Add(http.MethodPost, AnnouncePath, si.Announce, announce...)
	router.Add(http.MethodOptions, AnnouncePath, preflight, announceCORS)

	router.Add(http.MethodGet, HealthzPath, si.Healthz)
}

// RegisterMetricsHandler exposes gatherer in the Prometheus text format.
func RegisterMetricsHandler(router EchoRouter, gatherer prometheus.Gatherer) {
	router.Add(http.MethodGet, MetricsPath, echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// preflight is only reached by OPTIONS requests without an Origin header;
// the CORS middleware answers real preflights itself.
func preflight(ctx echo.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}
