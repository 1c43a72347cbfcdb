// Package handlers contains http handlers for prsnt.
package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"

	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	announcer interfaces.AnnounceCoordinator
	lister    interfaces.ListingService
	logger    log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(announcer interfaces.AnnounceCoordinator, lister interfaces.ListingService, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		announcer: helpers.NilPanic(announcer, "handlers.http.go: announcer is required"),
		lister:    helpers.NilPanic(lister, "handlers.http.go: lister is required"),
		logger:    logger,
	}
}

// GetServers (GET /prsnt/servers.json) returns the live registry, most recent announcement first.
func (h *HTTPServer) GetServers(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	records, err := h.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("getServers failed to list servers, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toServersResponse(records))
}

// Announce (POST /prsnt/announce) hands the raw body to the announcer.
// Returns 200 when the announced server is live, 400 on malformed body, 502 when the server
// is unreachable, 500 on probe or store failure.
func (h *HTTPServer) Announce(ectx echo.Context) error {
	payload, err := io.ReadAll(ectx.Request().Body)
	if err != nil {
		return fmt.Errorf("announce failed to read body, err: %w", err)
	}

	ctx := ectx.Request().Context()
	if err := h.announcer.Announce(ctx, payload); err != nil {
		return err
	}

	return ectx.NoContent(http.StatusOK)
}

// Healthz (GET /healthz) reports that the registry process is serving.
func (h *HTTPServer) Healthz(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "ok")
}
