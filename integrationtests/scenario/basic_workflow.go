package scenario

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/service"
)

const scenarioBasicWorkflow = "basic_workflow"

func init() {
	Register(scenarioBasicWorkflow, runBasicWorkflow)
}

// runBasicWorkflow announces a live target, checks it is listed online, then makes the target
// answer 503 and checks the next announcement is rejected and the record flips offline.
func runBasicWorkflow(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := CreateClient(cfg)
	target, dispose, err := StartTarget(cfg.TargetHost)
	if err != nil {
		return err
	}
	defer dispose()

	// 1. Live announcement
	if err := client.Announce(ctx, target.Announcement(domain.VisibilityPublic, "alice")); err != nil {
		return fmt.Errorf("announce live target: %w", err)
	}
	servers, err := client.Servers(ctx)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	rec, err := findServer(servers, target.URL())
	if err != nil {
		return err
	}
	if !rec.Online {
		return fmt.Errorf("live target listed offline")
	}
	if !slices.Equal(rec.Users, []string{"alice"}) {
		return fmt.Errorf("unexpected users %v", rec.Users)
	}
	announcedAt := rec.Timestamp

	// 2. Target goes unhealthy
	target.SetStatus(http.StatusServiceUnavailable)
	err = client.Announce(ctx, target.Announcement(domain.VisibilityPublic, "alice", "bob"))
	if !service.IsBadGatewayError(err) {
		return fmt.Errorf("announce unhealthy target: expected bad_gateway, got %v", err)
	}
	servers, err = client.Servers(ctx)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	rec, err = findServer(servers, target.URL())
	if err != nil {
		return err
	}
	if rec.Online {
		return fmt.Errorf("unhealthy target listed online")
	}
	if !slices.Equal(rec.Users, []string{"alice", "bob"}) {
		return fmt.Errorf("metadata not replaced, users %v", rec.Users)
	}
	if rec.Timestamp.Before(announcedAt) {
		return fmt.Errorf("timestamp went backwards: %v < %v", rec.Timestamp, announcedAt)
	}

	return nil
}
