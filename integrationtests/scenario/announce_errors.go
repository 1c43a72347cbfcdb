package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/modulesio/prsnt/adapters/prsntclient"
	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/service"
)

const (
	scenarioMalformedAnnouncement = "malformed_announcement"
	scenarioPrivateAnnouncement   = "private_announcement"
	scenarioProbeRefused          = "probe_refused"
)

func init() {
	Register(scenarioMalformedAnnouncement, runMalformedAnnouncement)
	Register(scenarioPrivateAnnouncement, runPrivateAnnouncement)
	Register(scenarioProbeRefused, runProbeRefused)
}

// runMalformedAnnouncement sends an announcement with an unsupported protocol and expects
// bad_parameter with nothing listed.
func runMalformedAnnouncement(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := CreateClient(cfg)
	target, dispose, err := StartTarget(cfg.TargetHost)
	if err != nil {
		return err
	}
	defer dispose()

	req := target.Announcement(domain.VisibilityPublic)
	req.Protocol = "ftp"
	if err := client.Announce(ctx, req); !service.IsBadParameterError(err) {
		return fmt.Errorf("expected bad_parameter, got %v", err)
	}

	return expectNotListed(ctx, client, target.URL())
}

// runPrivateAnnouncement announces a live target privately and expects success without a listing.
func runPrivateAnnouncement(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := CreateClient(cfg)
	target, dispose, err := StartTarget(cfg.TargetHost)
	if err != nil {
		return err
	}
	defer dispose()

	if err := client.Announce(ctx, target.Announcement(domain.VisibilityPrivate)); err != nil {
		return fmt.Errorf("announce private target: %w", err)
	}

	return expectNotListed(ctx, client, target.URL())
}

// runProbeRefused announces a port nothing listens on and expects internal_server_error
// with the record stored offline.
func runProbeRefused(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := CreateClient(cfg)
	port, err := ClosedPort(cfg.TargetHost)
	if err != nil {
		return fmt.Errorf("find closed port: %w", err)
	}
	req := prsntclient.AnnounceRequest{
		Name:       targetName,
		Protocol:   domain.ProtocolHTTP,
		Address:    cfg.TargetHost,
		Port:       port,
		Visibility: domain.VisibilityPublic,
	}

	if err := client.Announce(ctx, req); !service.IsInternalServerError(err) {
		return fmt.Errorf("expected internal_server_error, got %v", err)
	}

	servers, err := client.Servers(ctx)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	rec, err := findServer(servers, domain.ServerURL(domain.ProtocolHTTP, cfg.TargetHost, port))
	if err != nil {
		return err
	}
	if rec.Online {
		return fmt.Errorf("refused target listed online")
	}
	return nil
}

func expectNotListed(ctx context.Context, client *prsntclient.Client, url string) error {
	servers, err := client.Servers(ctx)
	if err != nil {
		return fmt.Errorf("list servers: %w", err)
	}
	if _, err := findServer(servers, url); err == nil {
		return fmt.Errorf("%s must not be listed", url)
	}
	return nil
}
