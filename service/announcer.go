package service

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
)

const hiddenProbeError = "liveness probe failed"

// AnnouncerConfig holds the non-dependency settings of an Announcer.
type AnnouncerConfig struct {
	// ExposeProbeErrors puts the raw probe error into the message of hard failures,
	// which the HTTP layer returns to the announcing client.
	ExposeProbeErrors bool
}

// Announcer implements interfaces.AnnounceCoordinator.
//
// A public announcement is committed in two phases: a provisional record carrying the
// previous online flag is written before the probe, the probe outcome is written after it.
// Nothing is held across the probe, so concurrent announcements for one URL race:
// the last provisional write wins the metadata and the last finished probe wins the flag.
type Announcer struct {
	store     interfaces.RegistryStore
	probe     interfaces.LivenessProbe
	validator *PayloadValidator
	clock     interfaces.TimeProvider
	metrics   *Metrics
	config    AnnouncerConfig
	logger    log.Logger
}

// NewAnnouncer creates a new Announcer. Panics on nil dependencies.
func NewAnnouncer(
	store interfaces.RegistryStore,
	probe interfaces.LivenessProbe,
	validator *PayloadValidator,
	clock interfaces.TimeProvider,
	metrics *Metrics,
	config AnnouncerConfig,
	logger log.Logger,
) *Announcer {
	return &Announcer{
		store:     helpers.NilPanic(store, "service.announcer.go: store is required"),
		probe:     helpers.NilPanic(probe, "service.announcer.go: probe is required"),
		validator: helpers.NilPanic(validator, "service.announcer.go: validator is required"),
		clock:     helpers.NilPanic(clock, "service.announcer.go: clock is required"),
		metrics:   helpers.NilPanic(metrics, "service.announcer.go: metrics is required"),
		config:    config,
		logger:    log.WithPrefix(helpers.NilPanic(logger, "service.announcer.go: logger is required"), "component", "Announcer"),
	}
}

// Announce validates payload, commits a provisional record for public announcements,
// probes the announced server and commits the outcome.
func (a *Announcer) Announce(ctx context.Context, payload []byte) error {
	announcement, err := a.validator.Validate(payload)
	if err != nil {
		a.metrics.observeMalformed()
		return err
	}

	url := announcement.URL()
	if announcement.Public() {
		if err := a.commitProvisional(ctx, announcement); err != nil {
			return err
		}
	}

	start := a.clock.Now()
	result := a.probe.Probe(ctx, announcement.Target())
	a.metrics.observeProbe(result.Outcome, a.clock.Now().Sub(start))

	if announcement.Public() {
		if err := a.commitOutcome(ctx, url, result.Outcome == domain.ProbeLive); err != nil {
			return err
		}
	}

	logger := log.With(a.logger, "url", url, "visibility", announcement.Visibility, "outcome", result.Outcome)
	switch result.Outcome {
	case domain.ProbeLive:
		level.Debug(logger).Log("msg", "announced server is live")
		return nil
	case domain.ProbeUnreachableSoft:
		level.Info(logger).Log("msg", "announced server is unreachable", "status", result.StatusCode, "err", result.Err)
		return NewBadGatewayError("announced server is unreachable", result.Err)
	default:
		level.Error(logger).Log("msg", "liveness probe failed", "err", result.Err)
		message := hiddenProbeError
		if a.config.ExposeProbeErrors && result.Err != nil {
			message = result.Err.Error()
		}
		return NewMyError(ErrInternalServerError, message, result.Err)
	}
}

// commitProvisional replaces the record for the announced URL, seeding online from the
// previous record so listings during the probe keep showing the last known liveness.
func (a *Announcer) commitProvisional(ctx context.Context, announcement domain.Announcement) error {
	url := announcement.URL()

	online := false
	previous, err := a.store.Get(ctx, url)
	switch {
	case err == nil:
		online = previous.Online
	case !IsEntityNotFoundError(err):
		return fmt.Errorf("announce failed to read previous record, err: %w", err)
	}

	if err := a.store.Put(ctx, url, announcement.Record(a.clock.Now(), online)); err != nil {
		return fmt.Errorf("announce failed to write provisional record, err: %w", err)
	}
	return nil
}

func (a *Announcer) commitOutcome(ctx context.Context, url string, online bool) error {
	err := a.store.SetOnline(ctx, url, online)
	switch {
	case err == nil:
		return nil
	case IsEntityNotFoundError(err):
		// Expired or evicted while the probe was in flight.
		level.Debug(a.logger).Log("msg", "record vanished before probe outcome", "url", url)
		return nil
	default:
		return fmt.Errorf("announce failed to write probe outcome, err: %w", err)
	}
}
