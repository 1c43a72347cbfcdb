// Package probe implements the outbound liveness check for announced servers.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
)

// DefaultTimeout bounds a probe when no other timeout is configured.
const DefaultTimeout = 5 * time.Second

// NewClient returns the http.Client probes are sent with: no proxy, no connection reuse
// between announced hosts and no redirect following.
func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				KeepAlive: -1,
			}).DialContext,
			DisableKeepAlives:   true,
			TLSHandshakeTimeout: DefaultTimeout,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// HTTPProbe sends HEAD / to announced servers.
type HTTPProbe struct {
	client  *http.Client
	timeout time.Duration
	logger  log.Logger
}

var _ interfaces.LivenessProbe = (*HTTPProbe)(nil)

// NewHTTPProbe creates an HTTPProbe. Panics on nil client or logger and on a non-positive timeout.
func NewHTTPProbe(client *http.Client, timeout time.Duration, logger log.Logger) *HTTPProbe {
	if timeout <= 0 {
		panic("probe.http_probe.go: timeout must be positive")
	}
	return &HTTPProbe{
		client:  helpers.NilPanic(client, "probe.http_probe.go: http client is required"),
		timeout: timeout,
		logger:  log.WithPrefix(helpers.NilPanic(logger, "probe.http_probe.go: logger is required"), "component", "HTTPProbe"),
	}
}

// Probe issues HEAD target.URL() and classifies the result. Cancellation of ctx is ignored;
// the request is canceled only when the probe timeout expires.
func (p *HTTPProbe) Probe(ctx context.Context, target domain.ProbeTarget) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.URL(), nil)
	if err != nil {
		return domain.ProbeResult{Outcome: domain.ProbeUnreachableHard, Err: fmt.Errorf("can't build probe request, err: %w", err)}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		outcome := Classify(err)
		level.Debug(p.logger).Log("msg", "probe request failed", "target", target.URL(), "outcome", outcome, "err", err)
		return domain.ProbeResult{Outcome: outcome, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return domain.ProbeResult{
			Outcome:    domain.ProbeUnreachableSoft,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("probe of %s returned %d", target.URL(), resp.StatusCode),
		}
	}
	return domain.ProbeResult{Outcome: domain.ProbeLive, StatusCode: resp.StatusCode}
}

// Classify maps a failed probe request to an outcome. Resolution failures, resets, hang-ups,
// timeouts and cancellation are soft; everything else, including refused connections, is hard.
func Classify(err error) domain.ProbeOutcome {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
	case errors.As(err, &dnsErr):
	case errors.Is(err, syscall.ECONNRESET):
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	case errors.As(err, &netErr) && netErr.Timeout():
	default:
		return domain.ProbeUnreachableHard
	}
	return domain.ProbeUnreachableSoft
}
