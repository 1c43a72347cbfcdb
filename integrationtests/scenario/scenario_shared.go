package scenario

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/modulesio/prsnt/adapters/prsntclient"
	"github.com/modulesio/prsnt/domain"
)

const targetName = "integration-test-server"

// CreateClient returns a registry client for cfg.
func CreateClient(cfg *Config) *prsntclient.Client {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return prsntclient.New(cfg.RegistryURL, client)
}

// Target is a local HTTP server the registry probes. It answers every request with the status set by SetStatus.
type Target struct {
	Address string
	Port    int
	status  atomic.Int32
	server  *http.Server
}

// StartTarget listens on host with an ephemeral port and answers 200 until SetStatus is called.
// Returns the target and a dispose function that stops it.
func StartTarget(host string) (*Target, func(), error) {
	l, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return nil, nil, fmt.Errorf("listen target: %w", err)
	}
	t := &Target{
		Address: host,
		Port:    l.Addr().(*net.TCPAddr).Port,
	}
	t.status.Store(http.StatusOK)
	t.server = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(int(t.status.Load()))
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = t.server.Serve(l)
	}()
	return t, func() { _ = t.server.Close() }, nil
}

// SetStatus changes the status code the target answers with.
func (t *Target) SetStatus(code int) {
	t.status.Store(int32(code))
}

// URL returns the registry key of the target.
func (t *Target) URL() string {
	return domain.ServerURL(domain.ProtocolHTTP, t.Address, t.Port)
}

// Announcement builds an announce request for the target.
func (t *Target) Announcement(visibility domain.Visibility, users ...string) prsntclient.AnnounceRequest {
	return prsntclient.AnnounceRequest{
		Name:       targetName,
		Protocol:   domain.ProtocolHTTP,
		Address:    t.Address,
		Port:       t.Port,
		Visibility: visibility,
		Users:      users,
	}
}

// ClosedPort returns a port on host nothing listens on.
func ClosedPort(host string) (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	return port, l.Close()
}

var errNotListed = errors.New("server not listed")

// findServer returns the listed record with the given url.
func findServer(servers []domain.ServerRecord, url string) (domain.ServerRecord, error) {
	for _, s := range servers {
		if s.URL == url {
			return s, nil
		}
	}
	return domain.ServerRecord{}, fmt.Errorf("%s: %w", url, errNotListed)
}
