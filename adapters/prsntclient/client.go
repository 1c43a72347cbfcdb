// Package prsntclient talks to a prsnt registry over HTTP.
package prsntclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/service"
)

// AnnounceRequest is the body of POST /prsnt/announce.
type AnnounceRequest struct {
	Name       string            `json:"name"`
	Protocol   domain.Protocol   `json:"protocol"`
	Address    string            `json:"address"`
	Port       int               `json:"port"`
	Visibility domain.Visibility `json:"visibility"`
	Users      []string          `json:"users"`
}

// Client announces servers to a registry and reads its listing.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the registry at baseURL (e.g. http://prsnt:8000), no trailing slash.
// Panics on empty baseURL or nil client.
func New(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: helpers.StrPanic(baseURL, "prsntclient.client.go: baseURL is required"),
		client:  helpers.NilPanic(client, "prsntclient.client.go: http client is required"),
	}
}

type serverInfo struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Protocol  string   `json:"protocol"`
	Address   string   `json:"address"`
	Port      int      `json:"port"`
	Users     []string `json:"users"`
	Timestamp int64    `json:"timestamp"`
	Online    bool     `json:"online"`
}

type errResponse struct {
	Error string `json:"error"`
}

// Announce posts req and waits for the registry's liveness verdict.
// Returns nil when the registry reached the announced server, bad_parameter on 400,
// bad_gateway on 502 and internal_server_error with the registry's message on 500.
func (c *Client) Announce(ctx context.Context, req AnnounceRequest) error {
	if req.Users == nil {
		req.Users = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("can't marshal announce request, err: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/prsnt/announce", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return service.NewBadParameterError("registry rejected announcement", nil)
	case http.StatusBadGateway:
		return service.NewBadGatewayError("registry could not reach announced server", nil)
	case http.StatusInternalServerError:
		var e errResponse
		if err := json.Unmarshal(respBody, &e); err != nil || e.Error == "" {
			return service.NewInternalServerError("registry failed", nil)
		}
		return service.NewInternalServerError(e.Error, nil)
	default:
		return fmt.Errorf("registry announce returned %d", resp.StatusCode)
	}
}

// Servers fetches the registry listing, most recent announcement first.
func (c *Client) Servers(ctx context.Context) ([]domain.ServerRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/prsnt/servers.json", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry listing returned %d", resp.StatusCode)
	}

	var raw []serverInfo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("can't decode registry listing, err: %w", err)
	}
	out := make([]domain.ServerRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.ServerRecord{
			Name:      r.Name,
			URL:       r.URL,
			Protocol:  domain.Protocol(r.Protocol),
			Address:   r.Address,
			Port:      r.Port,
			Users:     r.Users,
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
			Online:    r.Online,
		})
	}
	return out, nil
}
