package domain

import (
	"fmt"
	"time"
)

// Protocol is the scheme an announced server is reachable with.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// Visibility decides whether an announcement is stored and listed.
type Visibility string

const (
	// VisibilityPublic announcements are stored and listed.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate announcements are probed but never stored.
	VisibilityPrivate Visibility = "private"
)

// ServerRecord is one announced endpoint stored by the registry, keyed by URL.
type ServerRecord struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Protocol  Protocol  `json:"protocol"`
	Address   string    `json:"address"` // dotted-decimal IPv4
	Port      int       `json:"port"`
	Users     []string  `json:"users"`
	Timestamp time.Time `json:"timestamp"` // time of the last accepted announcement
	Online    bool      `json:"online"`
}

// Announcement is a validated announce payload.
type Announcement struct {
	Name       string
	Protocol   Protocol
	Address    string
	Port       int
	Visibility Visibility
	Users      []string
}

// ServerURL builds the canonical identity key protocol://address:port.
func ServerURL(protocol Protocol, address string, port int) string {
	return fmt.Sprintf("%s://%s:%d", protocol, address, port)
}

// URL returns the canonical identity key of the announced server.
func (a Announcement) URL() string {
	return ServerURL(a.Protocol, a.Address, a.Port)
}

// Public reports whether the announcement induces a stored record.
func (a Announcement) Public() bool {
	return a.Visibility == VisibilityPublic
}

// Target returns the endpoint the liveness probe is sent to.
func (a Announcement) Target() ProbeTarget {
	return ProbeTarget{Protocol: a.Protocol, Address: a.Address, Port: a.Port}
}

// Record builds the full record replacing any previous one for the same URL.
func (a Announcement) Record(timestamp time.Time, online bool) ServerRecord {
	return ServerRecord{
		Name:      a.Name,
		URL:       a.URL(),
		Protocol:  a.Protocol,
		Address:   a.Address,
		Port:      a.Port,
		Users:     a.Users,
		Timestamp: timestamp,
		Online:    online,
	}
}
