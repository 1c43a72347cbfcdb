package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnnouncement_URL(t *testing.T) {
	a := Announcement{Protocol: ProtocolHTTP, Address: "1.2.3.4", Port: 80}
	assert.Equal(t, "http://1.2.3.4:80", a.URL())
	assert.Equal(t, "http://1.2.3.4:80/", a.Target().URL())

	a = Announcement{Protocol: ProtocolHTTPS, Address: "10.0.0.1", Port: 8443}
	assert.Equal(t, "https://10.0.0.1:8443", a.URL())
}

func TestAnnouncement_Record(t *testing.T) {
	ts := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	a := Announcement{
		Name:       "a",
		Protocol:   ProtocolHTTP,
		Address:    "1.2.3.4",
		Port:       80,
		Visibility: VisibilityPublic,
		Users:      []string{"x"},
	}

	assert.True(t, a.Public())
	assert.Equal(t, ServerRecord{
		Name:      "a",
		URL:       "http://1.2.3.4:80",
		Protocol:  ProtocolHTTP,
		Address:   "1.2.3.4",
		Port:      80,
		Users:     []string{"x"},
		Timestamp: ts,
		Online:    true,
	}, a.Record(ts, true))

	a.Visibility = VisibilityPrivate
	assert.False(t, a.Public())
}

func TestProbeOutcome_String(t *testing.T) {
	assert.Equal(t, "live", ProbeLive.String())
	assert.Equal(t, "unreachable_soft", ProbeUnreachableSoft.String())
	assert.Equal(t, "unreachable_hard", ProbeUnreachableHard.String())
	assert.Equal(t, "unknown", ProbeOutcome(42).String())
}
