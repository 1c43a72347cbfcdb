package interfaces

import (
	"context"

	"github.com/modulesio/prsnt/domain"
)

// AnnounceCoordinator validates announcements, probes the announced server and commits the record.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . AnnounceCoordinator ListingService
type AnnounceCoordinator interface {
	// Announce handles one raw announce payload.
	// Returns:
	// 1) nil when the announced server answered the probe with 200;
	// 2) bad_parameter when the payload is malformed (nothing is stored or probed);
	// 3) bad_gateway when the probe failed softly;
	// 4) internal_server_error when the probe failed hard or the store failed.
	Announce(ctx context.Context, payload []byte) error
}

// ListingService produces the externally visible snapshot of live records.
type ListingService interface {
	// List returns the non-expired records, most recently announced first.
	List(ctx context.Context) ([]domain.ServerRecord, error)
}
