package interfaces

import (
	"context"

	"github.com/modulesio/prsnt/domain"
)

// RegistryStore keeps at most one ServerRecord per URL for a bounded time after it was written.
// Expiry is anchored at the write and is checked when reading; reads never extend it.
//
//go:generate moq -stub -out mock/store.go -pkg mock . RegistryStore
type RegistryStore interface {
	// Put inserts or replaces the record stored under url and restarts its expiry window.
	// Returns:
	// 1) nil on success;
	// 2) internal_server_error when the storage write fails.
	Put(ctx context.Context, url string, record domain.ServerRecord) error

	// Get returns the record stored under url.
	// Returns:
	// 1) (record, nil) when present and not expired;
	// 2) entity_not_found when absent or expired;
	// 3) internal_server_error when the storage read fails.
	Get(ctx context.Context, url string) (domain.ServerRecord, error)

	// List returns every record that has not expired, in no particular order.
	// Returns:
	// 1) (records, nil), possibly empty;
	// 2) (nil, internal_server_error) when the storage read fails.
	List(ctx context.Context) ([]domain.ServerRecord, error)

	// SetOnline flips the online flag of the record stored under url, keeping its timestamp
	// and the remaining expiry window.
	// Returns:
	// 1) nil on success;
	// 2) entity_not_found when absent or expired;
	// 3) internal_server_error when the storage update fails.
	SetOnline(ctx context.Context, url string, online bool) error
}
