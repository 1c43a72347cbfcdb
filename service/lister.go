package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
)

// Lister implements interfaces.ListingService on top of a RegistryStore.
type Lister struct {
	store   interfaces.RegistryStore
	metrics *Metrics
}

// NewLister creates a new Lister. Panics on nil dependencies.
func NewLister(store interfaces.RegistryStore, metrics *Metrics) *Lister {
	return &Lister{
		store:   helpers.NilPanic(store, "service.lister.go: store is required"),
		metrics: helpers.NilPanic(metrics, "service.lister.go: metrics is required"),
	}
}

// List returns the non-expired records, most recently announced first.
// Records with equal timestamps are ordered by URL.
func (l *Lister) List(ctx context.Context) ([]domain.ServerRecord, error) {
	records, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list failed to read records from store, err: %w", err)
	}

	slices.SortFunc(records, func(a, b domain.ServerRecord) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})
	l.metrics.observeListing(len(records))

	return records, nil
}
