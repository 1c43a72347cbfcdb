// Package memstore is the in-process RegistryStore backed by ttlcache.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces"
	"github.com/modulesio/prsnt/service"
)

type entry struct {
	record    domain.ServerRecord
	writtenAt time.Time
}

// Store keeps records in a ttlcache.Cache.
//
// Expiry is decided by the injected clock against the write time of each entry; the cache TTL
// only releases memory. No cleanup goroutine is started: expired entries are dropped when a
// read finds them. With a capacity set, the cache evicts the least recently used entry, which
// is the least recently written one because every Get of a key is followed by a write of it.
type Store struct {
	mu     sync.Mutex
	cache  *ttlcache.Cache[string, entry]
	clock  interfaces.TimeProvider
	expiry time.Duration
}

var _ interfaces.RegistryStore = (*Store)(nil)

// New creates a Store whose records expire expiry after being written.
// maxEntries of zero leaves the store unbounded.
func New(clock interfaces.TimeProvider, expiry time.Duration, maxEntries int) *Store {
	if expiry <= 0 {
		panic("memstore.store.go: expiry must be positive")
	}
	opts := []ttlcache.Option[string, entry]{
		ttlcache.WithTTL[string, entry](expiry),
		ttlcache.WithDisableTouchOnHit[string, entry](),
	}
	if maxEntries > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, entry](uint64(maxEntries)))
	}
	return &Store{
		cache:  ttlcache.New[string, entry](opts...),
		clock:  helpers.NilPanic(clock, "memstore.store.go: clock is required"),
		expiry: expiry,
	}
}

func (s *Store) Put(_ context.Context, url string, record domain.ServerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(url, entry{record: record, writtenAt: s.clock.Now()}, s.expiry)
	return nil
}

func (s *Store) Get(_ context.Context, url string) (domain.ServerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLocked(url)
	if !ok {
		return domain.ServerRecord{}, service.NewEntityNotFoundError("server not found", nil)
	}
	return e.record, nil
}

func (s *Store) List(_ context.Context) ([]domain.ServerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.DeleteExpired()
	now := s.clock.Now()
	records := make([]domain.ServerRecord, 0, s.cache.Len())
	for url, item := range s.cache.Items() {
		e := item.Value()
		if s.expired(e, now) {
			s.cache.Delete(url)
			continue
		}
		records = append(records, e.record)
	}
	return records, nil
}

// SetOnline rewrites the entry with the remaining part of its expiry window.
func (s *Store) SetOnline(_ context.Context, url string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLocked(url)
	if !ok {
		return service.NewEntityNotFoundError("server not found", nil)
	}
	e.record.Online = online
	remaining := s.expiry - s.clock.Now().Sub(e.writtenAt)
	s.cache.Set(url, e, remaining)
	return nil
}

// getLocked requires that s.mu be held.
func (s *Store) getLocked(url string) (entry, bool) {
	item := s.cache.Get(url)
	if item == nil {
		return entry{}, false
	}
	e := item.Value()
	if s.expired(e, s.clock.Now()) {
		s.cache.Delete(url)
		return entry{}, false
	}
	return e, true
}

func (s *Store) expired(e entry, now time.Time) bool {
	return now.Sub(e.writtenAt) >= s.expiry
}
