package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

// AdvisoryStore keeps the newest advisory per station, by valid time.
type AdvisoryStore struct {
	mu     sync.RWMutex
	latest map[string]storedAdvisory
}

type storedAdvisory struct {
	validAt time.Time
	value   []byte
}

// NewAdvisoryStore creates an empty store.
func NewAdvisoryStore() *AdvisoryStore {
	return &AdvisoryStore{latest: make(map[string]storedAdvisory)}
}

// Latest returns the newest advisory JSON recorded for station.
func (s *AdvisoryStore) Latest(station string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.latest[station]
	return v.value, ok
}

// put records value unless the station already holds a newer advisory.
// Equal valid times replace, so a reprocessed forecast wins.
func (s *AdvisoryStore) put(station string, validAt time.Time, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.latest[station]; ok && cur.validAt.After(validAt) {
		return
	}
	s.latest[station] = storedAdvisory{validAt: validAt, value: value}
}

// RecordingLoader wraps a BatchLoader and records every successfully loaded
// advisory in an AdvisoryStore, keyed by the event's station header.
type RecordingLoader struct {
	inner BatchLoader
	store *AdvisoryStore
}

// NewRecordingLoader creates a recording decorator around a loader.
func NewRecordingLoader(inner BatchLoader, store *AdvisoryStore) *RecordingLoader {
	return &RecordingLoader{inner: inner, store: store}
}

func (l *RecordingLoader) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if err := l.inner.LoadBatch(ctx, events); err != nil {
		return err
	}
	for _, e := range events {
		station := e.Headers[HeaderStation]
		if station == "" {
			continue
		}
		// A missing or malformed valid_at never displaces a dated advisory.
		validAt, _ := time.Parse(time.RFC3339, e.Headers[HeaderValidAt])
		l.store.put(station, validAt, e.Value)
	}
	return nil
}
