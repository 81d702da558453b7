// Package store holds the loaded voter roll for the lifetime of the process.
//
// A Store is built once from a dataset.Source and never changes afterwards,
// so any number of goroutines may read it without locking. The front-ends
// share one Handle, which is empty until the load finishes.
package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bastiangx/votersearch/pkg/dataset"
	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/log"
)

// Store is an immutable, ordered collection of voter records.
type Store struct {
	records  []voter.Record
	source   string
	loadedAt time.Time
}

// New copies records into a new Store.
func New(records []voter.Record, source string) *Store {
	owned := make([]voter.Record, len(records))
	copy(owned, records)
	return &Store{
		records:  owned,
		source:   source,
		loadedAt: time.Now(),
	}
}

// Load performs the one bulk load from src.
func Load(ctx context.Context, src dataset.Source) (*Store, error) {
	start := time.Now()
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load voters from %s: %w", src.Name(), err)
	}
	log.Debugf("Loaded %d voters from %s in %v", len(records), src.Name(), time.Since(start))
	return &Store{
		records:  records,
		source:   src.Name(),
		loadedAt: time.Now(),
	}, nil
}

// Records returns the records in load order. Callers must not modify them.
func (s *Store) Records() []voter.Record {
	if s == nil {
		return nil
	}
	return s.records
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Ready reports whether the store holds any records.
func (s *Store) Ready() bool {
	return s.Len() > 0
}

// Source names where the records came from.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// LoadedAt is when the load completed.
func (s *Store) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Handle publishes a Store to concurrent readers. The zero value is empty.
type Handle struct {
	current atomic.Pointer[Store]
}

// Get returns the published store, or nil before the load completes.
func (h *Handle) Get() *Store {
	return h.current.Load()
}

// Set publishes s.
func (h *Handle) Set(s *Store) {
	h.current.Store(s)
}

// LoadInto loads src and publishes the result on h.
// It is meant to run in its own goroutine while the front-end starts serving.
func LoadInto(ctx context.Context, h *Handle, src dataset.Source) error {
	s, err := Load(ctx, src)
	if err != nil {
		return err
	}
	h.Set(s)
	return nil
}
