// Package service ties the loaded store, the search engine and the name
// completer together for the front-ends.
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/votersearch/pkg/search"
	"github.com/bastiangx/votersearch/pkg/store"
	"github.com/bastiangx/votersearch/pkg/suggest"
	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/log"
)

// Status values reported by Info.
const (
	StatusLoading = "loading"
	StatusReady   = "ready"
)

// Info describes the currently published store.
type Info struct {
	Status   string    `json:"status" msgpack:"status"`
	Records  int       `json:"records" msgpack:"records"`
	Source   string    `json:"source,omitempty" msgpack:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero" msgpack:"loaded_at,omitempty"`
}

// Service answers queries against whatever store the handle currently holds.
// It is safe for concurrent use.
type Service struct {
	handle *store.Handle
	engine *search.Engine

	mu        sync.Mutex
	indexed   *store.Store
	completer suggest.ICompleter
}

// New creates a Service. A nil engine means default engine options.
func New(handle *store.Handle, engine *search.Engine) *Service {
	if engine == nil {
		engine = search.NewEngine(search.Options{})
	}
	return &Service{handle: handle, engine: engine}
}

// Search runs query in mode over the current snapshot.
func (s *Service) Search(query string, mode search.Mode) ([]voter.Record, error) {
	return s.engine.Search(s.handle.Get().Records(), query, mode)
}

// Complete returns name completions for prefix. The completer is built on
// first use for each snapshot.
func (s *Service) Complete(prefix string, limit int) ([]suggest.Suggestion, error) {
	c, err := s.completerFor(s.handle.Get())
	if err != nil {
		return nil, err
	}
	return c.Complete(prefix, limit), nil
}

func (s *Service) completerFor(st *store.Store) (suggest.ICompleter, error) {
	if !st.Ready() {
		return nil, search.ErrStoreNotReady
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexed != st {
		s.completer = suggest.FromRecords(st.Records())
		s.indexed = st
		stats := s.completer.Stats()
		log.Debugf("Indexed %d name words (%d distinct) from %s", stats["totalWords"], stats["distinctWords"], st.Source())
	}
	return s.completer, nil
}

// Info reports the state of the current snapshot.
func (s *Service) Info() Info {
	st := s.handle.Get()
	info := Info{
		Status:   StatusLoading,
		Records:  st.Len(),
		Source:   st.Source(),
		LoadedAt: st.LoadedAt(),
	}
	if st.Ready() {
		info.Status = StatusReady
	}
	return info
}

// Summary is the result line shown above a list of n matches for query.
func Summary(query string, n int) string {
	if n == 0 {
		return fmt.Sprintf("No voters found matching %q. Try a different name or voter ID.", query)
	}
	return fmt.Sprintf("Found %d voter(s) matching %q", n, query)
}

// Message turns a search error into the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return "Please enter a search term"
	case errors.Is(err, search.ErrStoreNotReady):
		return "Data not loaded yet. Please wait for the load to finish and retry."
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
