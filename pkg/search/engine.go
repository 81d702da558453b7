// Package search is the query engine: it maps a query string and a Mode onto
// the records that match, in their original order.
//
// The engine holds no state between calls. Callers pass the loaded records
// in and get a fresh result back:
//
//	result, err := search.Search(store.Records(), "Yadav Shivaraj", search.ByName)
//	if errors.Is(err, search.ErrEmptyQuery) { ... }
//
// Matching is plain substring containment. Latin name fields are compared
// case-insensitively, identifiers literally, and native-script fields both
// lower-cased and as-is. Multi-word name queries match when every word is
// found in some name field, in any order.
package search

import (
	"strings"

	"github.com/bastiangx/votersearch/pkg/voter"
)

// Options tune the engine.
type Options struct {
	// NormalizeUnicode composes query and fields to NFC before comparing.
	NormalizeUnicode bool
}

// Engine runs searches with a fixed set of options.
type Engine struct {
	fold Folder
}

// NewEngine creates an engine for opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{fold: Identity}
	if opts.NormalizeUnicode {
		e.fold = NFC
	}
	return e
}

var defaultEngine = NewEngine(Options{})

// Search runs query against records with default options.
func Search(records []voter.Record, query string, mode Mode) ([]voter.Record, error) {
	return defaultEngine.Search(records, query, mode)
}

// Search validates the query, then filters records with the matcher for mode.
// A blank query fails with ErrEmptyQuery, an empty record slice with
// ErrStoreNotReady. No matches is a successful, empty result.
func (e *Engine) Search(records []voter.Record, query string, mode Mode) ([]voter.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(records) == 0 {
		return nil, ErrStoreNotReady
	}
	return Filter(records, MatcherFor(query, mode, e.fold)), nil
}

// Filter keeps the records m matches, preserving their order.
// The result never aliases records and is non-nil.
func Filter(records []voter.Record, m Matcher) []voter.Record {
	result := make([]voter.Record, 0)
	for i := range records {
		if m.Match(&records[i]) {
			result = append(result, records[i])
		}
	}
	return result
}
