package search

import "github.com/bastiangx/votersearch/pkg/voter"

// Matcher decides whether a single record belongs to a result.
type Matcher interface {
	Match(r *voter.Record) bool
}

// OrMatcher matches when any of its matchers does.
type OrMatcher struct {
	matchers []Matcher
}

// MakeOrMatcher combines matchers with a logical OR, evaluated in order.
func MakeOrMatcher(matchers ...Matcher) *OrMatcher {
	return &OrMatcher{matchers: matchers}
}

func (m *OrMatcher) Match(r *voter.Record) bool {
	for _, sub := range m.matchers {
		if sub.Match(r) {
			return true
		}
	}
	return false
}

// MatcherFor builds the per-record predicate for mode.
// query must already be trimmed and non-empty.
func MatcherFor(query string, mode Mode, fold Folder) Matcher {
	switch mode {
	case ByIdentifier:
		return MakeIDMatcher(query, fold)
	case ByName:
		return MakeNameMatcher(query, fold)
	default:
		return MakeOrMatcher(MakeIDMatcher(query, fold), MakeNameMatcher(query, fold))
	}
}
