package search

import (
	"strings"

	"github.com/bastiangx/votersearch/pkg/voter"
)

// IDMatcher matches the query as a literal, case-sensitive substring of the
// voter id or the voter card id.
type IDMatcher struct {
	term string
	fold Folder
}

// MakeIDMatcher creates an identifier matcher for the trimmed query.
func MakeIDMatcher(query string, fold Folder) *IDMatcher {
	fold = orIdentity(fold)
	return &IDMatcher{
		term: fold(strings.TrimSpace(query)),
		fold: fold,
	}
}

// Match reports whether either identifier contains the term.
// An empty term matches every record, an empty identifier only an empty term.
func (m *IDMatcher) Match(r *voter.Record) bool {
	return containsID(m.fold(r.ID.Trimmed()), m.term) ||
		containsID(m.fold(r.VoterCardID.Trimmed()), m.term)
}

func containsID(id, term string) bool {
	return strings.Contains(id, term) || id == term
}
