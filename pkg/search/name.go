package search

import (
	"strings"

	"github.com/bastiangx/votersearch/pkg/voter"
)

// token is one whitespace-delimited word of a name query.
type token struct {
	raw   string
	lower string
}

// NameMatcher matches a query against the Latin and native-script name
// triples of a record. Every field is compared twice: lower-cased against the
// lower-cased query and raw against the raw query.
type NameMatcher struct {
	raw    string
	lower  string
	tokens []token
	fold   Folder
}

// MakeNameMatcher creates a name matcher for the trimmed query.
// Queries with two or more words use token matching.
func MakeNameMatcher(query string, fold Folder) *NameMatcher {
	fold = orIdentity(fold)
	raw := fold(strings.TrimSpace(query))

	m := &NameMatcher{
		raw:   raw,
		lower: strings.ToLower(raw),
		fold:  fold,
	}
	if words := strings.Fields(raw); len(words) > 1 {
		m.tokens = make([]token, len(words))
		for i, w := range words {
			m.tokens[i] = token{raw: w, lower: strings.ToLower(w)}
		}
	}
	return m
}

// nameFields holds the six trimmed name fields of one record:
// Latin first, middle, last followed by native first, middle, last.
type nameFields struct {
	raw   [6]string
	lower [6]string
}

func makeNameFields(r *voter.Record, fold Folder) nameFields {
	latin := r.LatinNames()
	local := r.LocalNames()

	var f nameFields
	for i := 0; i < 3; i++ {
		f.raw[i] = fold(strings.TrimSpace(latin[i]))
		f.raw[i+3] = fold(strings.TrimSpace(local[i]))
	}
	for i, v := range f.raw {
		f.lower[i] = strings.ToLower(v)
	}
	return f
}

// contains reports whether field i holds the word, lower-cased or raw.
func (f *nameFields) contains(i int, raw, lower string) bool {
	return strings.Contains(f.lower[i], lower) || strings.Contains(f.raw[i], raw)
}

func (f *nameFields) anyContains(raw, lower string) bool {
	for i := range f.raw {
		if f.contains(i, raw, lower) {
			return true
		}
	}
	return false
}

// latinJoined is the lower-cased Latin name with single-space separators.
func (f *nameFields) latinJoined() string {
	return f.lower[0] + " " + f.lower[1] + " " + f.lower[2]
}

// localJoined is the raw native-script name with single-space separators.
// Native scripts have no case, so it is not lower-cased.
func (f *nameFields) localJoined() string {
	return f.raw[3] + " " + f.raw[4] + " " + f.raw[5]
}

// Match reports whether the record's names match the query.
func (m *NameMatcher) Match(r *voter.Record) bool {
	f := makeNameFields(r, m.fold)
	if len(m.tokens) == 0 {
		return f.anyContains(m.raw, m.lower)
	}
	return m.allTokensPresent(&f) || m.joinedContains(&f)
}

// allTokensPresent requires each token to appear in at least one field.
// A field may satisfy several tokens.
func (m *NameMatcher) allTokensPresent(f *nameFields) bool {
	for _, t := range m.tokens {
		if !f.anyContains(t.raw, t.lower) {
			return false
		}
	}
	return true
}

// joinedContains matches the whole query against the joined name triples,
// for a query pasted as one full name.
func (m *NameMatcher) joinedContains(f *nameFields) bool {
	return strings.Contains(f.latinJoined(), m.raw) || strings.Contains(f.localJoined(), m.raw)
}
