package search

import "golang.org/x/text/unicode/norm"

// Folder rewrites text before comparison. It is applied to the query and to
// every compared field alike.
type Folder func(string) string

// Identity leaves text untouched.
func Identity(s string) string { return s }

// NFC composes text into Unicode normalization form C, so a query typed with
// decomposed marks still matches a composed field and vice versa.
func NFC(s string) string { return norm.NFC.String(s) }

func orIdentity(f Folder) Folder {
	if f == nil {
		return Identity
	}
	return f
}
