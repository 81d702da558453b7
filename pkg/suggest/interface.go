// Package suggest completes partially typed names from the words found in the
// loaded voter roll, using a patricia trie keyed by lower-cased word.
//
// It is a typing aid for the front-ends: the suggestions help a user spell a
// name the way the roll spells it before running the actual search.
package suggest

// ICompleter defines the interface for name completion engines
type ICompleter interface {
	// Complete returns up to limit words starting with prefix, most frequent first
	Complete(prefix string, limit int) []Suggestion

	// AddWord records one more occurrence of word
	AddWord(word string)

	// Stats returns statistics about the indexed words
	Stats() map[string]int
}
