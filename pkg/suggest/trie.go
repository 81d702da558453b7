package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// SearchTrie collects every word under lowerPrefix with its count.
func SearchTrie(trie *patricia.Trie, lowerPrefix string) []Suggestion {
	if trie == nil {
		return []Suggestion{}
	}

	suggestions := []Suggestion{}

	err := trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		suggestions = append(suggestions, Suggestion{
			Word:  internString(string(p)),
			Count: count,
		})
		return nil
	})

	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	return suggestions
}

// ApplyCapitalization upper-cases the ASCII letters of word at the positions
// that were capitals in the typed prefix.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
