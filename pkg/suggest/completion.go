package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/tchap/go-patricia/v2/patricia"
)

var stringPool = sync.Map{}

func internString(s string) string {
	if cached, exists := stringPool.Load(s); exists {
		return cached.(string)
	}
	stringPool.Store(s, s)
	return s
}

// Suggestion is one completed word and how many name fields contain it.
type Suggestion struct {
	Word  string `json:"word" msgpack:"w"`
	Count int    `json:"count" msgpack:"n"`
}

// Completer indexes name words for prefix completion.
// It is filled once and then only read; AddWord must not race with Complete.
type Completer struct {
	trie          *patricia.Trie
	totalWords    int
	distinctWords int
	maxCount      int
}

func NewCompleter() *Completer {
	return &Completer{trie: patricia.NewTrie()}
}

// FromRecords indexes every word of the six name fields of records.
func FromRecords(records []voter.Record) *Completer {
	c := NewCompleter()
	for i := range records {
		latin := records[i].LatinNames()
		local := records[i].LocalNames()
		for _, field := range append(latin[:], local[:]...) {
			for _, word := range strings.Fields(field) {
				c.AddWord(word)
			}
		}
	}
	return c
}

func (c *Completer) AddWord(word string) {
	key := patricia.Prefix(strings.ToLower(word))
	if len(key) == 0 {
		return
	}

	count := 1
	if item := c.trie.Get(key); item != nil {
		count = item.(int) + 1
		c.trie.Set(key, count)
	} else {
		c.trie.Insert(key, count)
		c.distinctWords++
	}
	c.totalWords++
	if count > c.maxCount {
		c.maxCount = count
	}
}

// Complete returns words with the given prefix, ordered by count and then
// alphabetically. Capitals typed in the prefix are carried over.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []Suggestion{}
	}
	lowerPrefix := strings.ToLower(prefix)

	capitalPositions := make([]bool, 0, len(prefix))
	for _, r := range prefix {
		capitalPositions = append(capitalPositions, r >= 'A' && r <= 'Z')
	}

	suggestions := SearchTrie(c.trie, lowerPrefix)

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		return suggestions[i].Word < suggestions[j].Word
	})

	if len(suggestions) > limit && limit > 0 {
		suggestions = suggestions[:limit]
	}
	for i := range suggestions {
		suggestions[i].Word = ApplyCapitalization(suggestions[i].Word, capitalPositions)
	}
	return suggestions
}

func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"totalWords":    c.totalWords,
		"distinctWords": c.distinctWords,
		"maxCount":      c.maxCount,
	}
}
