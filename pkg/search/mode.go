package search

import "strings"

// Mode selects which matchers a search runs.
type Mode int

const (
	// Combined matches by identifier or by name. It is the zero value.
	Combined Mode = iota
	// ByIdentifier matches the voter id and voter card id only.
	ByIdentifier
	// ByName matches the Latin and native-script name fields only.
	ByName
)

// ParseMode maps a mode name onto a Mode. Unknown names fall back to Combined.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id", "voterid", "identifier":
		return ByIdentifier
	case "name":
		return ByName
	default:
		return Combined
	}
}

func (m Mode) String() string {
	switch m {
	case ByIdentifier:
		return "id"
	case ByName:
		return "name"
	default:
		return "all"
	}
}
