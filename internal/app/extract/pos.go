package extract

import "strings"

// posMapping translates the dictionary's grammatical shorthand into coarse
// parts of speech. Order matters: the first key contained in the raw entry
// wins, mirroring how ambiguous markers like "st (schw)" are resolved.
var posMapping = []struct{ marker, pos string }{
	{"(f)", "Substantiv"},
	{"f", "Substantiv"},
	{"(m)", "Substantiv"},
	{"m", "Substantiv"},
	{"m?", "Substantiv"},
	{"n", "Substantiv"},
	{"Pl", "Substantiv"},
	{"subst", "Substantiv"},
	{"Adj", "Adjektiv"},
	{"Adv", "Adverb"},
	{"Gen?", "Substantiv"},
	{"schw", "Verb"},
	{"st", "Verb"},
	{"st (schw)", "Verb"},
}

// MapPOS resolves a raw grammar marker to Substantiv, Adjektiv, Adverb or
// Verb. Unknown markers map to the empty string.
func MapPOS(raw string) string {
	entry := strings.TrimSpace(raw)
	for _, m := range posMapping {
		if strings.Contains(entry, m.marker) {
			return m.pos
		}
	}
	return ""
}
