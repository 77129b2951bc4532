package conceptmap

import "strings"

// relativePronouns are the words that suppress a comma split: a comma followed
// by one of these introduces a relative clause, not a new definition fragment.
var relativePronouns = map[string]bool{
	"der": true, "die": true, "das": true,
	"welcher": true, "welche": true, "welches": true,
	"dem": true, "den": true, "dessen": true, "deren": true,
}

// SplitDefinition splits a free-text definition into candidate fragments.
// Semicolons always separate fragments; commas separate only when the text
// after the comma does not open a relative clause. Fragments are trimmed and
// empties dropped.
func SplitDefinition(def string) []string {
	var fragments []string
	for _, part := range strings.Split(def, ";") {
		fragments = append(fragments, splitCommaAware(part)...)
	}
	return fragments
}

func splitCommaAware(part string) []string {
	pieces := strings.Split(part, ",")
	joined := []string{pieces[0]}
	for _, piece := range pieces[1:] {
		if opensRelativeClause(piece) {
			joined[len(joined)-1] += "," + piece
			continue
		}
		joined = append(joined, piece)
	}

	out := make([]string, 0, len(joined))
	for _, f := range joined {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func opensRelativeClause(s string) bool {
	first, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	return relativePronouns[strings.ToLower(first)]
}
