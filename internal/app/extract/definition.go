package extract

import (
	"regexp"
	"strings"
)

// editorialNoise removes cross-reference markers, source sigles and stray
// slashes and ellipses the dictionary redaction left in definition texts.
// Parenthesized register labels like (Händlerspr) or (scherzh) go with them.
var editorialNoise = regexp.MustCompile(`(?i)` +
	`\bwie schd »?` +
	`|\(sch\)|\(RA\)|\(BR\)|\(KR\)|\(W\)|\(Verb\.\)|\(\?\)` +
	`|\bRA\b|\bBR\b|\bKR\b|/|\.{3}` +
	`|\([^)]*(?:spr(?:ache)?|wort)[^)]*\)` +
	`|\(abfällig\)|\(abschätzig\)|\(scherzh\)|\(scherzhaft\)` +
	`|\(spöttisch\)|\(verächtlich\)|\(abwertend\)`)

var whitespaceRun = regexp.MustCompile(`\s+`)

var abbreviations = []struct{ old, repl string }{
	{"FlN", "Flurname"},
	{"Neckn", "Neckname"},
	{"Kr.", "Kreis"},
}

// NormalizeDefinition cleans one definition text. A definition that merely
// points back at the headword ("wie schd ...") is replaced by the cleaned
// lemma variants so downstream matching sees the actual word forms.
func NormalizeDefinition(definition, lemmaClean string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(definition)), "wie schd") {
		return lemmaClean
	}
	cleaned := editorialNoise.ReplaceAllString(definition, "")
	for _, a := range abbreviations {
		cleaned = strings.ReplaceAll(cleaned, a.old, a.repl)
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
}
