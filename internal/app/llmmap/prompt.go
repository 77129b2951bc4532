package llmmap

import (
	"strings"

	"github.com/KleeAn/automated-dictionary-linking/internal/vocab"
)

// Prompt template placeholders.
const (
	placeholderLemma      = "{lemma}"
	placeholderDefinition = "{definition}"
	placeholderVocab      = "{konzeptliste}"
)

// BuildPrompt fills the template placeholders with the entry's lemma and
// definition plus a rendered concept list.
func BuildPrompt(template, lemma, definition string, voc *vocab.Vocabulary) string {
	r := strings.NewReplacer(
		placeholderLemma, lemma,
		placeholderDefinition, definition,
		placeholderVocab, renderVocab(voc),
	)
	return r.Replace(template)
}

// renderVocab lists every concept with its terms, one per line.
func renderVocab(voc *vocab.Vocabulary) string {
	var b strings.Builder
	for _, concept := range voc.Concepts() {
		terms := voc.Terms(concept)
		b.WriteString("- ")
		b.WriteString(concept)
		b.WriteString(": ")
		if len(terms) == 0 {
			b.WriteString("[keine Begriffe]")
		} else {
			b.WriteString(strings.Join(terms, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
