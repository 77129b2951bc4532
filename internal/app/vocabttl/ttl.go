// Package vocabttl converts the concept vocabulary TSV into an OntoLex/SKOS
// vocabulary in Turtle syntax. Each term becomes a lexical entry with its
// canonical form and variant forms, plus a lexical sense linking the term to
// its concept and to Openthesaurus and Wikidata references.
package vocabttl

import (
	"regexp"
	"strings"
)

// Entry is one vocabulary row.
type Entry struct {
	Concept       string
	Term          string
	Variants      []string
	References    []string
	WikidataExact string
	WikidataClose string
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	trailingDigits = regexp.MustCompile(`\d+$`)
)

// NormalizeIdentifier makes a term usable as a Turtle local name: trimmed,
// lowercased, inner whitespace replaced by underscores.
func NormalizeIdentifier(value string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "_")
}

// SplitList splits a "; " separated cell into its trimmed parts.
func SplitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(cell, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// RenderEntry emits the Turtle block for one vocabulary entry under the
// given prefix. Homograph numbers are kept in the label and identifier but
// stripped from the written representation.
func RenderEntry(prefix string, e Entry) string {
	id := prefix + ":" + NormalizeIdentifier(e.Term)
	writtenRep := trailingDigits.ReplaceAllString(e.Term, "")

	var b strings.Builder
	b.WriteString(id + " a ontolex:LexicalEntry ;\n")
	b.WriteString("\trdfs:label \"" + e.Term + "\"@de ;\n")
	b.WriteString("\tontolex:canonicalForm [\n")
	b.WriteString("\t\ta ontolex:Form ;\n")
	b.WriteString("\t\tontolex:writtenRep \"" + writtenRep + "\"@de ;\n")

	if len(e.Variants) == 0 {
		b.WriteString("\t] .\n\n")
	} else {
		b.WriteString("\t] ;\n")
		for i, variant := range e.Variants {
			terminator := ";"
			if i == len(e.Variants)-1 {
				terminator = "."
			}
			b.WriteString("\tontolex:otherForm [\n")
			b.WriteString("\t\ta ontolex:Form ;\n")
			b.WriteString("\t\tontolex:writtenRep \"" + variant + "\"@de ;\n")
			b.WriteString("\t] " + terminator + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(prefix + ":sense-" + NormalizeIdentifier(e.Term) + " a ontolex:LexicalSense ;\n")
	b.WriteString("\tontolex:isSenseOf " + id + " ;\n")
	for _, ref := range e.References {
		b.WriteString("\tontolex:reference <" + ref + "> ;\n")
	}
	if e.WikidataExact != "" {
		b.WriteString("\tontolex:reference <" + e.WikidataExact + "> ;\n")
	}
	if e.WikidataClose != "" {
		b.WriteString("\tontolex:reference [\n")
		b.WriteString("\t\tskos:closeMatch <" + e.WikidataClose + "> ;\n")
		b.WriteString("\t] ;\n")
	}
	b.WriteString("\ttree:isSenseInConcept " + prefix + ":" + strings.TrimSpace(e.Concept) + " .\n")

	return b.String()
}
