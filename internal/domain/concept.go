package domain

import (
	"sort"
	"strings"
)

// NoMatchDefault is the reserved concept label assigned to entries for which
// no vocabulary match was found. It is a first-class value, distinct from an
// empty (unresolved) concept cell and from an ambiguous match.
const NoMatchDefault = "kein_Trinken"

// ConceptSeparator joins multiple concept keys inside one TSV cell.
const ConceptSeparator = "; "

// SplitConcepts parses a semicolon-separated concept cell into a list of
// trimmed, non-empty concept keys.
func SplitConcepts(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	concepts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			concepts = append(concepts, p)
		}
	}
	return concepts
}

// JoinConcepts renders a concept list back into its cell representation.
func JoinConcepts(concepts []string) string {
	return strings.Join(concepts, ConceptSeparator)
}

// MergeConcepts merges a newly found concept cell into the accumulated one:
// set union of both semicolon-separated sets, sorted. Concepts are only ever
// added, never dropped. An empty next value leaves current untouched.
func MergeConcepts(current, next string) string {
	if strings.TrimSpace(next) == "" {
		return current
	}
	if strings.TrimSpace(current) == "" {
		return strings.TrimSpace(next)
	}

	set := make(map[string]struct{})
	for _, c := range SplitConcepts(current) {
		set[c] = struct{}{}
	}
	for _, c := range SplitConcepts(next) {
		set[c] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for c := range set {
		merged = append(merged, c)
	}
	sort.Strings(merged)
	return JoinConcepts(merged)
}

// CombineConcepts combines the stage-1 lemma concept with the stage-2
// short-definition concept: equal values collapse to one, two distinct values
// are kept side by side, a single present value is taken as is.
func CombineConcepts(lemma, shortDef string) string {
	lemma = strings.TrimSpace(lemma)
	shortDef = strings.TrimSpace(shortDef)
	switch {
	case lemma != "" && shortDef != "":
		if lemma == shortDef {
			return lemma
		}
		return lemma + ConceptSeparator + shortDef
	case lemma != "":
		return lemma
	default:
		return shortDef
	}
}

// DropNoMatch removes the no-match sentinel from a concept cell when at least
// one real concept is present alongside it. A cell holding only the sentinel
// is left unchanged.
func DropNoMatch(cell, sentinel string) string {
	concepts := SplitConcepts(cell)
	if len(concepts) <= 1 {
		return cell
	}
	kept := concepts[:0]
	for _, c := range concepts {
		if c != sentinel {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(concepts) {
		return cell
	}
	return JoinConcepts(kept)
}

// SameConceptSet reports whether two concept cells denote the same set,
// ignoring order and duplicates.
func SameConceptSet(a, b string) bool {
	as := SplitConcepts(a)
	bs := SplitConcepts(b)
	set := make(map[string]struct{}, len(as))
	for _, c := range as {
		set[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(bs))
	for _, c := range bs {
		if _, ok := set[c]; !ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return len(seen) == len(set)
}
