// Package extract normalizes raw dictionary TSV exports: lemma headwords
// are cleaned into mappable variants, definitions are stripped of editorial
// shorthand and grammatical markers are mapped onto coarse parts of speech.
package extract

import (
	"regexp"
	"strings"
)

var (
	lemmaSeparators = regexp.MustCompile(`[;,]`)
	romanNumerals   = regexp.MustCompile(`\s*I{1,3}$`)
	parenthesized   = regexp.MustCompile(`^(.*)\(([^)]+)\)(.*)$`)
)

// NormalizeLemma turns a raw headword string into the ordered list of clean
// lemma variants. Headwords may list several comma or semicolon separated
// forms, carry homograph numerals (Wasser II) and abbreviate compounds by
// breaking them at the hyphen ("Bampel-, Bämpeles-wirtschaft" stands for
// Bampelwirtschaft and Bämpeleswirtschaft). Parenthesized infixes yield both
// the long and the short form. Duplicates are dropped, first occurrence wins.
func NormalizeLemma(raw string) []string {
	parts := splitHeadwords(raw)

	var variants []string
	seen := make(map[string]struct{})
	add := func(w string) {
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		variants = append(variants, w)
	}

	for i := 0; i < len(parts); {
		current := stripRomanNumerals(parts[i])

		switch {
		// Broken first compound part, suffix carried by the next form.
		case strings.HasSuffix(current, "-") && i+1 < len(parts):
			next := strings.TrimSpace(parts[i+1])
			suffix := next
			if idx := strings.Index(next, "-"); idx >= 0 {
				suffix = next[idx+1:]
			}
			combined := strings.ReplaceAll(current[:len(current)-1]+suffix, "--", "-")
			for _, lemma := range []string{combined, strings.ReplaceAll(next, "-", "")} {
				for _, v := range expandParentheses(lemma) {
					add(v)
				}
			}
			i += 2

		// Broken part at the end, suffix taken from the previous form.
		case strings.HasSuffix(current, "-") && i == len(parts)-1 && i > 0:
			previous := parts[i-1]
			if idx := strings.Index(previous, "-"); idx >= 0 {
				suffix := previous[idx+1:]
				for _, v := range expandParentheses(current[:len(current)-1] + suffix) {
					add(v)
				}
			}
			i++

		// Bare suffix, base taken from the previous form ("-schluck").
		case strings.HasPrefix(current, "-") && i > 0:
			base := strings.TrimSpace(strings.SplitN(parts[i-1], "-", 2)[0])
			for _, v := range expandParentheses(base + current[1:]) {
				add(v)
			}
			i++

		default:
			cleaned := strings.ReplaceAll(current, "-", "")
			for _, v := range expandParentheses(cleaned) {
				add(v)
			}
			i++
		}
	}
	return variants
}

func splitHeadwords(raw string) []string {
	var parts []string
	for _, p := range lemmaSeparators.Split(raw, -1) {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}

func stripRomanNumerals(word string) string {
	return romanNumerals.ReplaceAllString(strings.TrimSpace(word), "")
}

// expandParentheses returns the variant with the parenthesized infix kept
// and the variant without it, or the word itself when no parentheses occur.
func expandParentheses(word string) []string {
	m := parenthesized.FindStringSubmatch(word)
	if m == nil {
		return []string{word}
	}
	prefix, insert, suffix := m[1], m[2], m[3]
	return []string{prefix + insert + suffix, prefix + suffix}
}
