package llmmap

import (
	"regexp"
	"strings"
)

// InvalidAnswer marks model responses that could not be resolved to a class.
const InvalidAnswer = "[ungültig]"

var (
	markdownBold = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boxedAnswer  = regexp.MustCompile(`\\boxed\{(.*?)\}`)
)

const quoteRunes = `"'` + "“”‘’"

// ValidateAnswer resolves a raw model response to one of the allowed classes.
// Markdown bold, surrounding quotes and \boxed{} notation are stripped; an
// answer also counts when it merely ends with a class name (optionally with a
// final period). Unresolvable answers yield ok=false.
func ValidateAnswer(answer string, classes []string) (string, bool) {
	if answer == "" {
		return "", false
	}

	normalized := strings.TrimSpace(markdownBold.ReplaceAllString(strings.TrimSpace(answer), "$1"))

	if m := boxedAnswer.FindStringSubmatch(normalized); m != nil {
		content := strings.Trim(strings.TrimSpace(m[1]), quoteRunes)
		for _, cls := range classes {
			if strings.EqualFold(content, cls) {
				return cls, true
			}
		}
	}

	stripped := strings.ToLower(strings.Trim(normalized, quoteRunes))
	for _, cls := range classes {
		if stripped == strings.ToLower(cls) {
			return cls, true
		}
	}
	for _, cls := range classes {
		lower := strings.ToLower(cls)
		if strings.HasSuffix(stripped, lower) || strings.HasSuffix(stripped, lower+".") {
			return cls, true
		}
	}

	return "", false
}
