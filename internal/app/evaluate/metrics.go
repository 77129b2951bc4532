// Package evaluate compares mapped concepts against gold annotations and
// produces accuracy and multi-label precision/recall statistics.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
)

// conceptGroups are the root concepts reported separately; everything else
// falls under "Andere".
var conceptGroups = map[string]bool{
	"Getränk": true, "Trinken": true, "Durst": true, "kein_Trinken": true,
}

// frequentDrinking is a gold-annotation artifact: the label is folded into its
// parent concept before comparison.
const frequentDrinking = "Trinken.Häufig_lange_trinken"

// Comparison is the per-row outcome of matching gold concepts against mapped
// ones.
type Comparison struct {
	Correct    int
	Total      int
	WrongExtra int
}

// Ratio renders the correct/total quote, "0/0" for empty gold sets.
func (c Comparison) Ratio() string {
	return fmt.Sprintf("%d/%d", c.Correct, c.Total)
}

// RewriteGold folds the frequent-drinking label into "Trinken": alone it
// becomes the parent concept, beside other labels it is dropped.
func RewriteGold(concepts []string) []string {
	found := false
	for _, c := range concepts {
		if c == frequentDrinking {
			found = true
			break
		}
	}
	if !found {
		return concepts
	}
	if len(concepts) == 1 {
		return []string{"Trinken"}
	}
	out := make([]string, 0, len(concepts)-1)
	for _, c := range concepts {
		if c != frequentDrinking {
			out = append(out, c)
		}
	}
	return out
}

// CompareConcepts counts how many gold concepts appear among the mapped ones
// and how many mapped concepts are wrong extras.
func CompareConcepts(gold, mapped []string) Comparison {
	mappedSet := make(map[string]bool, len(mapped))
	for _, m := range mapped {
		mappedSet[m] = true
	}
	goldSet := make(map[string]bool, len(gold))
	for _, g := range gold {
		goldSet[g] = true
	}

	c := Comparison{Total: len(gold)}
	for _, g := range gold {
		if mappedSet[g] {
			c.Correct++
		}
	}
	for _, m := range mapped {
		if !goldSet[m] {
			c.WrongExtra++
		}
	}
	return c
}

// ConceptGroup extracts the root concept group of a gold cell: the first
// concept's first path segment, mapped to "Andere" when outside the known
// groups.
func ConceptGroup(cell string) string {
	concepts := domain.SplitConcepts(cell)
	if len(concepts) == 0 {
		return "Andere"
	}
	group, _, _ := strings.Cut(concepts[0], ".")
	group = strings.TrimSpace(group)
	if conceptGroups[group] {
		return group
	}
	return "Andere"
}
