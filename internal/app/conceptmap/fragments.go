package conceptmap

import (
	"encoding/json"
	"fmt"
)

// EncodeFragments serializes a fragment list into its TSV cell form, a JSON
// array. An empty list yields an empty cell.
func EncodeFragments(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	b, _ := json.Marshal(fragments)
	return string(b)
}

// DecodeFragments parses a fragment-list cell. An empty cell is an empty list;
// a malformed cell is an error the caller counts as a skipped row.
func DecodeFragments(cell string) ([]string, error) {
	if cell == "" {
		return nil, nil
	}
	var fragments []string
	if err := json.Unmarshal([]byte(cell), &fragments); err != nil {
		return nil, fmt.Errorf("decode fragment list %q: %w", cell, err)
	}
	return fragments, nil
}
