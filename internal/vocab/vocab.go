// Package vocab loads the controlled concept vocabulary from its nested JSON
// tree. A concept is identified by the dot-joined path of node names leading
// to a "Begriffe" key; the key's value holds the concept's term strings.
//
// The walk uses the json.Decoder token stream instead of unmarshalling into a
// map, so concepts keep the document order of the JSON file. Matching code
// that scans concepts "first hit wins" is therefore deterministic.
package vocab

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// TermsKey is the JSON key holding a concept node's term list.
const TermsKey = "Begriffe"

// leadingArticles matches an optional reflexive "sich" followed by any run of
// German articles and possessive pronouns at the start of a term. Each element
// must be followed by whitespace, so a term consisting of a bare article is
// never stripped to nothing.
var leadingArticles = regexp.MustCompile(
	`(?i)^(?:sich\s+)?(?:(?:ein(?:e|en|em|es)?|der|die|das|dem|den|des|` +
		`sein(?:e|en|em|es)?|ihr(?:e|en|em|es)?|mein(?:e|en|em|es)?|` +
		`dein(?:e|en|em|es)?|unser(?:e|en|em|es)?|euer(?:e|en|em|es)?)\s+)*`)

// Vocabulary maps concept keys to their ordered, de-duplicated term lists and
// keeps an inverted term index. Read-only after loading.
type Vocabulary struct {
	order []string
	terms map[string][]string
	seen  map[string]map[string]struct{}
	index map[string][]string
}

// New returns an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{
		terms: make(map[string][]string),
		seen:  make(map[string]map[string]struct{}),
		index: make(map[string][]string),
	}
}

// Load reads a vocabulary JSON tree from r.
func Load(r io.Reader) (*Vocabulary, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("vocabulary: read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("vocabulary: expected JSON object, got %v", tok)
	}

	v := New()
	if err := v.walkObject(dec, nil); err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	return v, nil
}

// LoadFile reads a vocabulary JSON file from disk.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// walkObject consumes the members of an already-opened JSON object.
// A "Begriffe" member terminates term extraction for this branch, but sibling
// keys are still walked.
func (v *Vocabulary) walkObject(dec *json.Decoder, path []string) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read key at %s: %w", strings.Join(path, "."), err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v at %s", keyTok, strings.Join(path, "."))
		}

		if key == TermsKey {
			terms, err := readTerms(dec)
			if err != nil {
				return fmt.Errorf("read terms at %s: %w", strings.Join(path, "."), err)
			}
			v.addConcept(strings.Join(path, "."), terms)
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read value of %s: %w", key, err)
		}
		switch d := tok.(type) {
		case json.Delim:
			switch d {
			case '{':
				if err := v.walkObject(dec, append(path, key)); err != nil {
					return err
				}
			case '[':
				if err := skipArray(dec); err != nil {
					return err
				}
			}
		default:
			// Scalar under a non-terms key carries no concept data.
		}
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return fmt.Errorf("close object at %s: %w", strings.Join(path, "."), err)
	}
	return nil
}

// readTerms flattens the value of a "Begriffe" key into a list of strings.
// The value may be a single string or an arbitrarily nested list of strings.
func readTerms(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case string:
		return []string{t}, nil
	case json.Delim:
		if t != '[' {
			return nil, fmt.Errorf("unexpected terms value %v", t)
		}
		return readTermList(dec)
	case nil:
		return nil, nil
	default:
		return []string{fmt.Sprint(t)}, nil
	}
}

func readTermList(dec *json.Decoder) ([]string, error) {
	var terms []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case string:
			terms = append(terms, t)
		case json.Delim:
			if t != '[' {
				return nil, fmt.Errorf("unexpected token %v in term list", t)
			}
			nested, err := readTermList(dec)
			if err != nil {
				return nil, err
			}
			terms = append(terms, nested...)
		case nil:
			// skip
		default:
			terms = append(terms, fmt.Sprint(t))
		}
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return terms, nil
}

// skipArray consumes an already-opened JSON array, including nested values.
func skipArray(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}

// addConcept registers a concept with its terms. For every term a variant with
// leading articles and pronouns stripped is added as an extra term when it
// differs case-insensitively from the original. A concept with no usable terms
// is still registered; it simply cannot match anything.
func (v *Vocabulary) addConcept(concept string, terms []string) {
	if _, known := v.terms[concept]; !known {
		v.order = append(v.order, concept)
		v.terms[concept] = nil
		v.seen[concept] = make(map[string]struct{})
	}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		v.addTerm(concept, term)

		cleaned := strings.TrimSpace(leadingArticles.ReplaceAllString(term, ""))
		if cleaned != "" && !strings.EqualFold(cleaned, term) {
			v.addTerm(concept, cleaned)
		}
	}
}

func (v *Vocabulary) addTerm(concept, term string) {
	if _, dup := v.seen[concept][term]; dup {
		return
	}
	v.seen[concept][term] = struct{}{}
	v.terms[concept] = append(v.terms[concept], term)
	v.index[term] = append(v.index[term], concept)
}

// Concepts returns the concept keys in document order.
func (v *Vocabulary) Concepts() []string { return v.order }

// Terms returns the ordered term list of a concept.
func (v *Vocabulary) Terms(concept string) []string { return v.terms[concept] }

// Len returns the number of concepts.
func (v *Vocabulary) Len() int { return len(v.order) }

// Lookup returns all concepts a term belongs to. A term may legitimately map
// to more than one concept.
func (v *Vocabulary) Lookup(term string) []string { return v.index[term] }

// LookupUnambiguous resolves a term to its concept only when exactly one
// concept claims it. Ambiguous terms yield ok=false, same as unknown ones;
// callers that need to tell the two apart use Lookup.
func (v *Vocabulary) LookupUnambiguous(term string) (string, bool) {
	concepts := v.index[term]
	if len(concepts) == 1 {
		return concepts[0], true
	}
	return "", false
}

// FindConceptFold scans concepts in document order and returns the first one
// holding a term equal to fragment under case-insensitive comparison. This is
// the long-definition match rule: first concept encountered wins.
func (v *Vocabulary) FindConceptFold(fragment string) (string, bool) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return "", false
	}
	for _, concept := range v.order {
		for _, term := range v.terms[concept] {
			if strings.EqualFold(strings.TrimSpace(term), fragment) {
				return concept, true
			}
		}
	}
	return "", false
}
