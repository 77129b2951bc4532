// Package provider defines the ports for external language services the
// pipeline consumes.
package provider

import "context"

// Word is one token of a dependency-parsed sentence.
type Word struct {
	ID     int
	Form   string
	Lemma  string
	UPOS   string
	Head   int
	Deprel string
}

// Sentence is one parsed sentence.
type Sentence struct {
	Text  string
	Words []Word
}

// Root returns the syntactic root of the sentence, the word whose head is 0.
func (s Sentence) Root() (Word, bool) {
	for _, w := range s.Words {
		if w.Head == 0 {
			return w, true
		}
	}
	return Word{}, false
}

// DependencyParser produces a dependency parse for a piece of text.
type DependencyParser interface {
	Parse(ctx context.Context, text string) ([]Sentence, error)
}
