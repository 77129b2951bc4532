package conceptmap

import (
	"context"

	"github.com/KleeAn/automated-dictionary-linking/internal/provider"
)

// RootCache memoizes dependency-parse root lemmas per fragment text. Its
// lifetime is one pipeline run; identical fragments across rows are parsed
// once. Parse errors are returned, not cached, so a transient failure does not
// poison the entry.
type RootCache struct {
	parser provider.DependencyParser
	roots  map[string]string
}

// NewRootCache creates a cache around a dependency parser.
func NewRootCache(parser provider.DependencyParser) *RootCache {
	return &RootCache{
		parser: parser,
		roots:  make(map[string]string),
	}
}

// Root returns the root lemma of the first sentence of text. Text with no
// parseable root yields an empty string.
func (c *RootCache) Root(ctx context.Context, text string) (string, error) {
	if lemma, ok := c.roots[text]; ok {
		return lemma, nil
	}

	sentences, err := c.parser.Parse(ctx, text)
	if err != nil {
		return "", err
	}

	lemma := ""
	if len(sentences) > 0 {
		if root, ok := sentences[0].Root(); ok {
			lemma = root.Lemma
		}
	}
	c.roots[text] = lemma
	return lemma, nil
}

// Len returns the number of cached fragments.
func (c *RootCache) Len() int { return len(c.roots) }
