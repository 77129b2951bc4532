// Package conceptmap implements the staged string-matching pipeline that maps
// dictionary entries onto the controlled concept vocabulary. Definitions are
// split into fragments, then four matchers run in order: lemma variants,
// single-token short definitions, long-definition fragments, and dependency
// roots of the fragments still unmatched. Each stage only ever adds concepts
// to the accumulated result.
package conceptmap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
	"github.com/KleeAn/automated-dictionary-linking/internal/provider"
	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
	"github.com/KleeAn/automated-dictionary-linking/internal/vocab"
)

// allStages defines the canonical execution order.
var allStages = []string{"split", "lemma", "short_def", "long_def", "root"}

// StageResult holds the outcome of a single pipeline stage.
type StageResult struct {
	Matched   int
	Unmatched int
	Skipped   int
	Duration  time.Duration
	Err       error
}

// Pipeline orchestrates the 5-stage concept-mapping process for one input
// file.
type Pipeline struct {
	log     *slog.Logger
	cfg     Config
	vocab   *vocab.Vocabulary
	parser  provider.DependencyParser
	results map[string]StageResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg Config, voc *vocab.Vocabulary, parser provider.DependencyParser) *Pipeline {
	return &Pipeline{
		log:     log,
		cfg:     cfg,
		vocab:   voc,
		parser:  parser,
		results: make(map[string]StageResult),
	}
}

// Results returns stage results after Run completes.
func (p *Pipeline) Results() map[string]StageResult {
	return p.results
}

// HasSkips reports whether any stage skipped rows.
func (p *Pipeline) HasSkips() bool {
	for _, r := range p.results {
		if r.Skipped > 0 {
			return true
		}
	}
	return false
}

// Run loads the input table, executes the stages in order and writes the
// stage-4 table plus the pruned final table. Intermediate stage tables are
// written only when snapshots are enabled; the table itself is passed between
// stages in memory.
func (p *Pipeline) Run(ctx context.Context) error {
	table, err := tsv.ReadFile(p.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	p.log.Info("input loaded",
		slog.String("path", p.cfg.InputPath),
		slog.Int("rows", table.Len()),
		slog.Int("concepts", p.vocab.Len()),
	)

	base := strings.TrimSuffix(filepath.Base(p.cfg.InputPath), filepath.Ext(p.cfg.InputPath))
	cache := NewRootCache(p.parser)

	snapshots := map[string]string{
		"split":     "0_" + base + "_gesplittet.tsv",
		"lemma":     "1_" + base + "_matches_lemma.tsv",
		"short_def": "2_" + base + "_matches_short_def.tsv",
		"long_def":  "3_" + base + "_matches_long_def.tsv",
		"root":      "4_" + base + "_matches_root.tsv",
	}

	for _, stage := range allStages {
		start := time.Now()
		p.log.Info("starting stage", slog.String("stage", stage))

		var result StageResult
		switch stage {
		case "split":
			result = p.runSplit(table)
		case "lemma":
			result = p.runLemma(table)
		case "short_def":
			result = p.runShortDef(table)
		case "long_def":
			result = p.runLongDef(table)
		case "root":
			result = p.runRoot(ctx, table, cache)
		}
		result.Duration = time.Since(start)
		p.results[stage] = result

		if result.Err != nil {
			p.log.Error("stage failed",
				slog.String("stage", stage),
				slog.String("error", result.Err.Error()),
			)
			return fmt.Errorf("stage %s: %w", stage, result.Err)
		}
		p.log.Info("stage completed",
			slog.String("stage", stage),
			slog.Int("matched", result.Matched),
			slog.Int("unmatched", result.Unmatched),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)

		// Stage 4 output is a terminal artifact; earlier stages are
		// debugging snapshots.
		if stage == "root" || p.cfg.Snapshots {
			path := filepath.Join(p.cfg.OutputDir, snapshots[stage])
			if err := table.WriteFile(path); err != nil {
				return fmt.Errorf("write %s snapshot: %w", stage, err)
			}
		}
	}

	final := p.prune(table)
	finalPath := filepath.Join(p.cfg.OutputDir, base+"_matches_final.tsv")
	if err := final.WriteFile(finalPath); err != nil {
		return fmt.Errorf("write final table: %w", err)
	}

	p.log.Info("pipeline completed",
		slog.String("final", finalPath),
		slog.Int("rows", final.Len()),
		slog.Int("parsed_fragments", cache.Len()),
	)
	return nil
}

// runSplit splits every definition into fragments, stored next to the
// definition as a JSON array.
func (p *Pipeline) runSplit(t *tsv.Table) StageResult {
	if err := t.Require(domain.ColDef); err != nil {
		return StageResult{Err: err}
	}
	if err := t.InsertColumnAfter(domain.ColDef, domain.ColDefSplit); err != nil {
		return StageResult{Err: err}
	}

	var res StageResult
	for i := 0; i < t.Len(); i++ {
		fragments := SplitDefinition(t.Get(i, domain.ColDef))
		t.Set(i, domain.ColDefSplit, EncodeFragments(fragments))
		if len(fragments) == 0 {
			res.Unmatched++
		} else {
			res.Matched++
		}
	}
	return res
}

// runLemma matches the cleaned lemma variants against vocabulary terms. The
// first variant resolving to exactly one concept wins; ambiguous variants are
// passed over.
func (p *Pipeline) runLemma(t *tsv.Table) StageResult {
	if err := t.Require(domain.ColLemmaClean); err != nil {
		return StageResult{Err: err}
	}
	t.AddColumn(domain.ColLemmaMapped)
	t.AddColumn(domain.ColConceptLemma)
	t.AddColumn(domain.ColConceptMapped)

	var res StageResult
	for i := 0; i < t.Len(); i++ {
		matched := false
		for _, variant := range strings.Split(t.Get(i, domain.ColLemmaClean), ",") {
			variant = strings.TrimSpace(variant)
			if variant == "" {
				continue
			}
			concept, ok := p.vocab.LookupUnambiguous(variant)
			if !ok {
				continue
			}
			t.Set(i, domain.ColLemmaMapped, variant)
			t.Set(i, domain.ColConceptLemma, concept)
			t.Set(i, domain.ColConceptMapped, concept)
			matched = true
			break
		}
		if matched {
			res.Matched++
		} else {
			res.Unmatched++
		}
	}
	return res
}

// runShortDef handles entries whose whole definition is a single token. An
// unknown token gets the no-match label outright; an ambiguous token is
// recorded without a concept.
func (p *Pipeline) runShortDef(t *tsv.Table) StageResult {
	if err := t.Require(domain.ColDefSplit, domain.ColConceptLemma); err != nil {
		return StageResult{Err: err}
	}
	t.AddColumn(domain.ColShortDefMapped)
	t.AddColumn(domain.ColConceptShortDef)

	var res StageResult
	for i := 0; i < t.Len(); i++ {
		fragments, err := DecodeFragments(t.Get(i, domain.ColDefSplit))
		if err != nil {
			p.log.Warn("skipping row: bad fragment list",
				slog.Int("row", i+2),
				slog.String("error", err.Error()),
			)
			res.Skipped++
			continue
		}

		if len(fragments) == 1 {
			token := strings.TrimSpace(fragments[0])
			if len(strings.Fields(token)) == 1 {
				concepts := p.vocab.Lookup(token)
				switch {
				case len(concepts) == 1:
					t.Set(i, domain.ColShortDefMapped, token)
					t.Set(i, domain.ColConceptShortDef, concepts[0])
					res.Matched++
				case len(concepts) > 1:
					// Ambiguous: the token is recorded, the
					// concept stays open.
					t.Set(i, domain.ColShortDefMapped, token)
					res.Unmatched++
				default:
					t.Set(i, domain.ColShortDefMapped, token)
					t.Set(i, domain.ColConceptShortDef, p.cfg.NoMatchLabel)
					res.Unmatched++
				}
			}
		}

		t.Set(i, domain.ColConceptMapped, domain.CombineConcepts(
			t.Get(i, domain.ColConceptLemma),
			t.Get(i, domain.ColConceptShortDef),
		))
	}
	return res
}

// runLongDef matches each fragment of multi-fragment definitions against
// vocabulary terms, case-insensitively with parentheses stripped. Rows with at
// least one hit keep their unmatched fragments aside for the root stage; rows
// without any hit leave all three columns empty and the root stage reprocesses
// their whole fragment list.
func (p *Pipeline) runLongDef(t *tsv.Table) StageResult {
	if err := t.Require(domain.ColDefSplit, domain.ColConceptMapped); err != nil {
		return StageResult{Err: err}
	}
	t.AddColumn(domain.ColLongDefMapped)
	t.AddColumn(domain.ColLongDefUnmapped)
	t.AddColumn(domain.ColConceptLongDef)

	var res StageResult
	for i := 0; i < t.Len(); i++ {
		fragments, err := DecodeFragments(t.Get(i, domain.ColDefSplit))
		if err != nil {
			p.log.Warn("skipping row: bad fragment list",
				slog.Int("row", i+2),
				slog.String("error", err.Error()),
			)
			res.Skipped++
			continue
		}
		if len(fragments) < 2 {
			continue
		}

		var matched, unmatched, concepts []string
		seen := make(map[string]bool)
		for _, fragment := range fragments {
			concept, ok := p.vocab.FindConceptFold(domain.StripParens(fragment))
			if !ok {
				unmatched = append(unmatched, fragment)
				continue
			}
			matched = append(matched, fragment)
			if !seen[concept] {
				seen[concept] = true
				concepts = append(concepts, concept)
			}
		}
		if len(matched) == 0 {
			res.Unmatched++
			continue
		}
		sort.Strings(concepts)

		t.Set(i, domain.ColLongDefMapped, strings.Join(matched, domain.ConceptSeparator))
		t.Set(i, domain.ColLongDefUnmapped, strings.Join(unmatched, domain.ConceptSeparator))
		t.Set(i, domain.ColConceptLongDef, domain.JoinConcepts(concepts))
		t.Set(i, domain.ColConceptMapped, domain.MergeConcepts(
			t.Get(i, domain.ColConceptMapped),
			domain.JoinConcepts(concepts),
		))
		res.Matched++
	}

	t.MoveColumnToEnd(domain.ColConceptMapped)
	return res
}

// runRoot analyzes the fragments still unmatched: each is dependency-parsed
// and the root lemma of its first sentence is matched against the vocabulary.
// A parse failure skips the row, it does not abort the batch. Afterwards every
// entry without a concept gets the no-match label, and the label is dropped
// wherever real concepts sit beside it.
func (p *Pipeline) runRoot(ctx context.Context, t *tsv.Table, cache *RootCache) StageResult {
	if err := t.Require(domain.ColDefSplit, domain.ColConceptShortDef, domain.ColLongDefUnmapped, domain.ColConceptMapped); err != nil {
		return StageResult{Err: err}
	}
	t.AddColumn(domain.ColSentenceRoot)
	t.AddColumn(domain.ColConceptRoot)
	t.MoveColumnToEnd(domain.ColConceptMapped)

	var res StageResult
rows:
	for i := 0; i < t.Len(); i++ {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			return res
		}

		fragments, err := p.rootCandidates(t, i)
		if err != nil {
			p.log.Warn("skipping row: bad fragment list",
				slog.Int("row", i+2),
				slog.String("error", err.Error()),
			)
			res.Skipped++
			continue
		}
		if len(fragments) == 0 {
			continue
		}

		var roots, concepts []string
		rootSeen := make(map[string]bool)
		conceptSeen := make(map[string]bool)
		for _, fragment := range fragments {
			lemma, err := cache.Root(ctx, domain.StripParens(fragment))
			if err != nil {
				if ctx.Err() != nil {
					res.Err = ctx.Err()
					return res
				}
				p.log.Warn("skipping row: dependency parse failed",
					slog.Int("row", i+2),
					slog.String("fragment", fragment),
					slog.String("error", err.Error()),
				)
				res.Skipped++
				continue rows
			}
			if lemma == "" {
				continue
			}
			concept, ok := p.vocab.LookupUnambiguous(lemma)
			if !ok {
				continue
			}
			if !rootSeen[lemma] {
				rootSeen[lemma] = true
				roots = append(roots, lemma)
			}
			if !conceptSeen[concept] {
				conceptSeen[concept] = true
				concepts = append(concepts, concept)
			}
		}
		sort.Strings(roots)
		sort.Strings(concepts)

		t.Set(i, domain.ColSentenceRoot, strings.Join(roots, domain.ConceptSeparator))
		t.Set(i, domain.ColConceptRoot, domain.JoinConcepts(concepts))

		if len(concepts) > 0 {
			t.Set(i, domain.ColConceptMapped, domain.MergeConcepts(
				t.Get(i, domain.ColConceptMapped),
				domain.JoinConcepts(concepts),
			))
			res.Matched++
		} else {
			res.Unmatched++
		}
	}

	for i := 0; i < t.Len(); i++ {
		cell := strings.TrimSpace(t.Get(i, domain.ColConceptMapped))
		if cell == "" {
			t.Set(i, domain.ColConceptMapped, p.cfg.NoMatchLabel)
			continue
		}
		t.Set(i, domain.ColConceptMapped, domain.DropNoMatch(cell, p.cfg.NoMatchLabel))
	}
	return res
}

// rootCandidates selects the fragments a row still needs parsed: the
// fragments stage 3 could not match, or the whole fragment list when no stage
// produced a verdict. Resolved rows need nothing.
func (p *Pipeline) rootCandidates(t *tsv.Table, row int) ([]string, error) {
	if unmapped := t.Get(row, domain.ColLongDefUnmapped); strings.TrimSpace(unmapped) != "" {
		return domain.SplitConcepts(unmapped), nil
	}

	// A short-definition verdict settles the row, the no-match default
	// included.
	if strings.TrimSpace(t.Get(row, domain.ColConceptShortDef)) != "" {
		return nil, nil
	}

	concepts := domain.SplitConcepts(t.Get(row, domain.ColConceptMapped))
	resolved := len(concepts) > 1 || (len(concepts) == 1 && concepts[0] != p.cfg.NoMatchLabel)
	if resolved {
		return nil, nil
	}
	return DecodeFragments(t.Get(row, domain.ColDefSplit))
}

// prune derives the final table: the fragment list and all per-stage working
// columns are dropped, keeping the identifying fields, the definition and the
// accumulated concept column.
func (p *Pipeline) prune(t *tsv.Table) *tsv.Table {
	final := t.Clone()
	final.DropColumns(domain.ColDefSplit)
	if cols := final.ColumnRange(domain.ColLemmaMapped, domain.ColConceptRoot); cols != nil {
		final.DropColumns(cols...)
	}
	return final
}
