// Package llmmap maps dictionary entries onto root concepts by prompting a
// chat model with the entry and the concept vocabulary, validating each
// answer against the allowed class set.
package llmmap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
	"github.com/KleeAn/automated-dictionary-linking/internal/vocab"
)

// Result holds mapping statistics.
type Result struct {
	Mapped  int
	Invalid int
	Skipped int // rows without lemma or definition
	Resumed int // rows already answered by an earlier run
}

// Mapper runs the LLM concept mapping over one input file.
type Mapper struct {
	log    *slog.Logger
	cfg    Config
	vocab  *vocab.Vocabulary
	chat   ChatClient
	prompt string
}

// NewMapper creates a new Mapper with a loaded prompt template.
func NewMapper(log *slog.Logger, cfg Config, voc *vocab.Vocabulary, chat ChatClient, prompt string) *Mapper {
	return &Mapper{log: log, cfg: cfg, vocab: voc, chat: chat, prompt: prompt}
}

// Run prompts the model once per entry and writes the result table. The
// output file is rewritten after every answer; when a partial output from an
// interrupted run exists, the rows it already answers are not prompted again.
func (m *Mapper) Run(ctx context.Context) (Result, error) {
	base := strings.TrimSuffix(filepath.Base(m.cfg.InputPath), filepath.Ext(m.cfg.InputPath))
	outPath := filepath.Join(m.cfg.OutputDir, base+"_llm.tsv")

	table, err := tsv.ReadFile(m.cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("load input: %w", err)
	}
	if err := table.Require(domain.ColLemma, domain.ColDef, domain.ColConcept); err != nil {
		return Result{}, err
	}
	m.log.Info("mapping entries",
		slog.String("path", m.cfg.InputPath),
		slog.Int("rows", table.Len()),
		slog.String("model", m.cfg.Model),
	)

	out := &tsv.Table{Columns: []string{
		domain.ColXMLID, domain.ColLemma, domain.ColPOS, domain.ColDef,
		domain.ColConcept, domain.ColConceptMapped, domain.ColModelAnswer,
	}}

	answered := make(map[string]bool)
	if existing, err := tsv.ReadFile(outPath); err == nil {
		if err := existing.Require(out.Columns...); err == nil {
			out = existing
			for i := 0; i < existing.Len(); i++ {
				answered[existing.Get(i, domain.ColXMLID)] = true
			}
		}
	}
	if len(answered) > 0 {
		m.log.Info("resuming from partial output",
			slog.String("path", outPath),
			slog.Int("answered", len(answered)),
		)
	}

	var result Result
	for i := 0; i < table.Len(); i++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if answered[table.Get(i, domain.ColXMLID)] {
			result.Resumed++
			continue
		}

		lemma := strings.TrimSpace(table.Get(i, domain.ColLemma))
		definition := strings.TrimSpace(table.Get(i, domain.ColDef))
		if lemma == "" || definition == "" {
			result.Skipped++
			continue
		}

		prompt := BuildPrompt(m.prompt, lemma, definition, m.vocab)
		answer, err := m.chat.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			m.log.Warn("model call failed",
				slog.String("lemma", lemma),
				slog.String("error", err.Error()),
			)
			answer = fmt.Sprintf("[Fehler beim Modellaufruf: %v]", err)
		}

		mapped, ok := ValidateAnswer(answer, m.cfg.Classes)
		switch {
		case !ok:
			m.log.Warn("invalid model answer",
				slog.String("lemma", lemma),
				slog.String("answer", answer),
			)
			mapped = InvalidAnswer
			result.Invalid++
		case strings.EqualFold(mapped, m.cfg.OtherClass):
			mapped = m.cfg.NoMatchLabel
			result.Mapped++
		default:
			result.Mapped++
		}

		out.Rows = append(out.Rows, []string{
			table.Get(i, domain.ColXMLID), lemma, table.Get(i, domain.ColPOS),
			definition, table.Get(i, domain.ColConcept), mapped, answer,
		})

		// Rewritten after every answer so an aborted run resumes here.
		if err := out.WriteFile(outPath); err != nil {
			return result, fmt.Errorf("write output: %w", err)
		}
	}

	if err := out.WriteFile(outPath); err != nil {
		return result, fmt.Errorf("write output: %w", err)
	}
	m.log.Info("mapping completed",
		slog.Int("mapped", result.Mapped),
		slog.Int("invalid", result.Invalid),
		slog.Int("skipped", result.Skipped),
		slog.Int("resumed", result.Resumed),
		slog.String("output", outPath),
	)
	return result, nil
}
