package vocabttl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
)

// Vocabulary TSV columns.
const (
	colConcept       = "Konzept"
	colTerm          = "Begriff"
	colVariants      = "Begriffsvarianten"
	colReference     = "Referenz"
	colWikidataExact = "Wikidata_exact"
	colWikidataClose = "Wikidata_close"
)

// Config holds Turtle conversion settings.
type Config struct {
	VocabPath    string `yaml:"vocab_path"    env:"VOCABTTL_VOCAB_PATH"`
	PreamblePath string `yaml:"preamble_path" env:"VOCABTTL_PREAMBLE_PATH"`
	OutputPath   string `yaml:"output_path"   env:"VOCABTTL_OUTPUT_PATH"`
	Prefix       string `yaml:"prefix"        env:"VOCABTTL_PREFIX" env-default:"tr"`
}

// LoadConfig reads conversion configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("vocabttl config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("vocabttl config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("vocabttl config: read env: %w", err)
	}

	return &cfg, nil
}

// Converter renders the vocabulary TSV as Turtle.
type Converter struct {
	log *slog.Logger
	cfg Config
}

func NewConverter(log *slog.Logger, cfg Config) *Converter {
	return &Converter{log: log, cfg: cfg}
}

// Run reads the prefix and concept preamble, appends one rendered block per
// vocabulary row and writes the combined document.
func (c *Converter) Run(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	preamble, err := os.ReadFile(c.cfg.PreamblePath)
	if err != nil {
		return 0, fmt.Errorf("load preamble: %w", err)
	}

	table, err := tsv.ReadFile(c.cfg.VocabPath)
	if err != nil {
		return 0, fmt.Errorf("load vocabulary: %w", err)
	}
	if err := table.Require(colConcept, colTerm); err != nil {
		return 0, err
	}
	c.log.Info("converting vocabulary",
		slog.String("path", c.cfg.VocabPath),
		slog.Int("rows", table.Len()),
	)

	var b strings.Builder
	b.Write(preamble)
	for i := 0; i < table.Len(); i++ {
		entry := Entry{
			Concept:       table.Get(i, colConcept),
			Term:          table.Get(i, colTerm),
			Variants:      SplitList(table.Get(i, colVariants)),
			References:    SplitList(table.Get(i, colReference)),
			WikidataExact: strings.TrimSpace(table.Get(i, colWikidataExact)),
			WikidataClose: strings.TrimSpace(table.Get(i, colWikidataClose)),
		}
		b.WriteString(RenderEntry(c.cfg.Prefix, entry))
		b.WriteString("\n")
	}

	if err := os.WriteFile(c.cfg.OutputPath, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("write output: %w", err)
	}
	c.log.Info("conversion completed",
		slog.Int("entries", table.Len()),
		slog.String("output", c.cfg.OutputPath),
	)
	return table.Len(), nil
}
