package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
)

// colRawPOS is the grammar-marker column of raw dictionary exports. It is
// replaced by the mapped Wortart column.
const colRawPOS = "POS"

// Config holds extraction settings.
type Config struct {
	InputPath string `yaml:"input_path" env:"EXTRACT_INPUT_PATH"`
	OutputDir string `yaml:"output_dir" env:"EXTRACT_OUTPUT_DIR" env-default:"."`
}

// LoadConfig reads extraction configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("extract config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("extract config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("extract config: read env: %w", err)
	}

	return &cfg, nil
}

// Result holds extraction statistics.
type Result struct {
	Rows       int
	POSMapped  int
	POSUnknown int
}

// Extractor normalizes one raw dictionary TSV.
type Extractor struct {
	log *slog.Logger
	cfg Config
}

func NewExtractor(log *slog.Logger, cfg Config) *Extractor {
	return &Extractor{log: log, cfg: cfg}
}

// Run reads the input table, adds Lemma_bereinigt next to the raw headword,
// cleans the definitions in place and maps grammar markers to Wortart. The
// result lands next to the input name with a _normalized suffix.
func (e *Extractor) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	table, err := tsv.ReadFile(e.cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("load input: %w", err)
	}
	if err := table.Require(domain.ColLemma, domain.ColDef); err != nil {
		return Result{}, err
	}
	e.log.Info("normalizing entries",
		slog.String("path", e.cfg.InputPath),
		slog.Int("rows", table.Len()),
	)

	if err := table.InsertColumnAfter(domain.ColLemma, domain.ColLemmaClean); err != nil {
		return Result{}, err
	}
	for i := 0; i < table.Len(); i++ {
		variants := NormalizeLemma(table.Get(i, domain.ColLemma))
		table.Set(i, domain.ColLemmaClean, strings.Join(variants, ", "))
	}

	for i := 0; i < table.Len(); i++ {
		cleaned := NormalizeDefinition(table.Get(i, domain.ColDef), table.Get(i, domain.ColLemmaClean))
		table.Set(i, domain.ColDef, cleaned)
	}

	result := Result{Rows: table.Len()}
	if table.HasColumn(colRawPOS) {
		if err := table.InsertColumnAfter(colRawPOS, domain.ColPOS); err != nil {
			return Result{}, err
		}
		for i := 0; i < table.Len(); i++ {
			pos := MapPOS(table.Get(i, colRawPOS))
			if pos == "" {
				result.POSUnknown++
			} else {
				result.POSMapped++
			}
			table.Set(i, domain.ColPOS, pos)
		}
		table.DropColumns(colRawPOS)
	}

	base := strings.TrimSuffix(filepath.Base(e.cfg.InputPath), filepath.Ext(e.cfg.InputPath))
	outPath := filepath.Join(e.cfg.OutputDir, base+"_normalized.tsv")
	if err := table.WriteFile(outPath); err != nil {
		return result, fmt.Errorf("write output: %w", err)
	}
	e.log.Info("normalization completed",
		slog.Int("rows", result.Rows),
		slog.Int("pos_mapped", result.POSMapped),
		slog.Int("pos_unknown", result.POSUnknown),
		slog.String("output", outPath),
	)
	return result, nil
}
