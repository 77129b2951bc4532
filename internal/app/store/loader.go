// Package store loads final mapping tables into the relational store so
// mapped entries can be queried by concept or source file.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
)

// Config holds store settings.
type Config struct {
	InputPath  string `yaml:"input_path" env:"STORE_INPUT_PATH"`
	SourceFile string `yaml:"source_file" env:"STORE_SOURCE_FILE"`
	BatchSize  int    `yaml:"batch_size" env:"STORE_BATCH_SIZE" env-default:"500"`
}

// LoadConfig reads store configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("store config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("store config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("store config: read env: %w", err)
	}

	return &cfg, nil
}

// MappingRepo is the subset of the mapping repository the loader needs.
type MappingRepo interface {
	BulkInsert(ctx context.Context, mappings []domain.ConceptMapping) (int, error)
}

// TxManager runs a function inside one database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result holds load statistics.
type Result struct {
	Rows     int // rows read from the input table
	Inserted int // rows actually written (conflicts are skipped by the repo)
}

// Loader reads a final mapping TSV and writes its rows to the repository.
type Loader struct {
	log  *slog.Logger
	cfg  Config
	repo MappingRepo
	txm  TxManager
}

func NewLoader(log *slog.Logger, cfg Config, repo MappingRepo, txm TxManager) *Loader {
	return &Loader{log: log, cfg: cfg, repo: repo, txm: txm}
}

// Run converts every input row into a concept mapping and bulk-inserts them
// in batches, all within one transaction: a failing batch rolls back the
// whole load. Rows already present for the same source file and entry id are
// left untouched.
func (l *Loader) Run(ctx context.Context) (Result, error) {
	table, err := tsv.ReadFile(l.cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	if err := table.Require(domain.ColXMLID, domain.ColLemma, domain.ColConcept, domain.ColConceptMapped); err != nil {
		return Result{}, err
	}

	sourceFile := l.cfg.SourceFile
	if sourceFile == "" {
		sourceFile = filepath.Base(l.cfg.InputPath)
	}

	mappings := buildMappings(table, sourceFile)
	l.log.Info("input table read",
		slog.String("path", l.cfg.InputPath),
		slog.String("source_file", sourceFile),
		slog.Int("rows", len(mappings)),
	)

	res := Result{Rows: len(mappings)}

	batchSize := l.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	err = l.txm.RunInTx(ctx, func(ctx context.Context) error {
		for start := 0; start < len(mappings); start += batchSize {
			end := start + batchSize
			if end > len(mappings) {
				end = len(mappings)
			}

			inserted, err := l.repo.BulkInsert(ctx, mappings[start:end])
			if err != nil {
				return fmt.Errorf("bulk insert rows %d-%d: %w", start, end, err)
			}
			res.Inserted += inserted
		}
		return nil
	})
	if err != nil {
		res.Inserted = 0
		return res, err
	}

	l.log.Info("load completed",
		slog.Int("rows", res.Rows),
		slog.Int("inserted", res.Inserted),
	)

	return res, nil
}

func buildMappings(table *tsv.Table, sourceFile string) []domain.ConceptMapping {
	now := time.Now().UTC()

	mappings := make([]domain.ConceptMapping, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		mappings = append(mappings, domain.ConceptMapping{
			ID:             uuid.New(),
			SourceFile:     sourceFile,
			EntryID:        table.Get(i, domain.ColXMLID),
			Lemma:          table.Get(i, domain.ColLemma),
			PartOfSpeech:   table.Get(i, domain.ColPOS),
			Definition:     table.Get(i, domain.ColDef),
			GoldConcepts:   domain.SplitConcepts(table.Get(i, domain.ColConcept)),
			MappedConcepts: domain.SplitConcepts(table.Get(i, domain.ColConceptMapped)),
			CreatedAt:      now,
		})
	}

	return mappings
}
