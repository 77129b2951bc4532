package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedMapping inserts one concept mapping row with generated identifiers.
// Returns the filled domain.ConceptMapping.
func SeedMapping(t *testing.T, pool *pgxpool.Pool, sourceFile string) domain.ConceptMapping {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	m := domain.ConceptMapping{
		ID:             uuid.New(),
		SourceFile:     sourceFile,
		EntryID:        "entry-" + suffix,
		Lemma:          "trinken-" + suffix,
		PartOfSpeech:   "Verb",
		Definition:     "Flüssigkeit aufnehmen " + suffix,
		GoldConcepts:   []string{"Trinken"},
		MappedConcepts: []string{"Trinken"},
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO concept_mappings (id, source_file, entry_id, lemma, part_of_speech, definition, gold_concepts, mapped_concepts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.SourceFile, m.EntryID, m.Lemma, m.PartOfSpeech, m.Definition, m.GoldConcepts, m.MappedConcepts, m.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMapping insert: %v", err)
	}

	return m
}
