package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
)

type fakeRepo struct {
	batches  [][]domain.ConceptMapping
	failFrom int // batch index from which BulkInsert errors; -1 = never
}

func (f *fakeRepo) BulkInsert(_ context.Context, mappings []domain.ConceptMapping) (int, error) {
	if f.failFrom >= 0 && len(f.batches) >= f.failFrom {
		return 0, errors.New("connection reset")
	}
	f.batches = append(f.batches, append([]domain.ConceptMapping(nil), mappings...))
	return len(mappings), nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trinken_final.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const inputHeader = "xml:id\tLemma\tWortart\tDefinition\tKonzept\tKonzept_gemappt\n"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderRun(t *testing.T) {
	t.Parallel()

	input := writeInput(t, inputHeader+
		"e1\tTrunk\tSubstantiv\tdas Trinken\tTrinken\tTrinken\n"+
		"e2\tsaufen\tVerb\tviel trinken\tTrinken; Rausch\tRausch\n"+
		"e3\tDurst\tSubstantiv\t\tDurst\t\n")

	repo := &fakeRepo{failFrom: -1}
	txm := &fakeTxManager{}
	loader := NewLoader(testLogger(), Config{InputPath: input, BatchSize: 2}, repo, txm)

	res, err := loader.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 1, txm.calls)
	require.Len(t, repo.batches, 2)
	assert.Len(t, repo.batches[0], 2)
	assert.Len(t, repo.batches[1], 1)

	first := repo.batches[0][0]
	assert.NotEqual(t, "", first.ID.String())
	assert.Equal(t, "trinken_final.tsv", first.SourceFile)
	assert.Equal(t, "e1", first.EntryID)
	assert.Equal(t, "Trunk", first.Lemma)
	assert.Equal(t, "Substantiv", first.PartOfSpeech)
	assert.Equal(t, "das Trinken", first.Definition)
	assert.Equal(t, []string{"Trinken"}, first.GoldConcepts)
	assert.Equal(t, []string{"Trinken"}, first.MappedConcepts)
	assert.False(t, first.CreatedAt.IsZero())

	second := repo.batches[0][1]
	assert.Equal(t, []string{"Trinken", "Rausch"}, second.GoldConcepts)

	third := repo.batches[1][0]
	assert.Nil(t, third.MappedConcepts)
}

func TestLoaderSourceFileOverride(t *testing.T) {
	t.Parallel()

	input := writeInput(t, inputHeader+"e1\tTrunk\t\t\tTrinken\tTrinken\n")

	repo := &fakeRepo{failFrom: -1}
	cfg := Config{InputPath: input, SourceFile: "trinken_2024.tsv"}
	loader := NewLoader(testLogger(), cfg, repo, &fakeTxManager{})

	_, err := loader.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.batches, 1)
	assert.Equal(t, "trinken_2024.tsv", repo.batches[0][0].SourceFile)
}

func TestLoaderMissingColumn(t *testing.T) {
	t.Parallel()

	input := writeInput(t, "xml:id\tLemma\n1\tTrunk\n")

	loader := NewLoader(testLogger(), Config{InputPath: input}, &fakeRepo{failFrom: -1}, &fakeTxManager{})

	_, err := loader.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestLoaderInsertError(t *testing.T) {
	t.Parallel()

	input := writeInput(t, inputHeader+
		"e1\tTrunk\t\t\tTrinken\tTrinken\n"+
		"e2\tsaufen\t\t\tTrinken\tTrinken\n")

	repo := &fakeRepo{failFrom: 1}
	txm := &fakeTxManager{}
	loader := NewLoader(testLogger(), Config{InputPath: input, BatchSize: 1}, repo, txm)

	res, err := loader.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, txm.calls)
	// The shared transaction rolls back, so nothing counts as inserted.
	assert.Equal(t, 0, res.Inserted)
}
