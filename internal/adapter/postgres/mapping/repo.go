// Package mapping implements the ConceptMapping repository using PostgreSQL.
// Final mapping tables are bulk-loaded per source file; gold and mapped
// concepts are stored as text arrays so they can be queried per concept.
package mapping

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/KleeAn/automated-dictionary-linking/internal/adapter/postgres"
	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
)

const table = "concept_mappings"

var columns = []string{
	"id", "source_file", "entry_id", "lemma", "part_of_speech",
	"definition", "gold_concepts", "mapped_concepts", "created_at",
}

// Repo provides concept mapping persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// New creates a new concept mapping repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BulkInsert inserts mappings using pgx.Batch. Rows already present for the
// same source file and entry are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, mappings []domain.ConceptMapping) (int, error) {
	if len(mappings) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, m := range mappings {
		batch.Queue(
			`INSERT INTO concept_mappings (id, source_file, entry_id, lemma, part_of_speech, definition, gold_concepts, mapped_concepts, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT ON CONSTRAINT uq_concept_mappings_source_entry DO NOTHING`,
			m.ID, m.SourceFile, m.EntryID, m.Lemma, nilIfEmpty(m.PartOfSpeech),
			nilIfEmpty(m.Definition), m.GoldConcepts, m.MappedConcepts, m.CreatedAt,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// DeleteBySourceFile removes all mappings loaded from one source file.
// Returns the number of deleted rows.
func (r *Repo) DeleteBySourceFile(ctx context.Context, sourceFile string) (int, error) {
	sql, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"source_file": sourceFile}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError(err, sourceFile)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByEntry returns the mapping for one dictionary entry of a source file.
// Returns domain.ErrNotFound if no such row exists.
func (r *Repo) GetByEntry(ctx context.Context, sourceFile, entryID string) (*domain.ConceptMapping, error) {
	sql, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"source_file": sourceFile, "entry_id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	m, err := scanMapping(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, sourceFile+"/"+entryID)
	}
	return &m, nil
}

// ListBySourceFile returns mappings of one source file ordered by entry_id,
// with limit/offset pagination.
func (r *Repo) ListBySourceFile(ctx context.Context, sourceFile string, limit, offset int) ([]domain.ConceptMapping, error) {
	sql, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"source_file": sourceFile}).
		OrderBy("entry_id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var mappings []domain.ConceptMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// ListByConcept returns all mappings whose mapped concepts contain the given
// concept, ordered by source file and entry_id.
func (r *Repo) ListByConcept(ctx context.Context, concept string) ([]domain.ConceptMapping, error) {
	sql, args, err := r.sb.Select(columns...).
		From(table).
		Where("mapped_concepts @> ?", []string{concept}).
		OrderBy("source_file", "entry_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list mappings by concept: %w", err)
	}
	defer rows.Close()

	var mappings []domain.ConceptMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// CountBySourceFile returns how many mappings one source file has.
func (r *Repo) CountBySourceFile(ctx context.Context, sourceFile string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"source_file": sourceFile}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var count int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count mappings: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Scanning and error mapping
// ---------------------------------------------------------------------------

func scanMapping(row pgx.Row) (domain.ConceptMapping, error) {
	var (
		m          domain.ConceptMapping
		pos, defin *string
	)
	err := row.Scan(
		&m.ID, &m.SourceFile, &m.EntryID, &m.Lemma, &pos,
		&defin, &m.GoldConcepts, &m.MappedConcepts, &m.CreatedAt,
	)
	if err != nil {
		return domain.ConceptMapping{}, err
	}
	if pos != nil {
		m.PartOfSpeech = *pos
	}
	if defin != nil {
		m.Definition = *defin
	}
	return m, nil
}

func mapError(err error, key string) error {
	return postgres.MapError(err, "concept_mapping", key)
}

// nilIfEmpty returns nil if s is empty, otherwise a pointer to s.
// Used for nullable TEXT columns where empty string means NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
