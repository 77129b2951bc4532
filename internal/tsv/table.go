// Package tsv reads and writes the tab-separated corpus tables the pipeline
// stages exchange. A Table keeps column order explicit so that inserted
// columns land in a defined position and tie-breaks stay reproducible.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
)

// Table is an in-memory TSV file: an ordered header plus rows of cells.
// Rows always have exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses a TSV stream (UTF-8, tab-separated, header row first).
// Short rows are padded with empty cells, long rows truncated to the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		row := make([]string, len(header))
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadFile reads a TSV file from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write renders the table as TSV.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to disk, creating or truncating path.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Require fails with a MissingColumnError for the first absent column.
// Called before processing so a bad input aborts the stage up front.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return &domain.MissingColumnError{Column: name}
		}
	}
	return nil
}

// Get returns the cell at (row, column name); empty string if the column
// does not exist.
func (t *Table) Get(row int, name string) string {
	i, ok := t.ColumnIndex(name)
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// Set stores a cell value; unknown columns are ignored.
func (t *Table) Set(row int, name, value string) {
	if i, ok := t.ColumnIndex(name); ok {
		t.Rows[row][i] = value
	}
}

// AddColumn appends an empty column unless it already exists.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// InsertColumnAfter inserts an empty column right after an existing one.
func (t *Table) InsertColumnAfter(after, name string) error {
	if t.HasColumn(name) {
		return nil
	}
	pos, ok := t.ColumnIndex(after)
	if !ok {
		return &domain.MissingColumnError{Column: after}
	}
	pos++

	t.Columns = append(t.Columns, "")
	copy(t.Columns[pos+1:], t.Columns[pos:])
	t.Columns[pos] = name

	for i, row := range t.Rows {
		row = append(row, "")
		copy(row[pos+1:], row[pos:])
		row[pos] = ""
		t.Rows[i] = row
	}
	return nil
}

// MoveColumnToEnd relocates an existing column to the last position.
func (t *Table) MoveColumnToEnd(name string) {
	pos, ok := t.ColumnIndex(name)
	if !ok || pos == len(t.Columns)-1 {
		return
	}
	t.Columns = append(append(t.Columns[:pos:pos], t.Columns[pos+1:]...), name)
	for i, row := range t.Rows {
		v := row[pos]
		t.Rows[i] = append(append(row[:pos:pos], row[pos+1:]...), v)
	}
}

// DropColumns removes the named columns; absent names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if i, ok := t.ColumnIndex(name); ok {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	keep := make([]string, 0, len(t.Columns)-len(drop))
	for i, c := range t.Columns {
		if !drop[i] {
			keep = append(keep, c)
		}
	}
	for r, row := range t.Rows {
		kept := make([]string, 0, len(keep))
		for i, v := range row {
			if !drop[i] {
				kept = append(kept, v)
			}
		}
		t.Rows[r] = kept
	}
	t.Columns = keep
}

// ColumnRange returns the column names from first through last, inclusive.
// Used to prune the block of intermediate stage columns in one call.
func (t *Table) ColumnRange(first, last string) []string {
	a, okA := t.ColumnIndex(first)
	b, okB := t.ColumnIndex(last)
	if !okA || !okB || b < a {
		return nil
	}
	out := make([]string, b-a+1)
	copy(out, t.Columns[a:b+1])
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
