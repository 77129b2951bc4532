package evaluate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/KleeAn/automated-dictionary-linking/internal/domain"
	"github.com/KleeAn/automated-dictionary-linking/internal/tsv"
)

// Config holds evaluation settings.
type Config struct {
	InputPath    string `yaml:"input_path"    env:"EVALUATE_INPUT_PATH"`
	OutputDir    string `yaml:"output_dir"    env:"EVALUATE_OUTPUT_DIR"    env-default:"."`
	GoldColumn   string `yaml:"gold_column"   env:"EVALUATE_GOLD_COLUMN"   env-default:"Konzept"`
	MappedColumn string `yaml:"mapped_column" env:"EVALUATE_MAPPED_COLUMN" env-default:"Konzept_gemappt"`
}

// LoadConfig reads evaluation configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("evaluate config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("evaluate config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("evaluate config: read env: %w", err)
	}

	return &cfg, nil
}

// Annotation columns appended to the evaluated table.
const (
	ColQuote      = "Quote"
	ColWrongExtra = "Falsche_Zusätzliche"
	ColExact      = "Exakt_gleich"
	ColGroup      = "Konzeptgruppe"
)

// relevantQuotes marks rows with at least one exact concept hit at a usable
// ratio; completeQuotes marks rows where every gold concept was found.
var (
	relevantQuotes = map[string]bool{"1/1": true, "1/2": true, "1/3": true, "2/2": true, "2/3": true, "2/4": true}
	completeQuotes = map[string]bool{"1/1": true, "2/2": true, "3/3": true, "4/4": true}
)

// Summary aggregates the whole-file evaluation outcome.
type Summary struct {
	Rows       int
	Relevant   int
	Complete   int
	Exact      int
	WrongExtra int
	MultiLabel MultiLabelReport
	Breakdowns []Breakdown
}

// Breakdown counts evaluation outcomes per value of a categorical column.
type Breakdown struct {
	Column string
	Rows   []BreakdownRow
}

// BreakdownRow is one value of a breakdown column with its outcome counts.
type BreakdownRow struct {
	Value    string
	Total    int
	Relevant int
	Complete int
	Exact    int
}

// Evaluator scores one mapping result file against its gold annotations.
type Evaluator struct {
	log *slog.Logger
	cfg Config
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(log *slog.Logger, cfg Config) *Evaluator {
	return &Evaluator{log: log, cfg: cfg}
}

// Run loads the input table, annotates every row with its comparison outcome
// and writes the annotated table plus a text report.
func (e *Evaluator) Run() (*Summary, error) {
	table, err := tsv.ReadFile(e.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	if err := table.Require(e.cfg.GoldColumn, e.cfg.MappedColumn); err != nil {
		return nil, err
	}
	e.log.Info("evaluating",
		slog.String("path", e.cfg.InputPath),
		slog.Int("rows", table.Len()),
		slog.String("mapped_column", e.cfg.MappedColumn),
	)

	summary := e.annotate(table)

	base := strings.TrimSuffix(filepath.Base(e.cfg.InputPath), filepath.Ext(e.cfg.InputPath))
	if i := strings.Index(base, "_matches"); i >= 0 {
		base = base[:i]
	}

	tablePath := filepath.Join(e.cfg.OutputDir, base+"_accuracy.tsv")
	if err := table.WriteFile(tablePath); err != nil {
		return nil, fmt.Errorf("write annotated table: %w", err)
	}
	reportPath := filepath.Join(e.cfg.OutputDir, base+"_evaluation.txt")
	if err := os.WriteFile(reportPath, []byte(RenderReport(summary)), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	e.log.Info("evaluation completed",
		slog.Int("relevant", summary.Relevant),
		slog.Int("complete", summary.Complete),
		slog.Int("exact", summary.Exact),
		slog.String("report", reportPath),
	)
	return summary, nil
}

// annotate appends the per-row outcome columns and accumulates the summary.
func (e *Evaluator) annotate(t *tsv.Table) *Summary {
	t.AddColumn(ColQuote)
	t.AddColumn(ColWrongExtra)
	t.AddColumn(ColExact)
	t.AddColumn(ColGroup)

	summary := &Summary{Rows: t.Len()}
	gold := make([][]string, 0, t.Len())
	pred := make([][]string, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		goldConcepts := RewriteGold(domain.SplitConcepts(t.Get(i, e.cfg.GoldColumn)))
		mapped := domain.SplitConcepts(t.Get(i, e.cfg.MappedColumn))
		gold = append(gold, goldConcepts)
		pred = append(pred, mapped)

		cmp := CompareConcepts(goldConcepts, mapped)
		exact := domain.SameConceptSet(
			domain.JoinConcepts(goldConcepts),
			domain.JoinConcepts(mapped),
		)

		t.Set(i, ColQuote, cmp.Ratio())
		t.Set(i, ColWrongExtra, strconv.Itoa(cmp.WrongExtra))
		t.Set(i, ColExact, strconv.FormatBool(exact))
		t.Set(i, ColGroup, ConceptGroup(t.Get(i, e.cfg.GoldColumn)))

		if relevantQuotes[cmp.Ratio()] {
			summary.Relevant++
			if cmp.WrongExtra > 0 {
				summary.WrongExtra++
			}
		}
		if completeQuotes[cmp.Ratio()] {
			summary.Complete++
		}
		if exact {
			summary.Exact++
		}
	}

	summary.MultiLabel = EvaluateMultiLabel(gold, pred)

	if t.HasColumn(domain.ColPOS) {
		summary.Breakdowns = append(summary.Breakdowns, e.breakdown(t, domain.ColPOS))
	}
	summary.Breakdowns = append(summary.Breakdowns, e.breakdown(t, ColGroup))

	return summary
}

func (e *Evaluator) breakdown(t *tsv.Table, column string) Breakdown {
	rows := make(map[string]*BreakdownRow)
	var order []string
	for i := 0; i < t.Len(); i++ {
		value := t.Get(i, column)
		row, ok := rows[value]
		if !ok {
			row = &BreakdownRow{Value: value}
			rows[value] = row
			order = append(order, value)
		}
		row.Total++
		if relevantQuotes[t.Get(i, ColQuote)] {
			row.Relevant++
		}
		if completeQuotes[t.Get(i, ColQuote)] {
			row.Complete++
		}
		if t.Get(i, ColExact) == "true" {
			row.Exact++
		}
	}
	sort.Strings(order)

	b := Breakdown{Column: column}
	for _, value := range order {
		b.Rows = append(b.Rows, *rows[value])
	}
	return b
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// RenderReport formats a summary as the plain-text evaluation report.
func RenderReport(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Gesamtmetriken ===\n")
	fmt.Fprintf(&b, "Zeilen gesamt:                       %d\n", s.Rows)
	fmt.Fprintf(&b, "Mindestens ein Exact Match:          %d von %d (%.2f%%)\n", s.Relevant, s.Rows, percent(s.Relevant, s.Rows))
	fmt.Fprintf(&b, "Alle gesuchten Konzepte gefunden:    %d von %d (%.2f%%)\n", s.Complete, s.Rows, percent(s.Complete, s.Rows))
	fmt.Fprintf(&b, "Perfekt gemappt:                     %d von %d (%.2f%%)\n", s.Exact, s.Rows, percent(s.Exact, s.Rows))
	fmt.Fprintf(&b, "Treffer mit falschen Zusätzlichen:   %d von %d\n", s.WrongExtra, s.Relevant)

	m := s.MultiLabel
	fmt.Fprintf(&b, "\n=== Multi-Label-Metriken ===\n")
	fmt.Fprintf(&b, "Weighted-Precision: %.4f\n", m.Weighted.Precision)
	fmt.Fprintf(&b, "Weighted-Recall:    %.4f\n", m.Weighted.Recall)
	fmt.Fprintf(&b, "Weighted-F1:        %.4f\n", m.Weighted.F1)
	fmt.Fprintf(&b, "Micro-Precision:    %.4f\n", m.Micro.Precision)
	fmt.Fprintf(&b, "Micro-Recall:       %.4f\n", m.Micro.Recall)
	fmt.Fprintf(&b, "Macro-Precision:    %.4f\n", m.Macro.Precision)
	fmt.Fprintf(&b, "Macro-Recall:       %.4f\n", m.Macro.Recall)
	fmt.Fprintf(&b, "Accuracy (mindestens ein Treffer): %d von %d (%.2f%%)\n", m.AtLeastOne, m.Samples, percent(m.AtLeastOne, m.Samples))

	fmt.Fprintf(&b, "\n=== Precision/Recall/F1 pro Konzept ===\n")
	for _, l := range m.PerLabel {
		fmt.Fprintf(&b, "%-40s P=%.4f R=%.4f F1=%.4f Support=%d\n", l.Label, l.Precision, l.Recall, l.F1, l.Support)
	}

	for _, bd := range s.Breakdowns {
		fmt.Fprintf(&b, "\n=== Aufschlüsselung nach %s ===\n", bd.Column)
		for _, row := range bd.Rows {
			fmt.Fprintf(&b, "%-20s Gesamt=%-5d Exact=%d (%.2f%%) Voll=%d (%.2f%%) Perfekt=%d (%.2f%%)\n",
				row.Value, row.Total,
				row.Relevant, percent(row.Relevant, row.Total),
				row.Complete, percent(row.Complete, row.Total),
				row.Exact, percent(row.Exact, row.Total),
			)
		}
	}

	return b.String()
}
