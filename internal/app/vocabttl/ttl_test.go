package vocabttl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Trinken", "trinken"},
		{"  Durst löschen ", "durst_löschen"},
		{"ein  Glas\ttrinken", "ein_glas_trinken"},
		{"Wasser2", "wasser2"},
	}
	for _, tt := range tests {
		if got := NormalizeIdentifier(tt.in); got != tt.want {
			t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	if got := SplitList("saufen; schlucken; zechen"); !reflect.DeepEqual(got, []string{"saufen", "schlucken", "zechen"}) {
		t.Errorf("SplitList = %v", got)
	}
	if got := SplitList("saufen"); !reflect.DeepEqual(got, []string{"saufen"}) {
		t.Errorf("SplitList single = %v", got)
	}
	if got := SplitList("  "); got != nil {
		t.Errorf("SplitList empty = %v, want nil", got)
	}
}

func TestRenderEntryMinimal(t *testing.T) {
	t.Parallel()

	got := RenderEntry("tr", Entry{Concept: "Trinken", Term: "trinken"})

	for _, want := range []string{
		"tr:trinken a ontolex:LexicalEntry ;",
		"\trdfs:label \"trinken\"@de ;",
		"\t\tontolex:writtenRep \"trinken\"@de ;",
		"\t] .",
		"tr:sense-trinken a ontolex:LexicalSense ;",
		"\tontolex:isSenseOf tr:trinken ;",
		"\ttree:isSenseInConcept tr:Trinken .",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "otherForm") {
		t.Errorf("unexpected otherForm in:\n%s", got)
	}
}

func TestRenderEntryHomographNumber(t *testing.T) {
	t.Parallel()

	got := RenderEntry("tr", Entry{Concept: "Getränk", Term: "Wasser2"})

	if !strings.Contains(got, "tr:wasser2 a ontolex:LexicalEntry") {
		t.Errorf("identifier should keep the number:\n%s", got)
	}
	if !strings.Contains(got, "rdfs:label \"Wasser2\"@de") {
		t.Errorf("label should keep the number:\n%s", got)
	}
	if !strings.Contains(got, "ontolex:writtenRep \"Wasser\"@de") {
		t.Errorf("writtenRep should drop the number:\n%s", got)
	}
}

func TestRenderEntryVariantsAndReferences(t *testing.T) {
	t.Parallel()

	got := RenderEntry("tr", Entry{
		Concept:       "Trinken",
		Term:          "saufen",
		Variants:      []string{"schlucken", "zechen"},
		References:    []string{"https://www.openthesaurus.de/synonyme/saufen"},
		WikidataExact: "http://www.wikidata.org/entity/Q1111",
		WikidataClose: "http://www.wikidata.org/entity/Q2222",
	})

	if n := strings.Count(got, "ontolex:otherForm ["); n != 2 {
		t.Errorf("otherForm blocks = %d, want 2:\n%s", n, got)
	}
	// The variant list ends with a period, intermediate blocks with semicolons.
	if !strings.Contains(got, "writtenRep \"schlucken\"@de ;\n\t] ;") {
		t.Errorf("first variant should end with semicolon:\n%s", got)
	}
	if !strings.Contains(got, "writtenRep \"zechen\"@de ;\n\t] .") {
		t.Errorf("last variant should end with period:\n%s", got)
	}
	if !strings.Contains(got, "ontolex:reference <https://www.openthesaurus.de/synonyme/saufen> ;") {
		t.Errorf("missing Openthesaurus reference:\n%s", got)
	}
	if !strings.Contains(got, "ontolex:reference <http://www.wikidata.org/entity/Q1111> ;") {
		t.Errorf("missing exact Wikidata reference:\n%s", got)
	}
	if !strings.Contains(got, "skos:closeMatch <http://www.wikidata.org/entity/Q2222> ;") {
		t.Errorf("missing closeMatch blank node:\n%s", got)
	}
}

func TestConverterRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	preamble := filepath.Join(dir, "prefixes.ttl")
	if err := os.WriteFile(preamble, []byte("@prefix tr: <http://example.org/trinken#> .\n\n"), 0o644); err != nil {
		t.Fatalf("write preamble: %v", err)
	}
	vocabPath := filepath.Join(dir, "vokabular.tsv")
	rows := strings.Join([]string{
		strings.Join([]string{"Konzept", "Begriff", "Begriffsvarianten", "Referenz", "Wikidata_exact", "Wikidata_close"}, "\t"),
		strings.Join([]string{"Trinken", "trinken", "saufen; zechen", "", "http://www.wikidata.org/entity/Q1111", ""}, "\t"),
		strings.Join([]string{"Durst", "Durst", "", "https://www.openthesaurus.de/synonyme/durst", "", ""}, "\t"),
	}, "\n") + "\n"
	if err := os.WriteFile(vocabPath, []byte(rows), 0o644); err != nil {
		t.Fatalf("write vocabulary: %v", err)
	}
	outPath := filepath.Join(dir, "vokabular.ttl")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewConverter(log, Config{VocabPath: vocabPath, PreamblePath: preamble, OutputPath: outPath, Prefix: "tr"})
	n, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(out)
	if !strings.HasPrefix(text, "@prefix tr:") {
		t.Errorf("preamble not kept:\n%s", text[:80])
	}
	if !strings.Contains(text, "tr:trinken a ontolex:LexicalEntry") {
		t.Error("first entry missing")
	}
	if !strings.Contains(text, "tr:sense-durst a ontolex:LexicalSense") {
		t.Error("second entry sense missing")
	}
}
