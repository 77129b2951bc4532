package vocab

import (
	"strings"
	"testing"
)

const sampleJSON = `{
  "Trinken": {
    "Begriffe": ["trinken", "das Trinken", "sich betrinken"],
    "Viel_trinken": {
      "Begriffe": [["saufen", "zechen"], "ein Zecher"]
    }
  },
  "Getränk": {
    "Anmerkung": "nur Oberbegriffe",
    "Begriffe": "das Getränk",
    "Wein": {
      "Begriffe": ["der Wein", "der Most"]
    }
  },
  "Durst": {
    "Begriffe": []
  }
}`

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func load(t *testing.T, doc string) *Vocabulary {
	t.Helper()
	v, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return v
}

func TestLoadConceptOrder(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)
	want := []string{"Trinken", "Trinken.Viel_trinken", "Getränk", "Getränk.Wein", "Durst"}
	got := v.Concepts()
	if len(got) != len(want) {
		t.Fatalf("Concepts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Concepts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadFlattensNestedTermLists(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)
	terms := v.Terms("Trinken.Viel_trinken")
	want := []string{"saufen", "zechen", "ein Zecher", "Zecher"}
	if len(terms) != len(want) {
		t.Fatalf("Terms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("Terms[%d] = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestLoadScalarTermsValue(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)
	terms := v.Terms("Getränk")
	want := []string{"das Getränk", "Getränk"}
	if len(terms) != len(want) || terms[0] != want[0] || terms[1] != want[1] {
		t.Fatalf("Terms(Getränk) = %v, want %v", terms, want)
	}
}

func TestLoadEmptyTermsStillRegistersConcept(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)
	if !containsString(v.Concepts(), "Durst") {
		t.Fatal("concept with empty term list missing")
	}
	if got := v.Terms("Durst"); len(got) != 0 {
		t.Errorf("Terms(Durst) = %v, want empty", got)
	}
}

func TestArticleStripping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		term    string
		variant string
	}{
		{name: "definite article", term: "der Wein", variant: "Wein"},
		{name: "indefinite article", term: "ein Zecher", variant: "Zecher"},
		{name: "reflexive plus article", term: "sich einen antrinken", variant: "antrinken"},
		{name: "possessive", term: "seinen Durst löschen", variant: "Durst löschen"},
		{name: "stacked", term: "das ein wenig", variant: "wenig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := `{"K": {"Begriffe": ["` + tt.term + `"]}}`
			v := load(t, doc)
			terms := v.Terms("K")
			if len(terms) != 2 {
				t.Fatalf("Terms = %v, want original plus variant", terms)
			}
			if terms[1] != tt.variant {
				t.Errorf("variant = %q, want %q", terms[1], tt.variant)
			}
		})
	}
}

func TestNoVariantWhenStrippingChangesNothing(t *testing.T) {
	t.Parallel()

	// "trinken" has no leading article; "Derwisch" starts with "der" but
	// without following whitespace, so nothing is stripped.
	v := load(t, `{"K": {"Begriffe": ["trinken", "Derwisch", "der"]}}`)
	want := []string{"trinken", "Derwisch", "der"}
	terms := v.Terms("K")
	if len(terms) != len(want) {
		t.Fatalf("Terms = %v, want %v", terms, want)
	}
}

func TestVariantDeduplicated(t *testing.T) {
	t.Parallel()

	// "der Wein" yields variant "Wein", already present as its own term.
	v := load(t, `{"K": {"Begriffe": ["Wein", "der Wein"]}}`)
	want := []string{"Wein", "der Wein"}
	terms := v.Terms("K")
	if len(terms) != len(want) {
		t.Fatalf("Terms = %v, want %v (variant of %q duplicates %q)", terms, want, "der Wein", "Wein")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)

	if got := v.Lookup("trinken"); len(got) != 1 || got[0] != "Trinken" {
		t.Errorf("Lookup(trinken) = %v", got)
	}
	if got := v.Lookup("Apfel"); got != nil {
		t.Errorf("Lookup(Apfel) = %v, want nil", got)
	}
}

func TestLookupUnambiguous(t *testing.T) {
	t.Parallel()

	doc := `{
	  "Trinken": {"Begriffe": ["trinken", "Zug"]},
	  "Durst": {"Begriffe": ["Zug"]}
	}`
	v := load(t, doc)

	if c, ok := v.LookupUnambiguous("trinken"); !ok || c != "Trinken" {
		t.Errorf("LookupUnambiguous(trinken) = %q, %v", c, ok)
	}
	if _, ok := v.LookupUnambiguous("Zug"); ok {
		t.Error("ambiguous term resolved")
	}
	if _, ok := v.LookupUnambiguous("Apfel"); ok {
		t.Error("unknown term resolved")
	}
	if got := v.Lookup("Zug"); len(got) != 2 {
		t.Errorf("Lookup(Zug) = %v, want two concepts", got)
	}
}

func TestFindConceptFold(t *testing.T) {
	t.Parallel()

	v := load(t, sampleJSON)

	tests := []struct {
		name     string
		fragment string
		want     string
		ok       bool
	}{
		{name: "exact", fragment: "saufen", want: "Trinken.Viel_trinken", ok: true},
		{name: "case insensitive", fragment: "SAUFEN", want: "Trinken.Viel_trinken", ok: true},
		{name: "untrimmed", fragment: "  der Most ", want: "Getränk.Wein", ok: true},
		{name: "stripped variant", fragment: "Most", want: "Getränk.Wein", ok: true},
		{name: "unknown", fragment: "Apfel", ok: false},
		{name: "empty", fragment: "   ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := v.FindConceptFold(tt.fragment)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FindConceptFold(%q) = %q, %v; want %q, %v", tt.fragment, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindConceptFoldDocumentOrderWins(t *testing.T) {
	t.Parallel()

	doc := `{
	  "Erster": {"Begriffe": ["Zug"]},
	  "Zweiter": {"Begriffe": ["Zug"]}
	}`
	v := load(t, doc)
	got, ok := v.FindConceptFold("zug")
	if !ok || got != "Erster" {
		t.Errorf("FindConceptFold(zug) = %q, %v; want first concept in document order", got, ok)
	}
}

func TestLoadRejectsNonObject(t *testing.T) {
	t.Parallel()

	if _, err := Load(strings.NewReader(`["a", "b"]`)); err == nil {
		t.Error("Load accepted a top-level array")
	}
	if _, err := Load(strings.NewReader(``)); err == nil {
		t.Error("Load accepted empty input")
	}
}

func TestLoadSkipsUnrelatedArrays(t *testing.T) {
	t.Parallel()

	doc := `{
	  "Meta": [1, 2, {"nested": ["x"]}],
	  "Trinken": {"Begriffe": ["trinken"]}
	}`
	v := load(t, doc)
	if v.Len() != 1 || v.Concepts()[0] != "Trinken" {
		t.Errorf("Concepts = %v", v.Concepts())
	}
}
