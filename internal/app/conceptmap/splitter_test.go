package conceptmap

import (
	"strings"
	"testing"
)

func TestSplitDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  string
		want []string
	}{
		{
			name: "semicolons",
			def:  "schlucken; Flüssigkeit aufnehmen",
			want: []string{"schlucken", "Flüssigkeit aufnehmen"},
		},
		{
			name: "plain comma splits",
			def:  "trinken, saufen, zechen",
			want: []string{"trinken", "saufen", "zechen"},
		},
		{
			name: "relative clause kept together",
			def:  "ein Getränk, das aus Trauben gewonnen wird",
			want: []string{"ein Getränk, das aus Trauben gewonnen wird"},
		},
		{
			name: "mixed comma behavior",
			def:  "Wein, der sauer ist, trinken",
			want: []string{"Wein, der sauer ist", "trinken"},
		},
		{
			name: "dessen suppresses split",
			def:  "ein Mann, dessen Durst groß ist",
			want: []string{"ein Mann, dessen Durst groß ist"},
		},
		{
			name: "semicolon then relative comma",
			def:  "saufen; Getränk, welches berauscht",
			want: []string{"saufen", "Getränk, welches berauscht"},
		},
		{
			name: "capitalized pronoun still suppresses",
			def:  "Wasser, Das man trinkt",
			want: []string{"Wasser, Das man trinkt"},
		},
		{
			name: "empty definition",
			def:  "",
			want: nil,
		},
		{
			name: "only separators",
			def:  " ; , ;",
			want: nil,
		},
		{
			name: "whitespace trimmed",
			def:  "  trinken  ;  saufen  ",
			want: []string{"trinken", "saufen"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitDefinition(tt.def)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitDefinition(%q) = %v, want %v", tt.def, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fragment[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Splitting an already-split fragment yields that fragment unchanged.
func TestSplitDefinitionIdempotent(t *testing.T) {
	t.Parallel()

	defs := []string{
		"schlucken; Flüssigkeit aufnehmen",
		"Wein, der sauer ist, trinken",
		"ein Getränk, das aus Trauben gewonnen wird",
		"trinken, saufen, zechen",
	}
	for _, def := range defs {
		for _, fragment := range SplitDefinition(def) {
			again := SplitDefinition(fragment)
			if len(again) != 1 || again[0] != fragment {
				t.Errorf("re-splitting %q = %v, want the fragment itself", fragment, again)
			}
		}
	}
}

func TestEncodeDecodeFragments(t *testing.T) {
	t.Parallel()

	fragments := []string{"schlucken", "Flüssigkeit aufnehmen", "Wein, der sauer ist"}
	cell := EncodeFragments(fragments)
	if !strings.HasPrefix(cell, "[") {
		t.Fatalf("cell = %q, want JSON array", cell)
	}

	got, err := DecodeFragments(cell)
	if err != nil {
		t.Fatalf("DecodeFragments: %v", err)
	}
	if len(got) != len(fragments) {
		t.Fatalf("got %v, want %v", got, fragments)
	}
	for i := range got {
		if got[i] != fragments[i] {
			t.Errorf("fragment[%d] = %q, want %q", i, got[i], fragments[i])
		}
	}
}

func TestEncodeFragmentsEmpty(t *testing.T) {
	t.Parallel()

	if cell := EncodeFragments(nil); cell != "" {
		t.Errorf("EncodeFragments(nil) = %q, want empty", cell)
	}
	got, err := DecodeFragments("")
	if err != nil || got != nil {
		t.Errorf("DecodeFragments(\"\") = %v, %v; want nil, nil", got, err)
	}
}

func TestDecodeFragmentsMalformed(t *testing.T) {
	t.Parallel()

	if _, err := DecodeFragments("['python', 'repr']"); err == nil {
		t.Error("expected error for malformed cell")
	}
	if _, err := DecodeFragments("kein json"); err == nil {
		t.Error("expected error for non-JSON cell")
	}
}
