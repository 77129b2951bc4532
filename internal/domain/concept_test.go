package domain

import "testing"

func TestSplitConcepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell string
		want []string
	}{
		{name: "empty", cell: "", want: nil},
		{name: "blank", cell: "   ", want: nil},
		{name: "single", cell: "Trinken", want: []string{"Trinken"}},
		{name: "two", cell: "Trinken; Getränk", want: []string{"Trinken", "Getränk"}},
		{name: "untrimmed", cell: "  Trinken ;Getränk.Wein ", want: []string{"Trinken", "Getränk.Wein"}},
		{name: "empty parts dropped", cell: "Trinken; ; Durst", want: []string{"Trinken", "Durst"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitConcepts(tt.cell)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitConcepts(%q) = %v, want %v", tt.cell, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitConcepts(%q)[%d] = %q, want %q", tt.cell, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMergeConcepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		next    string
		want    string
	}{
		{name: "both empty", current: "", next: "", want: ""},
		{name: "next empty keeps current", current: "Trinken", next: "", want: "Trinken"},
		{name: "current empty takes next", current: "", next: "Durst", want: "Durst"},
		{name: "union sorted", current: "Trinken", next: "Durst", want: "Durst; Trinken"},
		{name: "duplicates collapse", current: "Trinken; Durst", next: "Trinken", want: "Durst; Trinken"},
		{name: "multi next", current: "Getränk.Wein", next: "Durst; Trinken", want: "Durst; Getränk.Wein; Trinken"},
		{name: "next trimmed", current: "", next: "  Trinken ", want: "Trinken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MergeConcepts(tt.current, tt.next); got != tt.want {
				t.Errorf("MergeConcepts(%q, %q) = %q, want %q", tt.current, tt.next, got, tt.want)
			}
		})
	}
}

func TestMergeConceptsNeverDrops(t *testing.T) {
	t.Parallel()

	current := "Durst; Getränk"
	merged := MergeConcepts(current, "Trinken.Viel_trinken")
	for _, c := range SplitConcepts(current) {
		found := false
		for _, m := range SplitConcepts(merged) {
			if m == c {
				found = true
			}
		}
		if !found {
			t.Errorf("concept %q dropped by merge: %q", c, merged)
		}
	}
}

func TestCombineConcepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lemma    string
		shortDef string
		want     string
	}{
		{name: "both equal", lemma: "Trinken", shortDef: "Trinken", want: "Trinken"},
		{name: "both different", lemma: "Trinken", shortDef: "Durst", want: "Trinken; Durst"},
		{name: "lemma only", lemma: "Trinken", shortDef: "", want: "Trinken"},
		{name: "short def only", lemma: "", shortDef: "Durst", want: "Durst"},
		{name: "neither", lemma: "", shortDef: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CombineConcepts(tt.lemma, tt.shortDef); got != tt.want {
				t.Errorf("CombineConcepts(%q, %q) = %q, want %q", tt.lemma, tt.shortDef, got, tt.want)
			}
		})
	}
}

func TestDropNoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "sentinel alone kept", cell: "kein_Trinken", want: "kein_Trinken"},
		{name: "sentinel beside real concept removed", cell: "Trinken; kein_Trinken", want: "Trinken"},
		{name: "sentinel among several removed", cell: "Durst; Trinken; kein_Trinken", want: "Durst; Trinken"},
		{name: "no sentinel untouched", cell: "Durst; Trinken", want: "Durst; Trinken"},
		{name: "empty", cell: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DropNoMatch(tt.cell, NoMatchDefault); got != tt.want {
				t.Errorf("DropNoMatch(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestSameConceptSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "equal", a: "Trinken; Durst", b: "Trinken; Durst", want: true},
		{name: "order ignored", a: "Trinken; Durst", b: "Durst; Trinken", want: true},
		{name: "duplicates ignored", a: "Trinken; Trinken", b: "Trinken", want: true},
		{name: "different", a: "Trinken", b: "Durst", want: false},
		{name: "subset", a: "Trinken", b: "Trinken; Durst", want: false},
		{name: "both empty", a: "", b: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SameConceptSet(tt.a, tt.b); got != tt.want {
				t.Errorf("SameConceptSet(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
