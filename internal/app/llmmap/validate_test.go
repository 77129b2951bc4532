package llmmap

import "testing"

var testClasses = []string{"trinken", "Durst", "Getränk", "other"}

func TestValidateAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		answer string
		want   string
		ok     bool
	}{
		{name: "exact", answer: "Durst", want: "Durst", ok: true},
		{name: "case insensitive", answer: "durst", want: "Durst", ok: true},
		{name: "surrounding whitespace", answer: "  trinken  ", want: "trinken", ok: true},
		{name: "markdown bold", answer: "**Getränk**", want: "Getränk", ok: true},
		{name: "double quotes", answer: `"other"`, want: "other", ok: true},
		{name: "typographic quotes", answer: "„falsch“ nein: “Durst”", want: "Durst", ok: true},
		{name: "boxed", answer: `$\boxed{other}$`, want: "other", ok: true},
		{name: "boxed with quotes", answer: `\boxed{"trinken"}`, want: "trinken", ok: true},
		{name: "ends with class", answer: "Die Antwort lautet: Getränk", want: "Getränk", ok: true},
		{name: "ends with class and period", answer: "Die Antwort lautet Durst.", want: "Durst", ok: true},
		{name: "empty", answer: "", ok: false},
		{name: "unrelated", answer: "Essen", ok: false},
		{name: "class only as prefix", answer: "Durstlöscher gesucht", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ValidateAnswer(tt.answer, testClasses)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ValidateAnswer(%q) = %q, %v; want %q, %v", tt.answer, got, ok, tt.want, tt.ok)
			}
		})
	}
}
