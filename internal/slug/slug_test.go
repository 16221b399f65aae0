package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Why We Chose Go in 2026!", "why-we-chose-go-in-2026"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Special @#$ Characters", "special-characters"},
		{"C++ & Go: A Comparison", "c-go-a-comparison"},
		{"Multiple   spaces", "multiple-spaces"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Generate(tt.input); got != tt.want {
			t.Errorf("Generate(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
