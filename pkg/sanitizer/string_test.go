package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Dana Levi  ",
			want:  "Dana Levi",
		},
		{
			name:  "multiple spaces between words",
			input: "Dana    Levi",
			want:  "Dana Levi",
		},
		{
			name:  "tabs and newlines",
			input: "Dana\t\nLevi",
			want:  "Dana Levi",
		},
		{
			name:  "control characters removed",
			input: "Dana\x00\x07 Levi",
			want:  "Dana Levi",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Zoë & Co™ ",
			want:  "Zoë & Co™",
		},
		{
			name:  "hebrew characters",
			input: " דנה לוי ",
			want:  "דנה לוי",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := Pipeline{
		func(s string) string { return s + "a" },
		func(s string) string { return s + "b" },
	}
	if got := p.Apply(""); got != "ab" {
		t.Errorf("Apply() = %q, want %q", got, "ab")
	}
}
