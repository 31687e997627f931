package domain

import "testing"

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "lowercase", input: "Rabbit", want: "rabbit"},
		{name: "tabs and spaces", input: "\t cats \t", want: "cats"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "interior kept", input: "Well-Known", want: "well-known"},
		{name: "single word", input: "ABANDON", want: "abandon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeWord(tt.input); got != tt.want {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPlayableWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"rabbit", true},
		{"café", true},
		{"", false},
		{"Rabbit", false},
		{"well-known", false},
		{"don't", false},
		{"two words", false},
		{"abc1", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsPlayableWord(tt.input); got != tt.want {
				t.Errorf("IsPlayableWord(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
