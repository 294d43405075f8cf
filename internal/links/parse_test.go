package links

import (
	"errors"
	"testing"

	apperrors "linkdrop-bot/internal/errors"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Selection
	}{
		{"bare number", "7", Selection{Lo: 7, Hi: 7}},
		{"range", "3-6", Selection{Lo: 3, Hi: 6}},
		{"whitespace around", "  10 ", Selection{Lo: 10, Hi: 10}},
		{"spaces inside range", "3 - 6", Selection{Lo: 3, Hi: 6}},
		{"reversed bounds normalized", "6-3", Selection{Lo: 3, Hi: 6}},
		{"single number range", "4-4", Selection{Lo: 4, Hi: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.input)
			if err != nil {
				t.Fatalf("ParseSelection(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSelection(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSelectionMalformed(t *testing.T) {
	inputs := []string{"", "  ", "abc", "1-b", "a-2", "-5", "1-2-3", "1.5"}

	for _, input := range inputs {
		if _, err := ParseSelection(input); !errors.Is(err, apperrors.ErrMalformedInput) {
			t.Fatalf("ParseSelection(%q) error = %v, want ErrMalformedInput", input, err)
		}
	}
}

func TestSelectionNumbers(t *testing.T) {
	sel := Selection{Lo: 3, Hi: 6}
	got := sel.Numbers()
	want := []int{3, 4, 5, 6}

	if len(got) != len(want) {
		t.Fatalf("Numbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Numbers() = %v, want %v", got, want)
		}
	}
	if sel.Span() != 4 {
		t.Fatalf("Span() = %d, want 4", sel.Span())
	}
}
