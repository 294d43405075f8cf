package links

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "linkdrop-bot/internal/errors"
)

// Selection is a requested number or inclusive range, with Lo <= Hi
type Selection struct {
	Lo int
	Hi int
}

// Span returns how many numbers the selection covers
func (s Selection) Span() int {
	return s.Hi - s.Lo + 1
}

// Numbers expands the selection into the ascending integer sequence
func (s Selection) Numbers() []int {
	numbers := make([]int, 0, s.Span())
	for n := s.Lo; n <= s.Hi; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}

// ParseSelection parses free-text input as a bare number ("10") or a range
// ("10-15"). Whitespace is stripped before parsing. Reversed bounds are
// normalized, never rejected.
func ParseSelection(text string) (Selection, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	if cleaned == "" {
		return Selection{}, fmt.Errorf("empty selection: %w", apperrors.ErrMalformedInput)
	}

	if lo, hi, found := strings.Cut(cleaned, "-"); found {
		a, err1 := strconv.Atoi(lo)
		b, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return Selection{}, fmt.Errorf("range %q: %w", text, apperrors.ErrMalformedInput)
		}
		if a > b {
			a, b = b, a
		}
		return Selection{Lo: a, Hi: b}, nil
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return Selection{}, fmt.Errorf("number %q: %w", text, apperrors.ErrMalformedInput)
	}
	return Selection{Lo: n, Hi: n}, nil
}
