package links

import "testing"

func TestFormatRanges(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		want    string
	}{
		{"empty", nil, NoneAvailable},
		{"single", []int{5}, "5"},
		{"consecutive run", []int{1, 2, 3}, "1-3"},
		{"mixed", []int{1, 2, 3, 7, 9, 10}, "1-3, 7, 9-10"},
		{"all isolated", []int{2, 4, 6}, "2, 4, 6"},
		{"pair", []int{11, 12}, "11-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRanges(tt.numbers); got != tt.want {
				t.Fatalf("FormatRanges(%v) = %q, want %q", tt.numbers, got, tt.want)
			}
		})
	}
}
