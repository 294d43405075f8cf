package links

import (
	"fmt"
	"strconv"
	"strings"
)

// NoneAvailable is rendered when the free pool is empty
const NoneAvailable = "нет доступных номеров"

// FormatRanges renders a sorted ascending number list as compact ranges,
// e.g. [1 2 3 7 9 10] -> "1-3, 7, 9-10". Only runs of consecutive numbers
// are merged; every input number is covered by exactly one group.
func FormatRanges(numbers []int) string {
	if len(numbers) == 0 {
		return NoneAvailable
	}

	var groups []string
	start := numbers[0]
	prev := numbers[0]

	for _, n := range numbers[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		groups = append(groups, formatGroup(start, prev))
		start = n
		prev = n
	}
	groups = append(groups, formatGroup(start, prev))

	return strings.Join(groups, ", ")
}

func formatGroup(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
