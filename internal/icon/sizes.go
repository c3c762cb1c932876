package icon

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSizes reads a comma or space separated list of entry sizes such as
// "256, 48, 16px". An empty list selects DefaultSizes.
func ParseSizes(text string) ([]int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	if len(fields) == 0 {
		return append([]int(nil), DefaultSizes...), nil
	}
	sizes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSuffix(f, "px"))
		if err != nil || n < 1 || n > maxEntrySize {
			return nil, fmt.Errorf("invalid icon size %q (1-%d)", f, maxEntrySize)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// FormatSizes is the inverse of ParseSizes
func FormatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
