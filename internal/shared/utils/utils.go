package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TruncateText shortens text to at most length runes, ending in "..." when
// anything was cut.
func TruncateText(text string, length int) string {
	if length <= 3 {
		length = 4
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length-3]) + "..."
}

// FormatLargeNumber renders counters with K/M/B suffixes for display.
func FormatLargeNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseFollowerRange parses range filters like "1k-10k" or "1m-5m" into
// absolute bounds.
func ParseFollowerRange(s string) (min, max int64, ok bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}

	min, okMin := parseSuffixedNumber(parts[0])
	max, okMax := parseSuffixedNumber(parts[1])
	if !okMin || !okMax || min > max {
		return 0, 0, false
	}
	return min, max, true
}

func parseSuffixedNumber(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k':
		mult, s = 1_000, s[:len(s)-1]
	case 'm':
		mult, s = 1_000_000, s[:len(s)-1]
	case 'b':
		mult, s = 1_000_000_000, s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return int64(v * float64(mult)), true
}
