package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSeatNumbers uppercases and de-duplicates a seat list while
// keeping the original order.
func NormalizeSeatNumbers(raw []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, s := range raw {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// StationCode returns the first three letters of a station name, uppercased.
func StationCode(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}
