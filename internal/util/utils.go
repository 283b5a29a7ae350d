package util

import "strings"

// SplitCommaList splits a comma-joined multi-select value into its entries,
// dropping blanks.
func SplitCommaList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
