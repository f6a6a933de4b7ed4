package resolve

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalize produces the comparison key for an occupation label: lowercase,
// trimmed, internal whitespace collapsed, with " and " and " / " folded to
// their canonical spellings. Idempotent; the result is never stored.
func Normalize(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.Join(strings.Fields(normalized), " ")
	normalized = strings.ReplaceAll(normalized, " and ", " & ")
	normalized = strings.ReplaceAll(normalized, " / ", "/")
	return normalized
}

// Similarity scores two labels in [0, 1]: 1.0 for identical normalized
// strings, otherwise a normalized Levenshtein ratio.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1.0 - float64(dist)/float64(longest)
}
