package validation

import (
	"strings"
)

// Weight bounds for synonym entries.
const (
	MinWeight = 0.1
	MaxWeight = 1.0
)

// MinTermLength is the shortest canonical or synonym term accepted.
const MinTermLength = 2

// MaxTermLength guards against pathological input; terms are search words,
// not sentences.
const MaxTermLength = 100

// NormalizeTerm lowercases and trims a single dictionary term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// ValidateTerm checks a normalized canonical or synonym term.
func ValidateTerm(term string) bool {
	n := len(term)
	return n >= MinTermLength && n <= MaxTermLength
}

// NormalizeQuery lowercases a raw search query, folds common separators to
// spaces, and collapses whitespace runs so analytics buckets line up.
func NormalizeQuery(q string) string {
	s := strings.ToLower(strings.TrimSpace(q))
	for _, sep := range []string{"-", "_", "/", "."} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

// ValidateWeight checks that a synonym weight is within the accepted range.
func ValidateWeight(w float64) bool {
	return w >= MinWeight && w <= MaxWeight
}
