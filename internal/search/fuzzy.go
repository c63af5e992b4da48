package search

import (
	"sort"
	"strings"
)

// Match is a vocabulary term with its similarity to the probed term.
type Match struct {
	Term       string  `json:"term"`
	Similarity float64 `json:"similarity"`
}

// Matcher performs fuzzy and phonetic matching over a vocabulary. Both
// operations are pure functions of their inputs.
type Matcher struct {
	// Floor is the minimum similarity a fuzzy match must reach.
	Floor float64
}

// NewMatcher creates a Matcher with the given acceptance floor.
func NewMatcher(floor float64) *Matcher {
	return &Matcher{Floor: floor}
}

// Similarity computes normalized Levenshtein similarity between two terms:
// 1 - distance/max(len(a), len(b)). Identical terms score exactly 1.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// FindMatches returns up to limit vocabulary terms ranked by similarity to
// term, best first. Ties prefer the shorter candidate. Matches below the
// acceptance floor are excluded.
func (m *Matcher) FindMatches(term string, vocabulary []string, limit int) []Match {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil
	}

	var matches []Match
	for _, candidate := range vocabulary {
		sim := Similarity(term, candidate)
		if sim >= m.Floor {
			matches = append(matches, Match{Term: candidate, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		if len(matches[i].Term) != len(matches[j].Term) {
			return len(matches[i].Term) < len(matches[j].Term)
		}
		return matches[i].Term < matches[j].Term
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// FindPhoneticMatches returns vocabulary terms sharing term's Soundex key.
// Buckets are keyed on equality, not ranked; the relation is symmetric.
func (m *Matcher) FindPhoneticMatches(term string, vocabulary []string) []string {
	key := SoundexKey(term)
	if key == "" {
		return nil
	}

	var matches []string
	for _, candidate := range vocabulary {
		if candidate != term && SoundexKey(candidate) == key {
			matches = append(matches, candidate)
		}
	}
	return matches
}

// levenshtein computes the edit distance between two strings using
// two-row dynamic programming.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1]
			} else {
				curr[i] = 1 + min3(prev[i-1], prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func min3(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}

var soundexCodes = map[byte]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// SoundexKey computes the four-character Soundex encoding of a term.
// Non-ASCII-letter characters are ignored; an empty result means the term
// has no phonetic key.
func SoundexKey(term string) string {
	term = strings.ToUpper(term)

	// First letter anchors the key.
	var first byte
	var i int
	for i = 0; i < len(term); i++ {
		if term[i] >= 'A' && term[i] <= 'Z' {
			first = term[i]
			break
		}
	}
	if first == 0 {
		return ""
	}

	var key strings.Builder
	key.WriteByte(first)

	prev := soundexCodes[first]
	for i++; i < len(term) && key.Len() < 4; i++ {
		c := term[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		code := soundexCodes[c]
		if code != 0 && code != prev {
			key.WriteByte(code)
		}
		// H and W are transparent: they do not break a run of the same code.
		if c != 'H' && c != 'W' {
			prev = code
		}
	}

	for key.Len() < 4 {
		key.WriteByte('0')
	}

	return key.String()
}
