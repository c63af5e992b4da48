package models

// Discovery suggestion type constants
const (
	SuggestionFuzzyMatch     = "fuzzy_match"
	SuggestionSessionPattern = "session_pattern"
	SuggestionZeroResult     = "zero_result"
)

// Confidence bucket constants, used by the admin UI to color suggestions.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// DiscoverySuggestion is a candidate synonym mapping mined from search
// analytics. Suggestions are recomputed fresh on every discovery run and
// never persisted.
type DiscoverySuggestion struct {
	Type        string  `json:"type"`
	Term        string  `json:"term"`
	RelatedTerm string  `json:"related_term,omitempty"`
	Confidence  float64 `json:"confidence"`
	SearchCount int64   `json:"search_count"`
	Occurrences int64   `json:"occurrences,omitempty"`
	NeedsReview bool    `json:"needs_review,omitempty"`
}

// ConfidenceBucket classifies the suggestion's confidence for display.
func (s DiscoverySuggestion) ConfidenceBucket() string {
	switch {
	case s.Confidence >= 0.8:
		return ConfidenceHigh
	case s.Confidence >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// AutoCreateResult summarizes a batch synonym creation run. Duplicate and
// self-referential candidates count as skipped; other failures are collected
// per item and never abort the batch.
type AutoCreateResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
