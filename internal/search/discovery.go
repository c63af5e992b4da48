package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"catalogsearch/internal/config"
	"catalogsearch/internal/db"
	"catalogsearch/internal/models"
)

// analysisFetchLimit bounds how many aggregates each analysis pulls.
const analysisFetchLimit = 200

// reviewFloorScale relaxes the fuzzy floor for zero-result suggestions that
// are flagged for manual review rather than auto-creation.
const reviewFloorScale = 0.8

// Discovery mines search analytics and the vocabulary for synonym
// candidates. Suggestions are recomputed fresh on every call.
type Discovery struct {
	manager   *Manager
	matcher   *Matcher
	analytics AnalyticsStore
	cfg       *config.Config
}

// NewDiscovery creates a Discovery engine.
func NewDiscovery(manager *Manager, matcher *Matcher, analytics AnalyticsStore, cfg *config.Config) *Discovery {
	return &Discovery{manager: manager, matcher: matcher, analytics: analytics, cfg: cfg}
}

// AnalyzeSearchPatterns runs the three discovery analyses over the trailing
// window and returns the combined suggestion list. A store failure in one
// analysis is logged and does not block the others; partial results are the
// norm.
func (d *Discovery) AnalyzeSearchPatterns(ctx context.Context, days int) ([]models.DiscoverySuggestion, error) {
	if days < 1 {
		days = d.cfg.DiscoveryWindowDays
	}

	vocabulary, err := d.manager.Vocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	vocabSet := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		vocabSet[term] = true
	}

	suggestions := []models.DiscoverySuggestion{}

	fuzzy, err := d.fuzzySuggestions(ctx, days, vocabulary, vocabSet)
	if err != nil {
		slog.Error("fuzzy-match analysis failed", "error", err)
	}
	suggestions = append(suggestions, fuzzy...)

	session, err := d.sessionSuggestions(ctx, days, vocabSet)
	if err != nil {
		slog.Error("session-pattern analysis failed", "error", err)
	}
	suggestions = append(suggestions, session...)

	zero, err := d.zeroResultSuggestions(ctx, days, vocabulary, vocabSet)
	if err != nil {
		slog.Error("zero-result analysis failed", "error", err)
	}
	suggestions = append(suggestions, zero...)

	return suggestions, nil
}

// fuzzySuggestions proposes typo corrections: frequent or zero-result query
// words outside the vocabulary whose best fuzzy match clears the floor.
func (d *Discovery) fuzzySuggestions(ctx context.Context, days int, vocabulary []string, vocabSet map[string]bool) ([]models.DiscoverySuggestion, error) {
	popular, err := d.analytics.PopularQueryTotals(ctx, days, analysisFetchLimit)
	if err != nil {
		return nil, err
	}
	zero, err := d.analytics.ZeroResultTotals(ctx, days, analysisFetchLimit)
	if err != nil {
		return nil, err
	}

	// Merge both sources, keeping the larger search volume per query.
	volumes := make(map[string]int64)
	for _, agg := range append(popular, zero...) {
		if agg.TotalSearches > volumes[agg.Query] {
			volumes[agg.Query] = agg.TotalSearches
		}
	}

	var suggestions []models.DiscoverySuggestion
	seen := make(map[string]bool)
	for query, volume := range volumes {
		if volume < int64(d.cfg.MinSearchVolume) {
			continue
		}
		for _, word := range strings.Fields(query) {
			if len(word) < 3 || vocabSet[word] || seen[word] {
				continue
			}
			seen[word] = true

			best := d.matcher.FindMatches(word, vocabulary, 1)
			if len(best) == 0 {
				continue
			}
			suggestions = append(suggestions, models.DiscoverySuggestion{
				Type:        models.SuggestionFuzzyMatch,
				Term:        word,
				RelatedTerm: best[0].Term,
				Confidence:  best[0].Similarity,
				SearchCount: volume,
			})
		}
	}
	return suggestions, nil
}

// sessionSuggestions mines "searched A, then searched B" refinements from
// session-grouped sequences. Confidence is the share of sessions containing
// A that follow it directly with B.
func (d *Discovery) sessionSuggestions(ctx context.Context, days int, vocabSet map[string]bool) ([]models.DiscoverySuggestion, error) {
	gap := time.Duration(d.cfg.SessionGapMinutes) * time.Minute
	sessions, err := d.analytics.SessionSequences(ctx, days, gap)
	if err != nil {
		return nil, err
	}

	type pair struct{ from, to string }
	pairCounts := make(map[pair]int64)
	sessionsWith := make(map[string]int64)

	for _, s := range sessions {
		distinct := make(map[string]bool)
		pairsInSession := make(map[pair]bool)
		for i, q := range s.Queries {
			if !distinct[q] {
				distinct[q] = true
				sessionsWith[q]++
			}
			if i+1 < len(s.Queries) && s.Queries[i+1] != q {
				pairsInSession[pair{from: q, to: s.Queries[i+1]}] = true
			}
		}
		for p := range pairsInSession {
			pairCounts[p]++
		}
	}

	var suggestions []models.DiscoverySuggestion
	for p, count := range pairCounts {
		if count < int64(d.cfg.MinSessionOccurrences) {
			continue
		}
		// A refinement from a term already in the dictionary is noise.
		if vocabSet[p.from] {
			continue
		}
		confidence := float64(count) / float64(sessionsWith[p.from])
		if confidence < d.cfg.MinSessionConfidence {
			continue
		}
		suggestions = append(suggestions, models.DiscoverySuggestion{
			Type:        models.SuggestionSessionPattern,
			Term:        p.from,
			RelatedTerm: p.to,
			Confidence:  confidence,
			Occurrences: count,
		})
	}
	return suggestions, nil
}

// zeroResultSuggestions surfaces recurring zero-result queries with no
// fuzzy match above the floor, attaching a relaxed best-effort suggestion
// flagged for manual review when one exists.
func (d *Discovery) zeroResultSuggestions(ctx context.Context, days int, vocabulary []string, vocabSet map[string]bool) ([]models.DiscoverySuggestion, error) {
	zero, err := d.analytics.ZeroResultTotals(ctx, days, analysisFetchLimit)
	if err != nil {
		return nil, err
	}

	relaxed := &Matcher{Floor: d.matcher.Floor * reviewFloorScale}

	var suggestions []models.DiscoverySuggestion
	for _, agg := range zero {
		if agg.ZeroResultCount < int64(d.cfg.MinSearchVolume) || vocabSet[agg.Query] {
			continue
		}

		// Covered by the fuzzy-match analysis when a word clears the floor.
		if d.hasMatchAboveFloor(agg.Query, vocabulary) {
			continue
		}

		suggestion := models.DiscoverySuggestion{
			Type:        models.SuggestionZeroResult,
			Term:        agg.Query,
			SearchCount: agg.TotalSearches,
			Occurrences: agg.ZeroResultCount,
			NeedsReview: true,
		}
		if best := relaxed.FindMatches(agg.Query, vocabulary, 1); len(best) > 0 {
			suggestion.RelatedTerm = best[0].Term
			suggestion.Confidence = best[0].Similarity
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

// hasMatchAboveFloor reports whether the query or any of its words has a
// fuzzy match at or above the acceptance floor.
func (d *Discovery) hasMatchAboveFloor(query string, vocabulary []string) bool {
	if len(d.matcher.FindMatches(query, vocabulary, 1)) > 0 {
		return true
	}
	for _, word := range strings.Fields(query) {
		if len(word) >= 3 && len(d.matcher.FindMatches(word, vocabulary, 1)) > 0 {
			return true
		}
	}
	return false
}

// AutoCreateSynonyms creates dictionary entries for fuzzy-match and
// session-pattern suggestions at or above minConfidence. Items are
// processed sequentially and independently: duplicates and self-referential
// pairs count as skipped, other failures are collected per item, and a
// failure never aborts the batch. Re-running with the same suggestions is
// idempotent.
func (d *Discovery) AutoCreateSynonyms(ctx context.Context, suggestions []models.DiscoverySuggestion, minConfidence float64) *models.AutoCreateResult {
	if minConfidence <= 0 {
		minConfidence = d.cfg.AutoCreateConfidence
	}

	result := &models.AutoCreateResult{Errors: []string{}}
	for _, s := range suggestions {
		if s.Type != models.SuggestionFuzzyMatch && s.Type != models.SuggestionSessionPattern {
			continue
		}
		if s.Confidence < minConfidence || s.RelatedTerm == "" {
			continue
		}

		entry := &models.SynonymEntry{
			Canonical: s.RelatedTerm,
			Synonym:   s.Term,
			Weight:    clampWeight(s.Confidence),
			IsActive:  true,
			Source:    models.SourceAnalytics,
			Language:  models.LanguageEnglish,
		}

		err := d.manager.Create(ctx, entry)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, db.ErrDuplicateSynonym), errors.Is(err, ErrSelfReference):
			result.Skipped++
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("%s -> %s: %v", s.Term, s.RelatedTerm, err))
		}
	}
	return result
}

func clampWeight(w float64) float64 {
	if w < 0.1 {
		return 0.1
	}
	if w > 1.0 {
		return 1.0
	}
	return w
}
