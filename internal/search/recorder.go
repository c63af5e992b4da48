package search

import (
	"context"

	"catalogsearch/internal/models"
	"catalogsearch/internal/validation"
)

// Recorder logs search outcomes into daily analytics buckets and the raw
// event stream used for session mining.
type Recorder struct {
	store AnalyticsStore
}

// NewRecorder creates a Recorder over the given analytics store.
func NewRecorder(store AnalyticsStore) *Recorder {
	return &Recorder{store: store}
}

// RecordSearch normalizes the query and accumulates today's counters:
// search count always, zero-result count when resultCount is zero, and the
// running mean of result counts. A non-empty sessionID also appends a raw
// event for refinement-pattern mining.
func (r *Recorder) RecordSearch(ctx context.Context, query string, resultCount int, sessionID string) error {
	normalized := validation.NormalizeQuery(query)
	if normalized == "" {
		return nil
	}
	if resultCount < 0 {
		resultCount = 0
	}

	if err := r.store.RecordSearch(ctx, normalized, resultCount); err != nil {
		return err
	}

	if sessionID != "" {
		return r.store.InsertSearchEvent(ctx, sessionID, normalized, resultCount)
	}
	return nil
}

// PopularSearches returns the most searched queries over the trailing
// window of days, inclusive of today.
func (r *Recorder) PopularSearches(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	return r.store.PopularQueryTotals(ctx, clampDays(days), clampLimit(limit))
}

// ZeroResultSearches returns queries with zero-result occurrences over the
// trailing window, ordered by zero-result count descending.
func (r *Recorder) ZeroResultSearches(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	return r.store.ZeroResultTotals(ctx, clampDays(days), clampLimit(limit))
}

func clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > 365 {
		return 365
	}
	return days
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 10
	}
	if limit > 500 {
		return 500
	}
	return limit
}
