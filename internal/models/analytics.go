package models

import "time"

// SearchAnalyticsRecord is one daily bucket of search activity for a
// normalized query. Counters accumulate across recordings; avg_results is
// maintained as a running mean, never overwritten.
type SearchAnalyticsRecord struct {
	SearchDate      time.Time `json:"search_date"`
	Query           string    `json:"query"`
	SearchCount     int64     `json:"search_count"`
	ZeroResultCount int64     `json:"zero_result_count"`
	AvgResults      float64   `json:"avg_results"`
}

// QueryAggregate sums a query's activity over a trailing day window.
type QueryAggregate struct {
	Query           string  `json:"query"`
	TotalSearches   int64   `json:"total_searches"`
	ZeroResultCount int64   `json:"zero_result_count"`
	AvgResults      float64 `json:"avg_results"`
}

// SearchEvent is one raw search occurrence, tagged with the caller's
// session identifier for refinement-pattern mining.
type SearchEvent struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	SearchedAt  time.Time `json:"searched_at"`
}

// SessionQueries is the ordered list of queries issued within one session.
type SessionQueries struct {
	SessionID string
	Queries   []string
}
