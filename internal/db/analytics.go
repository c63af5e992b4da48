package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"catalogsearch/internal/models"
)

// RecordSearch upserts today's analytics row for a normalized query.
// Counters accumulate and avg_results is maintained as a running mean.
func (d *DB) RecordSearch(ctx context.Context, query string, resultCount int) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO search_analytics (search_date, query, search_count, zero_result_count, avg_results)
		VALUES (CURRENT_DATE, $1, 1, CASE WHEN $2 = 0 THEN 1 ELSE 0 END, $2)
		ON CONFLICT (search_date, query) DO UPDATE
		SET search_count = search_analytics.search_count + 1,
			zero_result_count = search_analytics.zero_result_count
				+ CASE WHEN $2 = 0 THEN 1 ELSE 0 END,
			avg_results = (search_analytics.avg_results * search_analytics.search_count + $2)
				/ (search_analytics.search_count + 1)
	`, query, resultCount)
	return err
}

// InsertSearchEvent appends a raw search event for session-pattern mining.
func (d *DB) InsertSearchEvent(ctx context.Context, sessionID, query string, resultCount int) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO search_events (session_id, query, result_count)
		VALUES ($1, $2, $3)
	`, sessionID, query, resultCount)
	return err
}

// PopularQueryTotals sums search counts per query over the trailing window
// (inclusive of today), most searched first.
func (d *DB) PopularQueryTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT query,
			SUM(search_count),
			SUM(zero_result_count),
			SUM(avg_results * search_count) / NULLIF(SUM(search_count), 0)
		FROM search_analytics
		WHERE search_date >= CURRENT_DATE - ($1::int - 1)
		GROUP BY query
		ORDER BY SUM(search_count) DESC, query
		LIMIT $2
	`, days, limit)
	if err != nil {
		return nil, err
	}
	return scanAggregates(rows)
}

// ZeroResultTotals returns queries with zero-result occurrences in the
// trailing window, worst first.
func (d *DB) ZeroResultTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT query,
			SUM(search_count),
			SUM(zero_result_count),
			SUM(avg_results * search_count) / NULLIF(SUM(search_count), 0)
		FROM search_analytics
		WHERE search_date >= CURRENT_DATE - ($1::int - 1)
		GROUP BY query
		HAVING SUM(zero_result_count) > 0
		ORDER BY SUM(zero_result_count) DESC, query
		LIMIT $2
	`, days, limit)
	if err != nil {
		return nil, err
	}
	return scanAggregates(rows)
}

// scanAggregates scans aggregate rows, tolerating a NULL average on
// windows with no recorded searches.
func scanAggregates(rows pgx.Rows) ([]models.QueryAggregate, error) {
	defer rows.Close()

	var aggs []models.QueryAggregate
	for rows.Next() {
		var a models.QueryAggregate
		var avg *float64
		if err := rows.Scan(&a.Query, &a.TotalSearches, &a.ZeroResultCount, &avg); err != nil {
			return nil, err
		}
		if avg != nil {
			a.AvgResults = *avg
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// SessionSequences returns the ordered queries of each session in the
// trailing window. Consecutive duplicate queries are collapsed and events
// separated by more than gap are split into separate sessions.
func (d *DB) SessionSequences(ctx context.Context, days int, gap time.Duration) ([]models.SessionQueries, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT session_id, query, searched_at
		FROM search_events
		WHERE session_id <> ''
			AND searched_at >= NOW() - ($1::int * INTERVAL '1 day')
		ORDER BY session_id, searched_at
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.SessionQueries
	var current models.SessionQueries
	var lastAt time.Time

	flush := func() {
		if len(current.Queries) > 0 {
			sessions = append(sessions, current)
		}
		current = models.SessionQueries{}
	}

	for rows.Next() {
		var sid, query string
		var at time.Time
		if err := rows.Scan(&sid, &query, &at); err != nil {
			return nil, err
		}

		if sid != current.SessionID || (gap > 0 && at.Sub(lastAt) > gap) {
			flush()
			current.SessionID = sid
		}
		lastAt = at

		if n := len(current.Queries); n > 0 && current.Queries[n-1] == query {
			continue
		}
		current.Queries = append(current.Queries, query)
	}
	flush()

	return sessions, rows.Err()
}

// DailyAnalytics returns raw analytics rows for the trailing window, newest
// first. Used by the metrics collector.
func (d *DB) DailyAnalytics(ctx context.Context, days int) ([]models.SearchAnalyticsRecord, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT search_date, query, search_count, zero_result_count, avg_results
		FROM search_analytics
		WHERE search_date >= CURRENT_DATE - ($1::int - 1)
		ORDER BY search_date DESC, search_count DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SearchAnalyticsRecord
	for rows.Next() {
		var r models.SearchAnalyticsRecord
		if err := rows.Scan(&r.SearchDate, &r.Query, &r.SearchCount, &r.ZeroResultCount, &r.AvgResults); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
