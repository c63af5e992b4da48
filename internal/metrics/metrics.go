package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"catalogsearch/internal/db"
)

// collectorWindowDays bounds how far back the collector reads on scrape.
const collectorWindowDays = 7

var (
	searchCountDesc = prometheus.NewDesc(
		"catalogsearch_searches_total",
		"Total recorded searches by normalized query over the trailing week",
		[]string{"query"},
		nil,
	)
	zeroResultDesc = prometheus.NewDesc(
		"catalogsearch_zero_result_searches_total",
		"Total zero-result searches by normalized query over the trailing week",
		[]string{"query"},
		nil,
	)
)

// AnalyticsCollector is a custom Prometheus collector that reads search
// analytics from the database on each scrape.
type AnalyticsCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *AnalyticsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- searchCountDesc
	ch <- zeroResultDesc
}

// Collect queries the database for recent analytics and emits counters.
func (c *AnalyticsCollector) Collect(ch chan<- prometheus.Metric) {
	records, err := c.db.DailyAnalytics(context.Background(), collectorWindowDays)
	if err != nil {
		slog.Error("failed to collect search analytics metrics", "error", err)
		return
	}

	searches := make(map[string]int64)
	zero := make(map[string]int64)
	for _, r := range records {
		searches[r.Query] += r.SearchCount
		zero[r.Query] += r.ZeroResultCount
	}

	for query, count := range searches {
		ch <- prometheus.MustNewConstMetric(searchCountDesc, prometheus.CounterValue, float64(count), query)
	}
	for query, count := range zero {
		if count > 0 {
			ch <- prometheus.MustNewConstMetric(zeroResultDesc, prometheus.CounterValue, float64(count), query)
		}
	}
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&AnalyticsCollector{db: database})
	})
}
