// Package search implements the relevance core of the catalog: the synonym
// dictionary with its in-process lookup cache, fuzzy and phonetic matching,
// query language support, search analytics, and synonym auto-discovery.
package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"catalogsearch/internal/models"
)

// DictionaryStore is the persistence contract for synonym entries.
// *db.DB satisfies it.
type DictionaryStore interface {
	GetActiveSynonyms(ctx context.Context) ([]models.SynonymEntry, error)
	ListSynonyms(ctx context.Context, page, pageSize int, filter string) (*models.SynonymPage, error)
	GetSynonymByID(ctx context.Context, id uuid.UUID) (*models.SynonymEntry, error)
	CreateSynonym(ctx context.Context, entry *models.SynonymEntry) error
	UpdateSynonym(ctx context.Context, entry *models.SynonymEntry) error
	DeleteSynonym(ctx context.Context, id uuid.UUID) error
	SetSynonymActive(ctx context.Context, id uuid.UUID, active bool) (*models.SynonymEntry, error)
	IncrementSynonymUsage(ctx context.Context, terms []string) error
}

// AnalyticsStore is the persistence contract for search analytics.
// *db.DB satisfies it.
type AnalyticsStore interface {
	RecordSearch(ctx context.Context, query string, resultCount int) error
	InsertSearchEvent(ctx context.Context, sessionID, query string, resultCount int) error
	PopularQueryTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error)
	ZeroResultTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error)
	SessionSequences(ctx context.Context, days int, gap time.Duration) ([]models.SessionQueries, error)
}
