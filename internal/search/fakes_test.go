package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalogsearch/internal/db"
	"catalogsearch/internal/models"
)

// fakeStore is an in-memory DictionaryStore for unit tests. It enforces the
// same active (synonym, language) uniqueness as the real database.
type fakeStore struct {
	mu        sync.Mutex
	entries   map[uuid.UUID]models.SynonymEntry
	loadCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[uuid.UUID]models.SynonymEntry)}
}

func (f *fakeStore) GetActiveSynonyms(ctx context.Context) ([]models.SynonymEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++

	var active []models.SynonymEntry
	for _, e := range f.entries {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return active, nil
}

func (f *fakeStore) ListSynonyms(ctx context.Context, page, pageSize int, filter string) (*models.SynonymPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []models.SynonymEntry
	for _, e := range f.entries {
		entries = append(entries, e)
	}
	return &models.SynonymPage{
		Entries:    entries,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: int64(len(entries)),
	}, nil
}

func (f *fakeStore) GetSynonymByID(ctx context.Context, id uuid.UUID) (*models.SynonymEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	if !ok {
		return nil, db.ErrSynonymNotFound
	}
	return &e, nil
}

func (f *fakeStore) hasActiveConflict(entry *models.SynonymEntry) bool {
	for _, e := range f.entries {
		if e.ID != entry.ID && e.IsActive && e.Synonym == entry.Synonym && e.Language == entry.Language {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateSynonym(ctx context.Context, entry *models.SynonymEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry.IsActive && f.hasActiveConflict(entry) {
		return db.ErrDuplicateSynonym
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeStore) UpdateSynonym(ctx context.Context, entry *models.SynonymEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[entry.ID]; !ok {
		return db.ErrSynonymNotFound
	}
	if entry.IsActive && f.hasActiveConflict(entry) {
		return db.ErrDuplicateSynonym
	}
	entry.UpdatedAt = time.Now()
	f.entries[entry.ID] = *entry
	return nil
}

func (f *fakeStore) DeleteSynonym(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[id]; !ok {
		return db.ErrSynonymNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) SetSynonymActive(ctx context.Context, id uuid.UUID, active bool) (*models.SynonymEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	if !ok {
		return nil, db.ErrSynonymNotFound
	}
	e.IsActive = active
	if active && f.hasActiveConflict(&e) {
		return nil, db.ErrDuplicateSynonym
	}
	e.UpdatedAt = time.Now()
	f.entries[id] = e
	return &e, nil
}

func (f *fakeStore) IncrementSynonymUsage(ctx context.Context, terms []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, e := range f.entries {
		for _, term := range terms {
			if e.IsActive && e.Synonym == term {
				e.UsageCount++
				f.entries[id] = e
			}
		}
	}
	return nil
}

type recordedSearch struct {
	query       string
	resultCount int
}

// fakeAnalytics is an in-memory AnalyticsStore for unit tests. Individual
// query methods can be forced to fail to exercise partial-analysis paths.
type fakeAnalytics struct {
	mu       sync.Mutex
	recorded []recordedSearch
	events   []models.SearchEvent

	popular  []models.QueryAggregate
	zero     []models.QueryAggregate
	sessions []models.SessionQueries

	popularErr  error
	zeroErr     error
	sessionsErr error
}

func (f *fakeAnalytics) RecordSearch(ctx context.Context, query string, resultCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, recordedSearch{query: query, resultCount: resultCount})
	return nil
}

func (f *fakeAnalytics) InsertSearchEvent(ctx context.Context, sessionID, query string, resultCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, models.SearchEvent{
		SessionID:   sessionID,
		Query:       query,
		ResultCount: resultCount,
		SearchedAt:  time.Now(),
	})
	return nil
}

func (f *fakeAnalytics) PopularQueryTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return f.popular, nil
}

func (f *fakeAnalytics) ZeroResultTotals(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	if f.zeroErr != nil {
		return nil, f.zeroErr
	}
	return f.zero, nil
}

func (f *fakeAnalytics) SessionSequences(ctx context.Context, days int, gap time.Duration) ([]models.SessionQueries, error) {
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	return f.sessions, nil
}
