package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"catalogsearch/internal/models"
	"catalogsearch/internal/validation"
)

// Validation error sentinels. All are caught before any store write.
var (
	ErrInvalidTerm     = errors.New("terms must be between 2 and 100 characters")
	ErrSelfReference   = errors.New("canonical and synonym must differ")
	ErrInvalidWeight   = errors.New("weight must be between 0.1 and 1.0")
	ErrInvalidSource   = errors.New("unknown synonym source")
	ErrInvalidLanguage = errors.New("unsupported language")
)

// lookupCache is the memoized forward/reverse index over active entries.
// forward maps synonym -> entries, reverse maps canonical -> entries.
// A synonym can carry at most one active entry per language.
type lookupCache struct {
	forward    map[string][]models.SynonymEntry
	reverse    map[string][]models.SynonymEntry
	vocabulary []string
}

// Manager owns the synonym dictionary and its lookup cache. Every mutation
// invalidates the cache synchronously before reporting success; the next
// read rebuilds it lazily.
type Manager struct {
	store DictionaryStore

	mu    sync.Mutex
	cache *lookupCache
}

// NewManager creates a Manager over the given store.
func NewManager(store DictionaryStore) *Manager {
	return &Manager{store: store}
}

// Invalidate drops the lookup cache. The next read rebuilds it.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cache = nil
	m.mu.Unlock()
}

// loadCache returns the current cache, rebuilding it from the store if a
// mutation invalidated it.
func (m *Manager) loadCache(ctx context.Context) (*lookupCache, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cache != nil {
		return m.cache, nil
	}

	entries, err := m.store.GetActiveSynonyms(ctx)
	if err != nil {
		return nil, err
	}

	cache := &lookupCache{
		forward: make(map[string][]models.SynonymEntry),
		reverse: make(map[string][]models.SynonymEntry),
	}
	vocab := make(map[string]struct{})
	for _, e := range entries {
		cache.forward[e.Synonym] = append(cache.forward[e.Synonym], e)
		cache.reverse[e.Canonical] = append(cache.reverse[e.Canonical], e)
		vocab[e.Synonym] = struct{}{}
		vocab[e.Canonical] = struct{}{}
	}
	cache.vocabulary = make([]string, 0, len(vocab))
	for term := range vocab {
		cache.vocabulary = append(cache.vocabulary, term)
	}
	sort.Strings(cache.vocabulary)

	m.cache = cache
	return cache, nil
}

// Vocabulary returns the union of all active canonical and synonym terms,
// the candidate universe for fuzzy and phonetic matching.
func (m *Manager) Vocabulary(ctx context.Context) ([]string, error) {
	cache, err := m.loadCache(ctx)
	if err != nil {
		return nil, err
	}
	return cache.vocabulary, nil
}

// Covered reports whether a term participates in any active mapping.
func (m *Manager) Covered(ctx context.Context, term string) (bool, error) {
	cache, err := m.loadCache(ctx)
	if err != nil {
		return false, err
	}
	term = validation.NormalizeTerm(term)
	_, fwd := cache.forward[term]
	_, rev := cache.reverse[term]
	return fwd || rev, nil
}

// glossaryLookup finds the active entry mapping a foreign-language term to
// its English canonical, if one exists.
func (m *Manager) glossaryLookup(ctx context.Context, term, language string) (*models.SynonymEntry, error) {
	cache, err := m.loadCache(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range cache.forward[term] {
		if e.Language == language {
			return &e, nil
		}
	}
	return nil, nil
}

// Expand returns the ordered, de-duplicated expansion of a term for
// downstream retrieval. The term itself is always included with weight 1.0;
// reachable canonicals and synonyms carry their entry weight, keeping the
// highest weight when a term is reachable through multiple entries.
func (m *Manager) Expand(ctx context.Context, term string) ([]models.Expansion, error) {
	term = validation.NormalizeTerm(term)
	if term == "" {
		return nil, nil
	}

	cache, err := m.loadCache(ctx)
	if err != nil {
		return nil, err
	}

	weights := map[string]float64{term: 1.0}
	order := []string{term}
	var used []string

	add := func(t string, w float64) {
		if existing, ok := weights[t]; ok {
			if w > existing {
				weights[t] = w
			}
			return
		}
		weights[t] = w
		order = append(order, t)
	}

	// term used as a synonym: pull in its canonicals
	for _, e := range cache.forward[term] {
		add(e.Canonical, e.Weight)
		used = append(used, e.Synonym)
	}
	// term used as a canonical: pull in its synonyms
	for _, e := range cache.reverse[term] {
		add(e.Synonym, e.Weight)
		used = append(used, e.Synonym)
	}

	expansions := make([]models.Expansion, 0, len(order))
	for _, t := range order {
		expansions = append(expansions, models.Expansion{Term: t, Weight: weights[t]})
	}
	sort.SliceStable(expansions, func(i, j int) bool {
		return expansions[i].Weight > expansions[j].Weight
	})

	if len(used) > 0 {
		go m.recordUsage(used)
	}

	return expansions, nil
}

// recordUsage bumps usage counters off the request path. Failures are
// logged, never surfaced; usage counts are an approximation.
func (m *Manager) recordUsage(terms []string) {
	if err := m.store.IncrementSynonymUsage(context.Background(), terms); err != nil {
		slog.Error("failed to record synonym usage", "error", err)
	}
}

// validateEntry normalizes and checks an entry's fields before any write.
func validateEntry(entry *models.SynonymEntry) error {
	entry.Canonical = validation.NormalizeTerm(entry.Canonical)
	entry.Synonym = validation.NormalizeTerm(entry.Synonym)

	if !validation.ValidateTerm(entry.Canonical) || !validation.ValidateTerm(entry.Synonym) {
		return ErrInvalidTerm
	}
	if entry.Canonical == entry.Synonym {
		return ErrSelfReference
	}
	if !validation.ValidateWeight(entry.Weight) {
		return ErrInvalidWeight
	}
	if entry.Source == "" {
		entry.Source = models.SourceAdmin
	}
	if !models.ValidSource(entry.Source) {
		return ErrInvalidSource
	}
	if entry.Language == "" {
		entry.Language = models.LanguageEnglish
	}
	if !models.ValidLanguage(entry.Language) {
		return ErrInvalidLanguage
	}
	return nil
}

// List returns a page of entries, most used first.
func (m *Manager) List(ctx context.Context, page, pageSize int, filter string) (*models.SynonymPage, error) {
	return m.store.ListSynonyms(ctx, page, pageSize, filter)
}

// Get fetches a single entry by ID.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*models.SynonymEntry, error) {
	return m.store.GetSynonymByID(ctx, id)
}

// Create validates and inserts a new entry, then invalidates the cache.
func (m *Manager) Create(ctx context.Context, entry *models.SynonymEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if err := m.store.CreateSynonym(ctx, entry); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// Update validates and rewrites an existing entry, then invalidates the cache.
func (m *Manager) Update(ctx context.Context, entry *models.SynonymEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if err := m.store.UpdateSynonym(ctx, entry); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// Delete removes an entry permanently, then invalidates the cache.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.DeleteSynonym(ctx, id); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// Toggle flips an entry's active flag, then invalidates the cache.
func (m *Manager) Toggle(ctx context.Context, id uuid.UUID) (*models.SynonymEntry, error) {
	entry, err := m.store.GetSynonymByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := m.store.SetSynonymActive(ctx, id, !entry.IsActive)
	if err != nil {
		return nil, err
	}
	m.Invalidate()
	return updated, nil
}
