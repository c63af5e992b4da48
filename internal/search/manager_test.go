package search

import (
	"context"
	"errors"
	"testing"

	"catalogsearch/internal/db"
	"catalogsearch/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewManager(store), store
}

func mustCreate(t *testing.T, m *Manager, canonical, synonym string, weight float64) *models.SynonymEntry {
	t.Helper()
	entry := &models.SynonymEntry{
		Canonical: canonical,
		Synonym:   synonym,
		Weight:    weight,
		IsActive:  true,
	}
	if err := m.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create(%s -> %s) error = %v", synonym, canonical, err)
	}
	return entry
}

func findExpansion(expansions []models.Expansion, term string) (models.Expansion, bool) {
	for _, e := range expansions {
		if e.Term == term {
			return e, true
		}
	}
	return models.Expansion{}, false
}

func TestExpand_SelfMatch(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	expansions, err := m.Expand(ctx, "sofa")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(expansions) != 1 {
		t.Fatalf("Expand() returned %d expansions, want 1", len(expansions))
	}
	if expansions[0].Term != "sofa" || expansions[0].Weight != 1.0 {
		t.Errorf("Expand() = %+v, want {sofa 1.0}", expansions[0])
	}
}

func TestExpand_SynonymToCanonical(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "couch", 0.9)

	expansions, err := m.Expand(ctx, "couch")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	e, ok := findExpansion(expansions, "sofa")
	if !ok {
		t.Fatalf("Expand(couch) missing sofa: %v", expansions)
	}
	if e.Weight != 0.9 {
		t.Errorf("sofa weight = %v, want 0.9", e.Weight)
	}
	if expansions[0].Term != "couch" || expansions[0].Weight != 1.0 {
		t.Errorf("self match not first with weight 1.0: %v", expansions)
	}
}

func TestExpand_CanonicalToSynonyms(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "couch", 0.9)
	mustCreate(t, m, "sofa", "settee", 0.7)

	expansions, err := m.Expand(ctx, "sofa")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(expansions) != 3 {
		t.Fatalf("Expand(sofa) returned %d expansions, want 3: %v", len(expansions), expansions)
	}
	if _, ok := findExpansion(expansions, "couch"); !ok {
		t.Error("Expand(sofa) missing couch")
	}
	if _, ok := findExpansion(expansions, "settee"); !ok {
		t.Error("Expand(sofa) missing settee")
	}
}

func TestExpand_HighestWeightWins(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	// "divan" reaches "sofa" as a synonym; "sofa" also reaches "divan" is not
	// the case here. Instead map the same target through two entries with
	// different weights via different languages.
	entryLow := &models.SynonymEntry{
		Canonical: "sofa", Synonym: "divan", Weight: 0.4, IsActive: true,
		Language: models.LanguageEnglish,
	}
	if err := m.Create(ctx, entryLow); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	entryHigh := &models.SynonymEntry{
		Canonical: "sofa", Synonym: "divan", Weight: 0.8, IsActive: true,
		Language: models.LanguageFrench,
	}
	if err := m.Create(ctx, entryHigh); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	expansions, err := m.Expand(ctx, "divan")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	e, ok := findExpansion(expansions, "sofa")
	if !ok {
		t.Fatalf("Expand(divan) missing sofa: %v", expansions)
	}
	if e.Weight != 0.8 {
		t.Errorf("sofa weight = %v, want the higher 0.8", e.Weight)
	}
}

func TestExpand_WeightOrdering(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "settee", 0.7)
	mustCreate(t, m, "sofa", "couch", 0.9)

	expansions, err := m.Expand(ctx, "sofa")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	for i := 1; i < len(expansions); i++ {
		if expansions[i].Weight > expansions[i-1].Weight {
			t.Errorf("expansions not ordered by weight: %v", expansions)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		entry   models.SynonymEntry
		wantErr error
	}{
		{"term too short", models.SynonymEntry{Canonical: "a", Synonym: "couch", Weight: 0.5}, ErrInvalidTerm},
		{"self reference", models.SynonymEntry{Canonical: "sofa", Synonym: "sofa", Weight: 0.5}, ErrSelfReference},
		{"self reference after normalization", models.SynonymEntry{Canonical: "Sofa ", Synonym: "sofa", Weight: 0.5}, ErrSelfReference},
		{"weight too low", models.SynonymEntry{Canonical: "sofa", Synonym: "couch", Weight: 0.05}, ErrInvalidWeight},
		{"weight too high", models.SynonymEntry{Canonical: "sofa", Synonym: "couch", Weight: 1.5}, ErrInvalidWeight},
		{"bad source", models.SynonymEntry{Canonical: "sofa", Synonym: "couch", Weight: 0.5, Source: "scraper"}, ErrInvalidSource},
		{"bad language", models.SynonymEntry{Canonical: "sofa", Synonym: "couch", Weight: 0.5, Language: "de"}, ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			err := m.Create(ctx, &entry)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreate_Duplicate(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "couch", 0.9)

	dup := &models.SynonymEntry{Canonical: "settee", Synonym: "couch", Weight: 0.5, IsActive: true}
	if err := m.Create(ctx, dup); !errors.Is(err, db.ErrDuplicateSynonym) {
		t.Errorf("Create() error = %v, want ErrDuplicateSynonym", err)
	}
}

func TestMutationsInvalidateCache(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	entry := mustCreate(t, m, "sofa", "couch", 0.9)

	// Warm the cache and verify the mapping is visible.
	expansions, err := m.Expand(ctx, "couch")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if _, ok := findExpansion(expansions, "sofa"); !ok {
		t.Fatalf("Expand(couch) missing sofa before toggle")
	}
	loads := store.loadCalls

	// Toggling inactive must drop the mapping without a restart.
	if _, err := m.Toggle(ctx, entry.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	expansions, err = m.Expand(ctx, "couch")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if _, ok := findExpansion(expansions, "sofa"); ok {
		t.Error("Expand(couch) still includes sofa after deactivation")
	}
	if store.loadCalls <= loads {
		t.Error("cache was not rebuilt after toggle")
	}

	// Toggling back restores it.
	if _, err := m.Toggle(ctx, entry.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	expansions, _ = m.Expand(ctx, "couch")
	if _, ok := findExpansion(expansions, "sofa"); !ok {
		t.Error("Expand(couch) missing sofa after reactivation")
	}

	// Deleting removes it for good.
	if err := m.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	expansions, _ = m.Expand(ctx, "couch")
	if _, ok := findExpansion(expansions, "sofa"); ok {
		t.Error("Expand(couch) still includes sofa after delete")
	}
	if _, err := m.Get(ctx, entry.ID); !errors.Is(err, db.ErrSynonymNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrSynonymNotFound", err)
	}
}

func TestCachedReadsDoNotReload(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "couch", 0.9)

	if _, err := m.Expand(ctx, "couch"); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	loads := store.loadCalls

	for i := 0; i < 5; i++ {
		if _, err := m.Expand(ctx, "couch"); err != nil {
			t.Fatalf("Expand() error = %v", err)
		}
	}
	if store.loadCalls != loads {
		t.Errorf("loadCalls = %d, want %d (reads must hit the cache)", store.loadCalls, loads)
	}
}

func TestVocabulary(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	mustCreate(t, m, "sofa", "couch", 0.9)
	mustCreate(t, m, "table", "desk", 0.6)

	vocab, err := m.Vocabulary(ctx)
	if err != nil {
		t.Fatalf("Vocabulary() error = %v", err)
	}
	want := []string{"couch", "desk", "sofa", "table"}
	if len(vocab) != len(want) {
		t.Fatalf("Vocabulary() = %v, want %v", vocab, want)
	}
	for i := range want {
		if vocab[i] != want[i] {
			t.Errorf("Vocabulary()[%d] = %q, want %q", i, vocab[i], want[i])
		}
	}
}
