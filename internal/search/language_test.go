package search

import (
	"context"
	"testing"

	"catalogsearch/internal/models"
)

func newTestTranslator(t *testing.T) (*Translator, *Manager) {
	t.Helper()
	m := NewManager(newFakeStore())
	ctx := context.Background()

	glossary := []struct {
		canonical, synonym string
	}{
		{"sofa", "canapé"},
		{"chair", "chaise"},
		{"bed", "lit"},
		{"rug", "tapis"},
	}
	for _, g := range glossary {
		entry := &models.SynonymEntry{
			Canonical: g.canonical,
			Synonym:   g.synonym,
			Weight:    0.9,
			IsActive:  true,
			Source:    models.SourceTranslation,
			Language:  models.LanguageFrench,
		}
		if err := m.Create(ctx, entry); err != nil {
			t.Fatalf("Create(%s) error = %v", g.synonym, err)
		}
	}

	return NewTranslator(m), m
}

func TestDetectLanguage(t *testing.T) {
	tr, _ := newTestTranslator(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"english stop words", "a sofa for the living room", models.LanguageEnglish},
		{"french stop words", "une chaise pour le salon", models.LanguageFrench},
		{"french diacritics", "canapé", models.LanguageFrench},
		{"glossary hit", "chaise rouge", models.LanguageFrench},
		{"plain english", "leather sofa", models.LanguageEnglish},
		{"empty query", "", models.LanguageEnglish},
		{"tie defaults to english", "sofa", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.DetectLanguage(ctx, tt.query)
			if err != nil {
				t.Fatalf("DetectLanguage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectLanguage_Deterministic(t *testing.T) {
	tr, _ := newTestTranslator(t)
	ctx := context.Background()

	first, err := tr.DetectLanguage(ctx, "chaise longue confortable")
	if err != nil {
		t.Fatalf("DetectLanguage() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := tr.DetectLanguage(ctx, "chaise longue confortable")
		if err != nil {
			t.Fatalf("DetectLanguage() error = %v", err)
		}
		if got != first {
			t.Fatalf("DetectLanguage() changed between calls: %q then %q", first, got)
		}
	}
}

func TestTranslateQuery_Substitution(t *testing.T) {
	tr, _ := newTestTranslator(t)
	ctx := context.Background()

	result, err := tr.TranslateQuery(ctx, "chaise et tapis")
	if err != nil {
		t.Fatalf("TranslateQuery() error = %v", err)
	}

	if !result.HadTranslation {
		t.Error("HadTranslation = false, want true")
	}
	if result.TranslatedQuery != "chair et rug" {
		t.Errorf("TranslatedQuery = %q, want %q", result.TranslatedQuery, "chair et rug")
	}
	if len(result.Matches) != 2 {
		t.Fatalf("Matches = %v, want 2 entries", result.Matches)
	}
	if result.Matches[0].From != "chaise" || result.Matches[0].To != "chair" {
		t.Errorf("first match = %+v, want chaise -> chair", result.Matches[0])
	}
	if result.DetectedLanguage != models.LanguageFrench {
		t.Errorf("DetectedLanguage = %q, want fr", result.DetectedLanguage)
	}
}

func TestTranslateQuery_NoRecognizedTerms(t *testing.T) {
	tr, _ := newTestTranslator(t)
	ctx := context.Background()

	result, err := tr.TranslateQuery(ctx, "Leather Sofa")
	if err != nil {
		t.Fatalf("TranslateQuery() error = %v", err)
	}

	if result.HadTranslation {
		t.Error("HadTranslation = true, want false")
	}
	if result.TranslatedQuery != "Leather Sofa" {
		t.Errorf("TranslatedQuery = %q, want the original query unchanged", result.TranslatedQuery)
	}
	if len(result.Matches) != 0 {
		t.Errorf("Matches = %v, want empty", result.Matches)
	}
}

func TestTranslateQuery_ReflectsDictionaryChanges(t *testing.T) {
	tr, m := newTestTranslator(t)
	ctx := context.Background()

	entry := &models.SynonymEntry{
		Canonical: "mirror",
		Synonym:   "miroir",
		Weight:    0.9,
		IsActive:  true,
		Source:    models.SourceTranslation,
		Language:  models.LanguageFrench,
	}
	if err := m.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	result, err := tr.TranslateQuery(ctx, "miroir")
	if err != nil {
		t.Fatalf("TranslateQuery() error = %v", err)
	}
	if result.TranslatedQuery != "mirror" {
		t.Errorf("TranslatedQuery = %q, want mirror (new glossary entry not picked up)", result.TranslatedQuery)
	}
}
