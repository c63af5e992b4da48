package search

import (
	"context"
	"strings"

	"catalogsearch/internal/models"
	"catalogsearch/internal/validation"
)

// Common stop words used as language signals.
var englishStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"for": true, "with": true, "of": true, "in": true, "on": true,
	"to": true, "is": true, "are": true, "my": true, "this": true,
	"that": true, "some": true, "small": true, "large": true, "cheap": true,
}

var frenchStopWords = map[string]bool{
	"le": true, "la": true, "les": true, "un": true, "une": true,
	"des": true, "du": true, "de": true, "et": true, "ou": true,
	"pour": true, "avec": true, "en": true, "sur": true, "dans": true,
	"au": true, "aux": true, "ce": true, "cette": true, "mon": true,
	"ma": true, "mes": true, "petit": true, "grand": true, "pas": true,
}

// frenchDiacritics are characters that strongly suggest French input.
const frenchDiacritics = "àâäéèêëîïôöùûüçœ"

// TranslationMatch records one substituted term.
type TranslationMatch struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// TranslationResult is the outcome of translating a query toward English.
type TranslationResult struct {
	TranslatedQuery  string             `json:"translated_query"`
	Matches          []TranslationMatch `json:"matches"`
	HadTranslation   bool               `json:"had_translation"`
	DetectedLanguage string             `json:"detected_language"`
}

// Translator detects query language and substitutes recognized French terms
// with their English canonicals. The French entries of the dictionary act as
// the bilingual glossary.
type Translator struct {
	manager *Manager
}

// NewTranslator creates a Translator backed by the dictionary manager.
func NewTranslator(manager *Manager) *Translator {
	return &Translator{manager: manager}
}

// DetectLanguage classifies a query as English or French using stop words,
// diacritics and glossary hits. Classification is deterministic: identical
// input against identical dictionary state yields identical output, and
// English wins ties.
func (t *Translator) DetectLanguage(ctx context.Context, query string) (string, error) {
	normalized := validation.NormalizeQuery(query)
	if normalized == "" {
		return models.LanguageEnglish, nil
	}

	var enScore, frScore int

	if strings.ContainsAny(normalized, frenchDiacritics) {
		frScore += 2
	}

	for _, word := range strings.Fields(normalized) {
		if englishStopWords[word] {
			enScore++
		}
		if frenchStopWords[word] {
			frScore++
		}

		entry, err := t.manager.glossaryLookup(ctx, word, models.LanguageFrench)
		if err != nil {
			return "", err
		}
		if entry != nil {
			frScore++
		}
	}

	if frScore > enScore {
		return models.LanguageFrench, nil
	}
	return models.LanguageEnglish, nil
}

// TranslateQuery substitutes recognized French terms with their English
// canonicals. With no recognized terms the original query is returned
// unchanged with an empty match list.
func (t *Translator) TranslateQuery(ctx context.Context, query string) (*TranslationResult, error) {
	detected, err := t.DetectLanguage(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &TranslationResult{
		TranslatedQuery:  query,
		Matches:          []TranslationMatch{},
		DetectedLanguage: detected,
	}

	normalized := validation.NormalizeQuery(query)
	if normalized == "" {
		return result, nil
	}

	words := strings.Fields(normalized)
	translated := make([]string, len(words))
	for i, word := range words {
		translated[i] = word

		entry, err := t.manager.glossaryLookup(ctx, word, models.LanguageFrench)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			translated[i] = entry.Canonical
			result.Matches = append(result.Matches, TranslationMatch{
				From:   word,
				To:     entry.Canonical,
				Weight: entry.Weight,
			})
		}
	}

	if len(result.Matches) > 0 {
		result.TranslatedQuery = strings.Join(translated, " ")
		result.HadTranslation = true
	}

	return result, nil
}
