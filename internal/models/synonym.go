package models

import (
	"time"

	"github.com/google/uuid"
)

// Synonym source constants
const (
	SourceStatic      = "static"
	SourceAdmin       = "admin"
	SourceAnalytics   = "analytics"
	SourceTranslation = "translation"
)

// Language constants
const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
)

// SynonymEntry maps an alternate search term to a canonical catalog term.
// At most one active entry may exist per (synonym, language) pair; the
// database enforces this with a partial unique index.
type SynonymEntry struct {
	ID           uuid.UUID `json:"id"`
	Canonical    string    `json:"canonical"`
	Synonym      string    `json:"synonym"`
	Weight       float64   `json:"weight"`
	IsActive     bool      `json:"is_active"`
	Source       string    `json:"source"`
	Language     string    `json:"language"`
	CategoryHint *string   `json:"category_hint"`
	UsageCount   int64     `json:"usage_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidSource reports whether s is a known synonym source.
func ValidSource(s string) bool {
	switch s {
	case SourceStatic, SourceAdmin, SourceAnalytics, SourceTranslation:
		return true
	}
	return false
}

// ValidLanguage reports whether l is a supported language code.
func ValidLanguage(l string) bool {
	return l == LanguageEnglish || l == LanguageFrench
}

// Expansion is a single term produced by query expansion, weighted for
// downstream retrieval. The seed term itself expands with weight 1.0.
type Expansion struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// SynonymPage is a paginated slice of synonym entries.
type SynonymPage struct {
	Entries    []SynonymEntry `json:"entries"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
}
