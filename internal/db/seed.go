package db

import (
	"context"

	"catalogsearch/internal/models"
)

// SeedStaticSynonyms inserts the built-in dictionary: common English
// furniture synonyms plus the French->English glossary used by the query
// translator. Existing active mappings are left untouched.
func (d *DB) SeedStaticSynonyms(ctx context.Context) error {
	entries := []models.SynonymEntry{
		// English synonyms
		{Canonical: "sofa", Synonym: "couch", Weight: 0.9, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "sofa", Synonym: "settee", Weight: 0.7, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "sofa", Synonym: "loveseat", Weight: 0.6, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "wardrobe", Synonym: "armoire", Weight: 0.8, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "wardrobe", Synonym: "closet", Weight: 0.6, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "desk", Synonym: "bureau", Weight: 0.7, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "bookcase", Synonym: "bookshelf", Weight: 0.9, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "bookcase", Synonym: "shelving", Weight: 0.6, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "dresser", Synonym: "chest of drawers", Weight: 0.8, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "ottoman", Synonym: "footstool", Weight: 0.8, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "ottoman", Synonym: "pouf", Weight: 0.6, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "armchair", Synonym: "recliner", Weight: 0.6, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "nightstand", Synonym: "bedside table", Weight: 0.9, Source: models.SourceStatic, Language: models.LanguageEnglish},
		{Canonical: "lamp", Synonym: "light", Weight: 0.5, Source: models.SourceStatic, Language: models.LanguageEnglish},

		// French glossary
		{Canonical: "sofa", Synonym: "canapé", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "armchair", Synonym: "fauteuil", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "table", Synonym: "tableau", Weight: 0.5, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "chair", Synonym: "chaise", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "wardrobe", Synonym: "penderie", Weight: 0.8, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "bed", Synonym: "lit", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "desk", Synonym: "pupitre", Weight: 0.7, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "bookcase", Synonym: "bibliothèque", Weight: 0.8, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "rug", Synonym: "tapis", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "mirror", Synonym: "miroir", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "drawer", Synonym: "tiroir", Weight: 0.8, Source: models.SourceTranslation, Language: models.LanguageFrench},
		{Canonical: "cushion", Synonym: "coussin", Weight: 0.9, Source: models.SourceTranslation, Language: models.LanguageFrench},
	}

	return d.SeedSynonyms(ctx, entries)
}
