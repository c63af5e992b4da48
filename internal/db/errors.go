package db

import "errors"

// Domain-level database error sentinels.
var (
	// Synonym errors
	ErrSynonymNotFound  = errors.New("synonym not found")
	ErrDuplicateSynonym = errors.New("an active synonym already exists for this term and language")
)
