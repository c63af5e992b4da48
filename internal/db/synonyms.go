package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"catalogsearch/internal/models"
)

// synonymColumns is the standard column list for synonym queries.
const synonymColumns = `id, canonical, synonym, weight, is_active, source, language,
	category_hint, usage_count, created_at, updated_at`

// scanSynonym scans a row into a SynonymEntry struct.
func scanSynonym(row pgx.Row) (*models.SynonymEntry, error) {
	var entry models.SynonymEntry
	err := row.Scan(
		&entry.ID,
		&entry.Canonical,
		&entry.Synonym,
		&entry.Weight,
		&entry.IsActive,
		&entry.Source,
		&entry.Language,
		&entry.CategoryHint,
		&entry.UsageCount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSynonymNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// scanSynonyms scans multiple rows into a slice of SynonymEntry.
func scanSynonyms(rows pgx.Rows) ([]models.SynonymEntry, error) {
	defer rows.Close()

	var entries []models.SynonymEntry
	for rows.Next() {
		var entry models.SynonymEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Canonical,
			&entry.Synonym,
			&entry.Weight,
			&entry.IsActive,
			&entry.Source,
			&entry.Language,
			&entry.CategoryHint,
			&entry.UsageCount,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetActiveSynonyms returns every active dictionary entry, the working set
// for the in-process lookup cache.
func (d *DB) GetActiveSynonyms(ctx context.Context) ([]models.SynonymEntry, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+synonymColumns+`
		FROM synonyms
		WHERE is_active
		ORDER BY canonical, synonym
	`)
	if err != nil {
		return nil, err
	}
	return scanSynonyms(rows)
}

// ListSynonyms returns a page of entries, optionally filtered by a substring
// match on either side of the mapping.
func (d *DB) ListSynonyms(ctx context.Context, page, pageSize int, filter string) (*models.SynonymPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	where := ""
	args := []any{}
	if filter != "" {
		where = `WHERE canonical ILIKE $1 OR synonym ILIKE $1`
		args = append(args, "%"+filter+"%")
	}

	var total int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM synonyms `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM synonyms
		%s
		ORDER BY usage_count DESC, canonical, synonym
		LIMIT $%d OFFSET $%d
	`, synonymColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	entries, err := scanSynonyms(rows)
	if err != nil {
		return nil, err
	}

	return &models.SynonymPage{
		Entries:    entries,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}, nil
}

// GetSynonymByID fetches a single entry by ID.
func (d *DB) GetSynonymByID(ctx context.Context, id uuid.UUID) (*models.SynonymEntry, error) {
	row := d.Pool.QueryRow(ctx, `
		SELECT `+synonymColumns+`
		FROM synonyms
		WHERE id = $1
	`, id)
	return scanSynonym(row)
}

// CreateSynonym inserts a new entry. Returns ErrDuplicateSynonym when an
// active entry already exists for the same (synonym, language).
func (d *DB) CreateSynonym(ctx context.Context, entry *models.SynonymEntry) error {
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO synonyms (canonical, synonym, weight, is_active, source, language, category_hint)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, usage_count, created_at, updated_at
	`,
		entry.Canonical,
		entry.Synonym,
		entry.Weight,
		entry.IsActive,
		entry.Source,
		entry.Language,
		entry.CategoryHint,
	).Scan(&entry.ID, &entry.UsageCount, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSynonym
		}
		return err
	}

	return nil
}

// UpdateSynonym rewrites an entry's mapping fields. Returns
// ErrDuplicateSynonym when the new (synonym, language) collides with another
// active entry, ErrSynonymNotFound when the id does not exist.
func (d *DB) UpdateSynonym(ctx context.Context, entry *models.SynonymEntry) error {
	err := d.Pool.QueryRow(ctx, `
		UPDATE synonyms
		SET canonical = $2, synonym = $3, weight = $4, is_active = $5,
			source = $6, language = $7, category_hint = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		entry.ID,
		entry.Canonical,
		entry.Synonym,
		entry.Weight,
		entry.IsActive,
		entry.Source,
		entry.Language,
		entry.CategoryHint,
	).Scan(&entry.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSynonymNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSynonym
		}
		return err
	}

	return nil
}

// DeleteSynonym removes an entry permanently.
func (d *DB) DeleteSynonym(ctx context.Context, id uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM synonyms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSynonymNotFound
	}
	return nil
}

// SetSynonymActive flips an entry's active flag. Reactivating can collide
// with another active mapping, surfaced as ErrDuplicateSynonym.
func (d *DB) SetSynonymActive(ctx context.Context, id uuid.UUID, active bool) (*models.SynonymEntry, error) {
	row := d.Pool.QueryRow(ctx, `
		UPDATE synonyms
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+synonymColumns+`
	`, id, active)

	entry, err := scanSynonym(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateSynonym
		}
		return nil, err
	}
	return entry, nil
}

// IncrementSynonymUsage bumps usage counters for the given synonym terms.
// Best effort; lost increments under concurrency are acceptable.
func (d *DB) IncrementSynonymUsage(ctx context.Context, terms []string) error {
	if len(terms) == 0 {
		return nil
	}
	_, err := d.Pool.Exec(ctx, `
		UPDATE synonyms
		SET usage_count = usage_count + 1
		WHERE is_active AND synonym = ANY($1)
	`, terms)
	return err
}

// SeedSynonyms inserts seed entries, skipping any that already exist for the
// same (synonym, language). Used for the static dictionary and glossary.
func (d *DB) SeedSynonyms(ctx context.Context, entries []models.SynonymEntry) error {
	query := `
		INSERT INTO synonyms (canonical, synonym, weight, is_active, source, language, category_hint)
		VALUES ($1, $2, $3, TRUE, $4, $5, $6)
		ON CONFLICT (synonym, language) WHERE is_active DO NOTHING
	`

	for _, e := range entries {
		if _, err := d.Pool.Exec(ctx, query,
			e.Canonical, e.Synonym, e.Weight, e.Source, e.Language, e.CategoryHint,
		); err != nil {
			return fmt.Errorf("failed to seed synonym %s: %w", e.Synonym, err)
		}
	}

	return nil
}
