package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
)

const searchResultSchema = `
CREATE TABLE IF NOT EXISTS search_results (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	username TEXT NOT NULL,
	filename TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	bit_rate INTEGER NOT NULL DEFAULT 0,
	queue_length INTEGER NOT NULL DEFAULT 0,
	has_free_slot INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_search_results_token ON search_results(token);
`

// SearchResultRepository stores peer file offers per search token.
type SearchResultRepository struct {
	db *sql.DB
}

// NewSearchResultRepository creates the repository and its schema.
func NewSearchResultRepository(db *sql.DB) (*SearchResultRepository, error) {
	if _, err := db.Exec(searchResultSchema); err != nil {
		return nil, fmt.Errorf("failed to create search_results schema: %w", err)
	}
	return &SearchResultRepository{db: db}, nil
}

// ReplaceAll swaps the stored result set for a token with the given results.
// Like transfer reconciliation, each daemon response replaces prior state
// wholesale rather than patching it.
func (r *SearchResultRepository) ReplaceAll(token string, results []models.SearchResult) error {
	if token == "" {
		return fmt.Errorf("%w: search token", shared.ErrMissingArgument)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM search_results WHERE token = ?", token); err != nil {
		return fmt.Errorf("failed to clear prior results: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO search_results
		(id, token, username, filename, size, bit_rate, queue_length, has_free_slot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		if _, err := stmt.Exec(
			result.ID, token, result.Username, result.Filename,
			result.Size, result.BitRate, result.QueueLength, result.HasFreeSlot,
		); err != nil {
			return fmt.Errorf("failed to insert result %s: %w", result.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// List returns the stored results for a token, best offers first (free
// slots, then shortest queue, then highest bit rate).
func (r *SearchResultRepository) List(token string) ([]models.SearchResult, error) {
	rows, err := r.db.Query(`SELECT id, token, username, filename, size, bit_rate, queue_length, has_free_slot
		FROM search_results WHERE token = ?
		ORDER BY has_free_slot DESC, queue_length ASC, bit_rate DESC, filename ASC`, token)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var result models.SearchResult
		if err := rows.Scan(
			&result.ID, &result.Token, &result.Username, &result.Filename,
			&result.Size, &result.BitRate, &result.QueueLength, &result.HasFreeSlot,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return results, nil
}

// Get retrieves one stored result by its local id.
func (r *SearchResultRepository) Get(id string) (*models.SearchResult, error) {
	var result models.SearchResult
	err := r.db.QueryRow(`SELECT id, token, username, filename, size, bit_rate, queue_length, has_free_slot
		FROM search_results WHERE id = ?`, id).Scan(
		&result.ID, &result.Token, &result.Username, &result.Filename,
		&result.Size, &result.BitRate, &result.QueueLength, &result.HasFreeSlot,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrResultNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &result, nil
}

// Count returns how many results are stored for a token.
func (r *SearchResultRepository) Count(token string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM search_results WHERE token = ?", token).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}
