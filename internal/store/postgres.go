package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studybuddy/pseo-engine/internal/types"
)

// PostgresStore persists pages in a pages table keyed by slug. The page
// body and metadata live in a JSONB document column; slug, keyword, and
// publication state are promoted to real columns for querying.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and verifies it
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// SavePage upserts one page by slug. The upsert is guarded by the stored
// target keyword: a different keyword on an occupied slug rolls back as a
// collision.
func (s *PostgresStore) SavePage(ctx context.Context, page *types.PageRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existingKeyword string
	err = tx.QueryRow(ctx,
		`SELECT target_keyword FROM pages WHERE slug = $1 FOR UPDATE`,
		page.Slug,
	).Scan(&existingKeyword)
	switch {
	case err == nil:
		if existingKeyword != page.TargetKeyword {
			return &SlugCollisionError{
				Slug:            page.Slug,
				ExistingKeyword: existingKeyword,
				NewKeyword:      page.TargetKeyword,
			}
		}
	case errors.Is(err, pgx.ErrNoRows):
		// new slug
	default:
		return fmt.Errorf("failed to check slug %q: %w", page.Slug, err)
	}

	doc, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page %q: %w", page.Slug, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO pages (id, slug, category, target_keyword, title, published, last_updated, document)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (slug) DO UPDATE SET
		   category = $3, title = $5, published = $6, last_updated = $7, document = $8`,
		page.ID, page.Slug, string(page.Category), page.TargetKeyword,
		page.Title, page.Published, page.LastUpdated, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save page %q: %w", page.Slug, err)
	}
	return tx.Commit(ctx)
}

// GetPage reads one page document by slug
func (s *PostgresStore) GetPage(ctx context.Context, slug string) (*types.PageRecord, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM pages WHERE slug = $1`, slug,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page %q: %w", slug, err)
	}
	var page types.PageRecord
	if err := json.Unmarshal(doc, &page); err != nil {
		return nil, fmt.Errorf("failed to decode page %q: %w", slug, err)
	}
	return &page, nil
}

// ListPages reads every page document, ordered by slug
func (s *PostgresStore) ListPages(ctx context.Context) ([]*types.PageRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT document FROM pages ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*types.PageRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		var page types.PageRecord
		if err := json.Unmarshal(doc, &page); err != nil {
			return nil, fmt.Errorf("failed to decode page: %w", err)
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// Index projects the index document straight from the promoted columns
func (s *PostgresStore) Index(ctx context.Context) ([]types.IndexEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT slug, title, category, last_updated FROM pages ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	defer rows.Close()

	entries := []types.IndexEntry{}
	for rows.Next() {
		var entry types.IndexEntry
		var category string
		if err := rows.Scan(&entry.Slug, &entry.Title, &category, &entry.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan index entry: %w", err)
		}
		entry.Category = types.Category(category)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CreateRun records the start of a generation run and returns its ID
func (s *PostgresStore) CreateRun(ctx context.Context, strategy string, totalJobs int) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO generation_runs (strategy, total_jobs, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		strategy, totalJobs,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun records how a generation run ended
func (s *PostgresStore) CompleteRun(ctx context.Context, runID uuid.UUID, status string, generated, failed int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE generation_runs
		 SET status = $1, generated = $2, failed = $3, completed_at = $4
		 WHERE id = $5`,
		status, generated, failed, time.Now(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}
