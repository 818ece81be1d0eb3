// Package store persists generated pages and the aggregate index document.
// Two implementations exist: a filesystem store writing one JSON document
// per slug, and a PostgreSQL store backed by pgx.
package store

import (
	"context"

	"github.com/studybuddy/pseo-engine/internal/types"
)

// Store is the persistence contract for generated pages. Saves are
// idempotent per slug: re-saving the same target keyword updates the page
// in place, while a different keyword landing on an occupied slug is a
// collision error, never a silent overwrite.
type Store interface {
	// SavePage writes or updates one page and merges its index entry
	SavePage(ctx context.Context, page *types.PageRecord) error
	// GetPage returns the page for a slug, or ErrNotFound
	GetPage(ctx context.Context, slug string) (*types.PageRecord, error)
	// ListPages returns every stored page
	ListPages(ctx context.Context) ([]*types.PageRecord, error)
	// Index returns the aggregate index document, one entry per page
	Index(ctx context.Context) ([]types.IndexEntry, error)
	// Close releases any resources held by the store
	Close() error
}
