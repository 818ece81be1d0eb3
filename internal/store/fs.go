package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/studybuddy/pseo-engine/internal/types"
)

const indexFilename = "index.json"

// FSStore persists pages as one JSON document per slug under a directory,
// plus an aggregate index.json rebuilt on every save. Safe for concurrent
// use within one process; not across processes.
type FSStore struct {
	dir string
	mu  sync.Mutex
}

// NewFSStore opens (creating if needed) a directory-backed store
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %q: %w", dir, err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) pagePath(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}

// SavePage writes the page document and merges its entry into the index.
// Saving the same slug for the same target keyword replaces the document;
// the same slug for a different keyword is a collision.
func (s *FSStore) SavePage(ctx context.Context, page *types.PageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readPage(page.Slug)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil && existing.TargetKeyword != page.TargetKeyword {
		return &SlugCollisionError{
			Slug:            page.Slug,
			ExistingKeyword: existing.TargetKeyword,
			NewKeyword:      page.TargetKeyword,
		}
	}

	if err := s.writeJSON(s.pagePath(page.Slug), page); err != nil {
		return fmt.Errorf("writing page %q: %w", page.Slug, err)
	}
	return s.rebuildIndex()
}

// GetPage reads one page document by slug
func (s *FSStore) GetPage(ctx context.Context, slug string) (*types.PageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPage(slug)
}

// ListPages reads every page document, ordered by slug
func (s *FSStore) ListPages(ctx context.Context) ([]*types.PageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPages()
}

// Index reads the aggregate index document
func (s *FSStore) Index(ctx context.Context) ([]types.IndexEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, indexFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.IndexEntry{}, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}
	var entries []types.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	return entries, nil
}

// Close is a no-op for the filesystem store
func (s *FSStore) Close() error { return nil }

func (s *FSStore) readPage(slug string) (*types.PageRecord, error) {
	data, err := os.ReadFile(s.pagePath(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading page %q: %w", slug, err)
	}
	var page types.PageRecord
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding page %q: %w", slug, err)
	}
	return &page, nil
}

func (s *FSStore) listPages() ([]*types.PageRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	pages := make([]*types.PageRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFilename || !strings.HasSuffix(name, ".json") {
			continue
		}
		page, err := s.readPage(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

// rebuildIndex regenerates index.json from the page documents on disk,
// so the index can never hold duplicate or orphaned entries.
func (s *FSStore) rebuildIndex() error {
	pages, err := s.listPages()
	if err != nil {
		return err
	}
	entries := make([]types.IndexEntry, 0, len(pages))
	for _, page := range pages {
		entries = append(entries, types.IndexEntryOf(page))
	}
	if err := s.writeJSON(filepath.Join(s.dir, indexFilename), entries); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// writeJSON writes via a temp file and rename so readers never see a
// half-written document.
func (s *FSStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
