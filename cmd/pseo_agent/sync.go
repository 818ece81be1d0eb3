package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/config"
	"github.com/studybuddy/pseo-engine/internal/schemas"
	"github.com/studybuddy/pseo-engine/internal/store"
	"github.com/studybuddy/pseo-engine/internal/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync page documents from a directory into a store",
	Long:  "Validate every page document in a source directory against the page schema and save it into the configured store. Slug collisions are reported and skipped; the index is rebuilt as pages land.",
	RunE:  runSync,
}

var (
	syncSourceDir   string
	syncOutputDir   string
	syncStore       string
	syncDatabaseURL string
)

func init() {
	syncCmd.Flags().StringVar(&syncSourceDir, "from", "", "Directory holding page JSON documents (required)")
	syncCmd.Flags().StringVarP(&syncOutputDir, "out", "o", "", "Directory for the filesystem store")
	syncCmd.Flags().StringVar(&syncStore, "store", "", "Store backend: fs or postgres")
	syncCmd.Flags().StringVar(&syncDatabaseURL, "db-url", "", "PostgreSQL URL (required with --store postgres)")
	_ = syncCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	overrides := config.Config{
		OutputDir:   syncOutputDir,
		Store:       syncStore,
		DatabaseURL: syncDatabaseURL,
	}
	cfg := overrides.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := pageDocumentPaths(syncSourceDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no page documents found in %s", syncSourceDir)
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	synced := 0
	failed := 0
	for _, path := range paths {
		if err := syncPage(ctx, st, path); err != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(path), err)
			continue
		}
		synced++
	}

	_, _ = fmt.Fprintf(os.Stdout, "Synced %d pages, %d failed\n", synced, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d page documents failed to sync", failed, len(paths))
	}
	return nil
}

// pageDocumentPaths lists the page JSON files in a directory, skipping the
// index document.
func pageDocumentPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") || entry.Name() == "index.json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func syncPage(ctx context.Context, st store.Store, path string) error {
	if err := schemas.ValidatePageFile(path); err != nil {
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate %s against schema: %v\n", filepath.Base(path), err)
		} else {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read page document: %w", err)
	}
	var page types.PageRecord
	if err := json.Unmarshal(data, &page); err != nil {
		return fmt.Errorf("failed to parse page document: %w", err)
	}

	return st.SavePage(ctx, &page)
}
