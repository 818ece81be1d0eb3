package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/config"
	"github.com/studybuddy/pseo-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored pages over HTTP",
	Long:  "Start a read-only HTTP server exposing published pages and the aggregate index from the configured store.",
	RunE:  runServe,
}

var (
	serveAddr        string
	serveOutputDir   string
	serveStore       string
	serveDatabaseURL string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default localhost:8080)")
	serveCmd.Flags().StringVarP(&serveOutputDir, "out", "o", "", "Directory for the filesystem store")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Store backend: fs or postgres")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL URL (required with --store postgres)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	overrides := config.Config{
		OutputDir:   serveOutputDir,
		Store:       serveStore,
		DatabaseURL: serveDatabaseURL,
		ServeAddr:   serveAddr,
	}
	cfg := overrides.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	srv := server.New(server.Config{Addr: cfg.ServeAddr}, st)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
