package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/config"
	"github.com/studybuddy/pseo-engine/internal/executor"
	"github.com/studybuddy/pseo-engine/internal/llm"
	"github.com/studybuddy/pseo-engine/internal/observability"
	"github.com/studybuddy/pseo-engine/internal/retry"
	"github.com/studybuddy/pseo-engine/internal/slug"
	"github.com/studybuddy/pseo-engine/internal/store"
	"github.com/studybuddy/pseo-engine/internal/synthesis"
	"github.com/studybuddy/pseo-engine/internal/types"
	"github.com/studybuddy/pseo-engine/internal/uniqueness"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate landing pages for a keyword set",
	Long:  "Run each keyword through synthesis, uniqueness scoring and the retry loop, persisting accepted pages to the configured store. Re-running is safe: pages for already generated keywords are refreshed in place, and slugs owned by a different keyword are skipped.",
	RunE:  runGenerate,
}

var (
	generateConfigFile   string
	generateKeywordsFile string
	generateOutputDir    string
	generateStore        string
	generateStrategy     string
	generateLimit        int
	generateDatabaseURL  string
	generateAPIKey       string
	generatePublishBelow bool
	generateVerbose      bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfigFile, "config", "c", "", "Path to config JSON file")
	generateCmd.Flags().StringVarP(&generateKeywordsFile, "keywords", "k", "", "Path to keyword set JSON file (default: expand built-in taxonomy)")
	generateCmd.Flags().StringVarP(&generateOutputDir, "out", "o", "", "Directory for the filesystem store")
	generateCmd.Flags().StringVar(&generateStore, "store", "", "Store backend: fs or postgres")
	generateCmd.Flags().StringVar(&generateStrategy, "strategy", "", "Synthesis strategy: template or generative")
	generateCmd.Flags().IntVar(&generateLimit, "limit", 0, "Maximum pages to generate this run (0 = no cap)")
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL URL (required with --store postgres)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVar(&generatePublishBelow, "publish-below-threshold", false, "Publish pages that exhausted retries below the uniqueness threshold")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print per-page results")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := resolveGenerateConfig()
	if err != nil {
		return err
	}

	set, err := loadKeywordSet(generateKeywordsFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	strategy, cleanup, err := buildStrategy(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Seed the corpus with every stored page so uniqueness is judged
	// against the whole site, not just this run.
	corpus := uniqueness.NewCorpus()
	existing, err := st.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored pages: %w", err)
	}
	for _, page := range existing {
		corpus.Add(page.Content)
	}

	controller := retry.NewController(strategy, corpus)
	controller.Threshold = cfg.UniquenessThreshold
	controller.MaxRetries = cfg.MaxRetries
	controller.PublishBelowThreshold = cfg.PublishBelowThreshold

	jobs, skipped := buildJobs(set, existing, cfg.Limit)

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintKeywordSet(set)
	}

	exec := executor.New(controller, st)
	exec.BatchSize = cfg.BatchSize
	exec.CallDelay = cfg.CallDelay()
	exec.JobPause = cfg.JobPause()

	runID, pgStore := beginRun(ctx, st, cfg.Strategy, len(jobs))

	outcome, err := exec.RunBatch(ctx, jobs)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	for _, o := range outcome.Outcomes {
		if o.Err != nil {
			printer.PrintJobFailure(o.Keyword, o.Err)
			continue
		}
		if cfg.Verbose && o.Result != nil {
			printer.PrintPageResult(o.Result.Page, len(o.Result.Attempts))
		}
	}
	printer.PrintBatchSummary(outcome.Generated(), outcome.Failed(), skipped, outcome.Aborted)

	if pgStore != nil {
		status := "completed"
		if outcome.Aborted {
			status = "aborted"
		}
		if err := pgStore.CompleteRun(ctx, runID, status, outcome.Generated(), outcome.Failed()); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not record run completion: %v\n", err)
		}
	}

	if outcome.Aborted {
		return fmt.Errorf("batch aborted: %w", outcome.AbortErr)
	}
	return nil
}

// resolveGenerateConfig layers flags over the config file over defaults
func resolveGenerateConfig() (config.Config, error) {
	base := config.Defaults()
	if generateConfigFile != "" {
		fileCfg, err := config.LoadConfig(generateConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
	}

	overrides := config.Config{
		OutputDir:             generateOutputDir,
		Store:                 generateStore,
		Strategy:              generateStrategy,
		Limit:                 generateLimit,
		DatabaseURL:           generateDatabaseURL,
		APIKey:                generateAPIKey,
		PublishBelowThreshold: generatePublishBelow,
		Verbose:               generateVerbose,
	}
	cfg := overrides.MergeWithDefaults(base)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the configured store backend
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return st, nil
	default:
		st, err := store.NewFSStore(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open filesystem store: %w", err)
		}
		return st, nil
	}
}

// buildStrategy returns the configured synthesis strategy and a cleanup
// function releasing any provider client it opened.
func buildStrategy(ctx context.Context, cfg config.Config) (synthesis.Strategy, func(), error) {
	if cfg.Strategy != config.StrategyGenerative {
		return &synthesis.TemplateStrategy{}, func() {}, nil
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return synthesis.NewGenerativeStrategy(client), func() { _ = client.Close() }, nil
}

// buildJobs turns the keyword set into executor jobs. Keywords whose slug
// already holds a page are refreshed when the stored keyword matches, and
// skipped when a different keyword owns the slug.
func buildJobs(set types.KeywordSet, existing []*types.PageRecord, limit int) ([]executor.Job, int) {
	bySlug := make(map[string]*types.PageRecord, len(existing))
	for _, page := range existing {
		bySlug[page.Slug] = page
	}

	var jobs []executor.Job
	skipped := 0
	for _, kw := range set.Keywords {
		if limit > 0 && len(jobs) >= limit {
			break
		}
		job := executor.Job{Keyword: kw}
		if page, ok := bySlug[slug.Make(kw.Keyword)]; ok {
			if page.TargetKeyword != kw.Keyword {
				skipped++
				continue
			}
			job.ExistingContent = page.Content
		}
		jobs = append(jobs, job)
	}
	return jobs, skipped
}

// beginRun records run bookkeeping when the store supports it
func beginRun(ctx context.Context, st store.Store, strategy string, totalJobs int) (uuid.UUID, *store.PostgresStore) {
	pg, ok := st.(*store.PostgresStore)
	if !ok {
		return uuid.Nil, nil
	}
	id, err := pg.CreateRun(ctx, strategy, totalJobs)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not record run start: %v\n", err)
		return uuid.Nil, nil
	}
	return id, pg
}
