package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/research"
	"github.com/studybuddy/pseo-engine/internal/taxonomy"
	"github.com/studybuddy/pseo-engine/internal/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Collect demand signals for a keyword set",
	Long:  "Query public search surfaces for autocomplete suggestions and result titles, scoring each keyword's demand. Reads a keyword set produced by the keywords command, or expands the default taxonomy when no input is given.",
	RunE:  runResearch,
}

var (
	researchInputFile  string
	researchOutputFile string
	researchSkipSERP   bool
)

func init() {
	researchCmd.Flags().StringVarP(&researchInputFile, "in", "i", "", "Path to keyword set JSON file (default: expand built-in taxonomy)")
	researchCmd.Flags().StringVarP(&researchOutputFile, "out", "o", "", "Path to output report JSON file (default: stdout)")
	researchCmd.Flags().BoolVar(&researchSkipSERP, "skip-serp", false, "Skip search page scraping and score on suggestions alone")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(_ *cobra.Command, _ []string) error {
	set, err := loadKeywordSet(researchInputFile)
	if err != nil {
		return err
	}

	researcher := research.NewResearcher()
	researcher.SkipSERP = researchSkipSERP

	report, err := researcher.Validate(context.Background(), set)
	if err != nil {
		return fmt.Errorf("research run failed: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if researchOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(researchOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Collected signals for %d keywords\n", len(report.Signals))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", researchOutputFile)

	return nil
}

// loadKeywordSet reads a keyword set from disk, or expands the default
// taxonomy when no path is given.
func loadKeywordSet(path string) (types.KeywordSet, error) {
	if path == "" {
		records, err := taxonomy.Expand(taxonomy.DefaultTemplates(), taxonomy.DefaultDimensions())
		if err != nil {
			return types.KeywordSet{}, fmt.Errorf("failed to expand taxonomy: %w", err)
		}
		return types.KeywordSet{Keywords: records}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.KeywordSet{}, fmt.Errorf("failed to read keyword set: %w", err)
	}
	var set types.KeywordSet
	if err := json.Unmarshal(data, &set); err != nil {
		return types.KeywordSet{}, fmt.Errorf("failed to parse keyword set JSON: %w", err)
	}
	if len(set.Keywords) == 0 {
		return types.KeywordSet{}, fmt.Errorf("keyword set %s contains no keywords", path)
	}
	return set, nil
}
