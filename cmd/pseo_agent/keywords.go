package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/observability"
	"github.com/studybuddy/pseo-engine/internal/schemas"
	"github.com/studybuddy/pseo-engine/internal/taxonomy"
	"github.com/studybuddy/pseo-engine/internal/types"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Expand the keyword taxonomy into a keyword set",
	Long:  "Expand the built-in keyword templates over the subject, grade and place dimensions into a keyword set JSON file consumed by the generate command.",
	RunE:  runKeywords,
}

var (
	keywordsOutputFile string
	keywordsVerbose    bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsOutputFile, "out", "o", "", "Path to output keyword set JSON file (default: stdout)")
	keywordsCmd.Flags().BoolVarP(&keywordsVerbose, "verbose", "v", false, "Print a category breakdown of the expanded set")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(_ *cobra.Command, _ []string) error {
	records, err := taxonomy.Expand(taxonomy.DefaultTemplates(), taxonomy.DefaultDimensions())
	if err != nil {
		return fmt.Errorf("failed to expand taxonomy: %w", err)
	}
	set := types.KeywordSet{Keywords: records}

	jsonBytes, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if keywordsOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(keywordsOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := schemas.ValidateKeywordsFile(keywordsOutputFile); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("expanded keyword set does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	if keywordsVerbose {
		observability.NewPrinter(os.Stdout).PrintKeywordSet(set)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Expanded %d keywords\n", len(set.Keywords))
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", keywordsOutputFile)

	return nil
}
