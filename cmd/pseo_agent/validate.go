package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studybuddy/pseo-engine/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a known schema",
	Long:  "Validate a JSON document against one of the bundled schemas: page, keywords or index.",
	RunE:  runValidate,
}

var (
	validateSchemaName string
	validateJSONFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaName, "schema", "s", "", "Schema name: page, keywords or index (required)")
	validateCmd.Flags().StringVarP(&validateJSONFile, "json", "j", "", "Path to JSON document (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var err error
	switch validateSchemaName {
	case "page":
		err = schemas.ValidatePageFile(validateJSONFile)
	case "keywords":
		err = schemas.ValidateKeywordsFile(validateJSONFile)
	case "index":
		err = schemas.ValidateIndexFile(validateJSONFile)
	default:
		return fmt.Errorf("unknown schema %q (expected page, keywords or index)", validateSchemaName)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s validates against the %s schema\n", validateJSONFile, validateSchemaName)
	return nil
}
