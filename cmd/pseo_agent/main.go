// Package main provides the entry point for the pSEO content engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pseo_agent",
	Short: "StudyBuddy programmatic SEO content engine",
	Long:  "pseo_agent expands keyword taxonomies into landing-page candidates, synthesizes unique page content under quality and uniqueness gates, and serves the generated corpus.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
