// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/studybuddy/pseo-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywordSet outputs a summary of an expanded keyword set, grouped
// by category.
func (p *Printer) PrintKeywordSet(set types.KeywordSet) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total keywords: %d\n\n", len(set.Keywords)))

	byCategory := make(map[types.Category][]types.KeywordRecord)
	for _, kw := range set.Keywords {
		byCategory[kw.Category] = append(byCategory[kw.Category], kw)
	}

	order := []types.Category{
		types.CategoryPainPoint,
		types.CategoryExamPrep,
		types.CategoryComparison,
		types.CategoryPricing,
		types.CategoryLocale,
	}
	for _, c := range order {
		records := byCategory[c]
		if len(records) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", c, len(records)))
		count := min(len(records), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", records[i].Keyword))
		}
		if len(records) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("EXPANDED KEYWORD SET", strings.TrimRight(sb.String(), "\n"))
}

// PrintPageResult outputs a one-page summary after a generation job finishes
func (p *Printer) PrintPageResult(page *types.PageRecord, attempts int) {
	if page == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slug:        %s\n", page.Slug))
	sb.WriteString(fmt.Sprintf("Category:    %s\n", page.Category))
	sb.WriteString(fmt.Sprintf("Uniqueness:  %.1f\n", page.UniquenessScore))
	sb.WriteString(fmt.Sprintf("Quality:     %d/10\n", page.QualityScore))
	sb.WriteString(fmt.Sprintf("Attempts:    %d\n", attempts))
	if page.Published {
		sb.WriteString("Status:      published")
	} else {
		sb.WriteString("Status:      draft (below uniqueness threshold)")
	}

	p.printBox("PAGE GENERATED", sb.String())
}

// PrintJobFailure outputs a job-level failure that did not abort the batch
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobFailure(keyword string, err error) {
	fmt.Fprintf(p.out, "✗ %s: %v\n", keyword, err)
}

// PrintBatchSummary outputs the final tally for a generation run
func (p *Printer) PrintBatchSummary(generated, failed, skipped int, aborted bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated:  %d\n", generated))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", failed))
	sb.WriteString(fmt.Sprintf("Skipped:    %d", skipped))
	if aborted {
		sb.WriteString("\n\nBatch aborted early on a quota/billing fault.")
		sb.WriteString("\nCompleted pages were kept. Re-run to resume.")
	}

	p.printBox("GENERATION SUMMARY", sb.String())
}
