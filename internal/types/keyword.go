// Package types provides type definitions for structured data used throughout the pSEO engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category classifies a keyword by the search intent its landing page targets.
// It is computed once at keyword expansion time; downstream components dispatch
// on it rather than re-deriving intent from the keyword string.
type Category string

// Category constants define the supported page categories
const (
	// CategoryPainPoint targets urgent "failing/struggling" searches
	CategoryPainPoint Category = "pain-point"
	// CategoryExamPrep targets exam and revision searches
	CategoryExamPrep Category = "exam-prep"
	// CategoryComparison targets "X vs Y" buying-decision searches
	CategoryComparison Category = "comparison"
	// CategoryPricing targets cost and affordability searches
	CategoryPricing Category = "pricing"
	// CategoryLocale targets suburb-level local searches
	CategoryLocale Category = "locale"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryPainPoint, CategoryExamPrep, CategoryComparison, CategoryPricing, CategoryLocale:
		return true
	}
	return false
}

// Substitutions holds the dimension values bound into a keyword template.
// Fields are zero-valued when the template did not use the placeholder.
type Substitutions struct {
	Subject string `json:"subject,omitempty"`
	Grade   int    `json:"grade,omitempty"`
	Place   string `json:"place,omitempty"`
}

// KeywordRecord is one fully expanded keyword candidate.
// Records are immutable and consumed once per generation run.
type KeywordRecord struct {
	Keyword       string        `json:"keyword"`
	Category      Category      `json:"category"`
	Substitutions Substitutions `json:"substitutions"`
	PriorityClass int           `json:"priority_class"`
}

// KeywordSet is the output of a taxonomy expansion run
type KeywordSet struct {
	Keywords []KeywordRecord `json:"keywords"`
}
