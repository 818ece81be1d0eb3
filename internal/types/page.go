package types

import "time"

// FAQ is a single question/answer pair rendered in a page's FAQ section
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Authorship carries the provenance metadata rendered as a trust block
// at the bottom of every published page.
type Authorship struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Credentials []string `json:"credentials,omitempty"`
	ReviewedBy  string   `json:"reviewed_by,omitempty"`
	ReviewDate  string   `json:"review_date"` // YYYY-MM-DD
}

// DraftPage is the synthesizer output before scoring.
// It has the same shape as PageRecord minus the quality and uniqueness
// scores, which are computed afterward.
type DraftPage struct {
	Slug            string     `json:"slug"`
	Category        Category   `json:"category"`
	TargetKeyword   string     `json:"target_keyword"`
	Title           string     `json:"title"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Content         string     `json:"content"`
	QuickAnswer     string     `json:"quick_answer,omitempty"`
	FAQs            []FAQ      `json:"faqs,omitempty"`
	Citations       []string   `json:"citations,omitempty"`
	Keywords        []string   `json:"keywords,omitempty"`
	Authorship      Authorship `json:"authorship"`
	GenerationModel string     `json:"generation_model,omitempty"`
}

// PageRecord is the unit of output: one persisted landing-page document.
// A record is frozen once written; only LastUpdated changes on a deliberate
// re-generation run.
type PageRecord struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Category        Category   `json:"category"`
	TargetKeyword   string     `json:"target_keyword"`
	Title           string     `json:"title"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Content         string     `json:"content"`
	QuickAnswer     string     `json:"quick_answer,omitempty"`
	FAQs            []FAQ      `json:"faqs,omitempty"`
	Citations       []string   `json:"citations,omitempty"`
	Keywords        []string   `json:"keywords,omitempty"`
	Authorship      Authorship `json:"authorship"`
	GenerationModel string     `json:"generation_model,omitempty"`
	QualityScore    int        `json:"quality_score"`
	UniquenessScore float64    `json:"uniqueness_score"`
	Published       bool       `json:"published"`
	LastUpdated     time.Time  `json:"last_updated"`
}

// IndexEntry is the lightweight per-page projection kept in the aggregate
// index document read wholesale by the listing page.
type IndexEntry struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	LastUpdated time.Time `json:"last_updated"`
}

// IndexEntryOf projects a PageRecord into its index entry
func IndexEntryOf(page *PageRecord) IndexEntry {
	return IndexEntry{
		Slug:        page.Slug,
		Title:       page.Title,
		Category:    page.Category,
		LastUpdated: page.LastUpdated,
	}
}
