// Package research validates keyword demand before generation. For each
// candidate keyword it collects autocomplete suggestions and search result
// headlines, then scores how much real search activity the keyword shows.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/studybuddy/pseo-engine/internal/fetch"
	"github.com/studybuddy/pseo-engine/internal/types"
)

// Default endpoints queried during research
const (
	DefaultSuggestURL = "https://suggestqueries.google.com/complete/search"
	DefaultSearchURL  = "https://www.google.com/search"

	// serpTitleSelector matches result headlines on the search page
	serpTitleSelector = "h3"
)

// Signal is the demand evidence collected for one keyword
type Signal struct {
	Keyword      string   `json:"keyword"`
	Category     string   `json:"category"`
	Suggestions  []string `json:"suggestions"`
	SERPTitles   []string `json:"serp_titles,omitempty"`
	TitleMatches int      `json:"title_matches"`
	Score        float64  `json:"score"`
}

// Report is the outcome of a research run, strongest signals first
type Report struct {
	Signals []Signal `json:"signals"`
}

// Researcher queries public search surfaces for keyword demand signals.
// Zero-valued fields fall back to the defaults.
type Researcher struct {
	SuggestURL string
	SearchURL  string
	Options    *fetch.Options

	// SkipSERP turns off search page scraping and scores on
	// autocomplete suggestions alone.
	SkipSERP bool
}

// NewResearcher returns a researcher pointed at the public endpoints
func NewResearcher() *Researcher {
	return &Researcher{
		SuggestURL: DefaultSuggestURL,
		SearchURL:  DefaultSearchURL,
	}
}

func (r *Researcher) suggestURL() string {
	if r.SuggestURL == "" {
		return DefaultSuggestURL
	}
	return r.SuggestURL
}

func (r *Researcher) searchURL() string {
	if r.SearchURL == "" {
		return DefaultSearchURL
	}
	return r.SearchURL
}

// Validate researches every keyword in the set. Per-keyword fetch failures
// degrade that keyword's signal to zero rather than failing the run.
func (r *Researcher) Validate(ctx context.Context, set types.KeywordSet) (*Report, error) {
	report := &Report{Signals: make([]Signal, 0, len(set.Keywords))}

	for _, kw := range set.Keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		signal := Signal{Keyword: kw.Keyword, Category: string(kw.Category)}

		if suggestions, err := r.FetchSuggestions(ctx, kw.Keyword); err == nil {
			signal.Suggestions = suggestions
		}
		if !r.SkipSERP {
			if titles, err := r.FetchSERPTitles(ctx, kw.Keyword); err == nil {
				signal.SERPTitles = titles
				signal.TitleMatches = countTitleMatches(kw.Keyword, titles)
			}
		}

		signal.Score = scoreSignal(signal)
		report.Signals = append(report.Signals, signal)
	}

	sortSignals(report.Signals)
	return report, nil
}

// FetchSuggestions queries the autocomplete endpoint for one keyword
func (r *Researcher) FetchSuggestions(ctx context.Context, keyword string) ([]string, error) {
	endpoint := fmt.Sprintf("%s?client=firefox&q=%s", r.suggestURL(), url.QueryEscape(keyword))
	result, err := fetch.URL(ctx, endpoint, r.Options)
	if err != nil {
		return nil, err
	}
	return parseSuggestBody(result.Body)
}

// FetchSERPTitles scrapes the result headlines for one keyword
func (r *Researcher) FetchSERPTitles(ctx context.Context, keyword string) ([]string, error) {
	endpoint := fmt.Sprintf("%s?q=%s", r.searchURL(), url.QueryEscape(keyword))
	result, err := fetch.URL(ctx, endpoint, r.Options)
	if err != nil {
		return nil, err
	}
	return fetch.ExtractTitles(result.Body, serpTitleSelector)
}

// parseSuggestBody decodes the autocomplete response, shaped as
// ["query", ["suggestion", ...], ...].
func parseSuggestBody(body string) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal([]byte(body), &parts); err != nil {
		return nil, fmt.Errorf("decoding suggest response: %w", err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("suggest response has no suggestion list")
	}
	var suggestions []string
	if err := json.Unmarshal(parts[1], &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestion list: %w", err)
	}
	return suggestions, nil
}

// countTitleMatches counts result headlines sharing at least two words
// with the keyword. One shared word is usually brand noise.
func countTitleMatches(keyword string, titles []string) int {
	kwWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(keyword)) {
		kwWords[w] = true
	}

	matches := 0
	for _, title := range titles {
		shared := 0
		for _, w := range strings.Fields(strings.ToLower(title)) {
			if kwWords[w] {
				shared++
			}
		}
		if shared >= 2 {
			matches++
		}
	}
	return matches
}

// scoreSignal folds the evidence into a single comparable number.
// Suggestions indicate people type the phrase; title matches indicate
// competitors already rank content for it.
func scoreSignal(s Signal) float64 {
	return float64(len(s.Suggestions))*10 + float64(s.TitleMatches)*5
}

func sortSignals(signals []Signal) {
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})
}
