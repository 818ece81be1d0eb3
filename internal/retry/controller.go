// Package retry drives a synthesis strategy through the score/retry loop:
// draft, score against the corpus, and either accept, retry with a fresh
// variation, or give up and keep the best-effort page.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studybuddy/pseo-engine/internal/quality"
	"github.com/studybuddy/pseo-engine/internal/synthesis"
	"github.com/studybuddy/pseo-engine/internal/types"
	"github.com/studybuddy/pseo-engine/internal/uniqueness"
)

// Defaults for the acceptance loop
const (
	DefaultThreshold  = 70.0
	DefaultMaxRetries = 3
)

// Attempt records one pass through the strategy for diagnostics
type Attempt struct {
	Variation       types.Variation
	UniquenessScore float64
	Err             error
}

// Result is the outcome of running one keyword through the loop
type Result struct {
	Page     *types.PageRecord
	Attempts []Attempt
	Accepted bool
}

// Controller owns the acceptance loop for a single strategy. A zero
// Threshold or MaxRetries falls back to the defaults.
type Controller struct {
	Strategy   synthesis.Strategy
	Corpus     *uniqueness.Corpus
	Threshold  float64
	MaxRetries int

	// PublishBelowThreshold marks exhausted pages as published anyway.
	// Off by default so low-uniqueness pages stay drafts.
	PublishBelowThreshold bool

	// Now returns the timestamp stamped on persisted records. Defaults
	// to time.Now.
	Now func() time.Time
}

// NewController wires a controller with the default threshold and retry cap
func NewController(strategy synthesis.Strategy, corpus *uniqueness.Corpus) *Controller {
	return &Controller{
		Strategy:   strategy,
		Corpus:     corpus,
		Threshold:  DefaultThreshold,
		MaxRetries: DefaultMaxRetries,
	}
}

func (c *Controller) threshold() float64 {
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

func (c *Controller) maxRetries() int {
	if c.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return c.MaxRetries
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Run synthesizes a page for the keyword, retrying with escalating
// variations until the uniqueness threshold is met or retries run out.
// Quota faults propagate immediately; other synthesis faults consume one
// attempt each. An exhausted loop still returns the last draft, scored
// honestly, so completed work is never thrown away.
func (c *Controller) Run(ctx context.Context, kw types.KeywordRecord, existingContent string) (*Result, error) {
	result := &Result{}

	var lastDraft *types.DraftPage
	var lastScore float64

	maxAttempts := 1 + c.maxRetries()
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v := types.Variation{}
		if attempt > 0 {
			v = types.RetryVariation(attempt)
			v.Attempt = attempt
			v.PriorScore = lastScore
		}

		draft, err := c.Strategy.Synthesize(ctx, kw, existingContent, v)
		if err != nil {
			if synthesis.IsQuota(err) {
				return nil, err
			}
			result.Attempts = append(result.Attempts, Attempt{Variation: v, Err: err})
			continue
		}

		score := uniqueness.Score(draft.Content, c.scoringCorpus(existingContent))
		result.Attempts = append(result.Attempts, Attempt{Variation: v, UniquenessScore: score})
		lastDraft = draft
		lastScore = score

		if score >= c.threshold() {
			result.Accepted = true
			result.Page = c.finalize(draft, score, quality.Evaluate(draft), true)
			c.Corpus.Add(draft.Content)
			return result, nil
		}
	}

	if lastDraft == nil {
		var lastErr error
		for _, a := range result.Attempts {
			if a.Err != nil {
				lastErr = a.Err
			}
		}
		if lastErr == nil {
			lastErr = errors.New("no synthesis attempt produced a draft")
		}
		return nil, fmt.Errorf("all %d attempts failed for %q: %w", maxAttempts, kw.Keyword, lastErr)
	}

	// retries exhausted: keep the last draft with a capped quality score
	result.Page = c.finalize(lastDraft, lastScore, quality.ExhaustedScore(lastScore), c.PublishBelowThreshold)
	c.Corpus.Add(lastDraft.Content)
	return result, nil
}

// scoringCorpus returns the corpus snapshot with the page's own previously
// stored body removed. A refresh run seeds the corpus from every stored
// page, so without this a page would be scored against itself and lose its
// published status on every re-generation.
func (c *Controller) scoringCorpus(existingContent string) []string {
	snapshot := c.Corpus.Snapshot()
	if existingContent == "" {
		return snapshot
	}
	kept := make([]string, 0, len(snapshot))
	for _, body := range snapshot {
		if body != existingContent {
			kept = append(kept, body)
		}
	}
	return kept
}

func (c *Controller) finalize(draft *types.DraftPage, uniquenessScore float64, qualityScore int, published bool) *types.PageRecord {
	return &types.PageRecord{
		ID:              uuid.NewString(),
		Slug:            draft.Slug,
		Category:        draft.Category,
		TargetKeyword:   draft.TargetKeyword,
		Title:           draft.Title,
		MetaTitle:       draft.MetaTitle,
		MetaDescription: draft.MetaDescription,
		Content:         draft.Content,
		QuickAnswer:     draft.QuickAnswer,
		FAQs:            draft.FAQs,
		Citations:       draft.Citations,
		Keywords:        draft.Keywords,
		Authorship:      draft.Authorship,
		GenerationModel: draft.GenerationModel,
		QualityScore:    qualityScore,
		UniquenessScore: uniquenessScore,
		Published:       published,
		LastUpdated:     c.now(),
	}
}
