// Package quality scores structural completeness of a draft page on a
// bounded 0-10 rubric. The rubric is independent of uniqueness and does not
// trigger retries; it is recorded so thin pages can be flagged for review.
package quality

import (
	"strings"

	"github.com/studybuddy/pseo-engine/internal/types"
)

// Rubric bounds
const (
	// MinWords is the word count below which a page is considered thin
	MinWords = 1000
	// IdealFAQCount is the FAQ count that earns full marks
	IdealFAQCount = 5
	// MetaTitleMaxLen is the recommended meta title length
	MetaTitleMaxLen = 60
	// MetaDescriptionMaxLen is the recommended meta description length
	MetaDescriptionMaxLen = 155
	// MetaDescriptionMinLen guards against near-empty descriptions
	MetaDescriptionMinLen = 50
)

// WordCount counts whitespace-separated words in content
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Evaluate scores a draft page 0-10:
// up to 3 for word-count band fit, up to 3 for FAQ presence and count,
// 2 for a directly-answering lead, and 2 for metadata length bounds.
func Evaluate(draft *types.DraftPage) int {
	score := 0

	words := WordCount(draft.Content)
	switch {
	case words >= MinWords:
		score += 3
	case words >= 800:
		score += 2
	case words >= 500:
		score++
	}

	switch {
	case len(draft.FAQs) >= IdealFAQCount:
		score += 3
	case len(draft.FAQs) >= 3:
		score += 2
	case len(draft.FAQs) >= 1:
		score++
	}

	if strings.TrimSpace(draft.QuickAnswer) != "" {
		score += 2
	}

	if n := len(draft.MetaTitle); n > 0 && n <= MetaTitleMaxLen {
		score++
	}
	if n := len(draft.MetaDescription); n >= MetaDescriptionMinLen && n <= MetaDescriptionMaxLen {
		score++
	}

	return score
}

// ExhaustedScore is the quality score recorded for a page persisted after
// the retry budget ran out: derived from its final uniqueness score and
// capped at 10, so flagged pages sort below rubric-scored ones.
func ExhaustedScore(uniquenessScore float64) int {
	score := int(uniquenessScore/10) + 3
	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}
