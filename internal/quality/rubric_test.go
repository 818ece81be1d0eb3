package quality

import (
	"strings"
	"testing"

	"github.com/studybuddy/pseo-engine/internal/types"
	"github.com/stretchr/testify/assert"
)

func fullDraft() *types.DraftPage {
	return &types.DraftPage{
		Content:         strings.Repeat("word ", MinWords),
		QuickAnswer:     "Yes, StudyBuddy is free to start with unlimited tutoring.",
		MetaTitle:       "Failing Maths Grade 12? Get Free 24/7 Help | StudyBuddy",
		MetaDescription: "Get free 24/7 AI tutoring for grade 12 mathematics. No credit card required, unlimited questions, CAPS aligned.",
		FAQs: []types.FAQ{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
			{Question: "q3", Answer: "a3"},
			{Question: "q4", Answer: "a4"},
			{Question: "q5", Answer: "a5"},
		},
	}
}

func TestEvaluateFullMarks(t *testing.T) {
	assert.Equal(t, 10, Evaluate(fullDraft()))
}

func TestEvaluateEmptyDraft(t *testing.T) {
	assert.Equal(t, 0, Evaluate(&types.DraftPage{}))
}

func TestEvaluateWordCountBands(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{words: 1200, want: 3},
		{words: 1000, want: 3},
		{words: 900, want: 2},
		{words: 600, want: 1},
		{words: 200, want: 0},
	}

	for _, tt := range tests {
		draft := fullDraft()
		draft.Content = strings.TrimSpace(strings.Repeat("word ", tt.words))
		// Isolate the word-count component: full draft scores 10 with 3
		// word-count points.
		assert.Equal(t, 7+tt.want, Evaluate(draft), "words=%d", tt.words)
	}
}

func TestEvaluateFAQBands(t *testing.T) {
	tests := []struct {
		faqs int
		want int
	}{
		{faqs: 6, want: 3},
		{faqs: 5, want: 3},
		{faqs: 3, want: 2},
		{faqs: 1, want: 1},
		{faqs: 0, want: 0},
	}

	for _, tt := range tests {
		draft := fullDraft()
		draft.FAQs = make([]types.FAQ, tt.faqs)
		assert.Equal(t, 7+tt.want, Evaluate(draft), "faqs=%d", tt.faqs)
	}
}

func TestEvaluateMetadataBounds(t *testing.T) {
	draft := fullDraft()
	draft.MetaTitle = strings.Repeat("x", MetaTitleMaxLen+1)
	assert.Equal(t, 9, Evaluate(draft))

	draft = fullDraft()
	draft.MetaDescription = "too short"
	assert.Equal(t, 9, Evaluate(draft))

	draft = fullDraft()
	draft.MetaDescription = strings.Repeat("x", MetaDescriptionMaxLen+1)
	assert.Equal(t, 9, Evaluate(draft))
}

func TestEvaluateMissingQuickAnswer(t *testing.T) {
	draft := fullDraft()
	draft.QuickAnswer = "   "
	assert.Equal(t, 8, Evaluate(draft))
}

func TestExhaustedScore(t *testing.T) {
	tests := []struct {
		uniqueness float64
		want       int
	}{
		{uniqueness: 0, want: 3},
		{uniqueness: 45, want: 7},
		{uniqueness: 69.9, want: 9},
		{uniqueness: 100, want: 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExhaustedScore(tt.uniqueness), "uniqueness=%v", tt.uniqueness)
	}
}
