package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEntryOf(t *testing.T) {
	updated := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	page := &PageRecord{
		ID:            "pain-failing-mathematics-grade-12-need-help-fast",
		Slug:          "failing-mathematics-grade-12-need-help-fast",
		Category:      CategoryPainPoint,
		TargetKeyword: "failing mathematics grade 12 need help fast",
		Title:         "Failing mathematics grade 12 need help fast",
		Content:       "<p>body</p>",
		LastUpdated:   updated,
	}

	entry := IndexEntryOf(page)

	assert.Equal(t, page.Slug, entry.Slug)
	assert.Equal(t, page.Title, entry.Title)
	assert.Equal(t, CategoryPainPoint, entry.Category)
	assert.Equal(t, updated, entry.LastUpdated)
}

func TestPageRecordJSONShape(t *testing.T) {
	page := PageRecord{
		ID:              "exam-mathematics-exam-tips-grade-12",
		Slug:            "mathematics-exam-tips-grade-12",
		Category:        CategoryExamPrep,
		TargetKeyword:   "mathematics exam tips grade 12",
		Title:           "Mathematics exam tips grade 12",
		MetaTitle:       "Mathematics Exam Tips Grade 12 | FREE Exam Prep",
		MetaDescription: "Exam-focused help for grade 12 mathematics.",
		Content:         "<h2>Tips</h2>",
		QuickAnswer:     "Focus on high-value topics first.",
		FAQs: []FAQ{
			{Question: "Is it too late?", Answer: "No."},
		},
		Citations: []string{"DBE Exam Guidelines 2025"},
		Keywords:  []string{"mathematics", "exam", "tips"},
		Authorship: Authorship{
			Name:       "StudyBuddy Editorial Team",
			Role:       "Educational Content Specialists",
			ReviewedBy: "Senior Examination Specialist",
			ReviewDate: "2026-08-14",
		},
		QualityScore:    9,
		UniquenessScore: 84.5,
		Published:       true,
		LastUpdated:     time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded PageRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, page, decoded)

	// The rendering layer reads these exact field names.
	assert.Contains(t, string(data), `"slug"`)
	assert.Contains(t, string(data), `"published"`)
	assert.Contains(t, string(data), `"quick_answer"`)
	assert.Contains(t, string(data), `"uniqueness_score"`)
}

func TestDraftPageHasNoScores(t *testing.T) {
	data, err := json.Marshal(DraftPage{Slug: "s", Content: "c"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quality_score")
	assert.NotContains(t, string(data), "uniqueness_score")
	assert.NotContains(t, string(data), "published")
}
