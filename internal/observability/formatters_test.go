package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studybuddy/pseo-engine/internal/types"
)

func TestPrintKeywordSet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set := types.KeywordSet{Keywords: []types.KeywordRecord{
		{Keyword: "failing maths grade 12", Category: types.CategoryPainPoint},
		{Keyword: "maths exam prep grade 11", Category: types.CategoryExamPrep},
		{Keyword: "ai tutor vs private tutor", Category: types.CategoryComparison},
	}}

	p.PrintKeywordSet(set)
	output := buf.String()

	assert.Contains(t, output, "EXPANDED KEYWORD SET")
	assert.Contains(t, output, "Total keywords: 3")
	assert.Contains(t, output, "failing maths grade 12")
	assert.Contains(t, output, "pain-point (1)")
}

func TestPrintKeywordSetTruncatesLongCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set := types.KeywordSet{}
	for i := 0; i < 8; i++ {
		set.Keywords = append(set.Keywords, types.KeywordRecord{
			Keyword:  "keyword-" + string(rune('a'+i)),
			Category: types.CategoryPricing,
		})
	}

	p.PrintKeywordSet(set)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintPageResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPageResult(&types.PageRecord{
		Slug:            "failing-maths-grade-12",
		Category:        types.CategoryPainPoint,
		UniquenessScore: 84.5,
		QualityScore:    9,
		Published:       true,
	}, 2)
	output := buf.String()

	assert.Contains(t, output, "PAGE GENERATED")
	assert.Contains(t, output, "failing-maths-grade-12")
	assert.Contains(t, output, "84.5")
	assert.Contains(t, output, "9/10")
	assert.Contains(t, output, "published")

	// nil pages print nothing
	buf.Reset()
	p.PrintPageResult(nil, 0)
	assert.Empty(t, buf.String())
}

func TestPrintPageResultDraftStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPageResult(&types.PageRecord{Slug: "s", Published: false}, 4)
	assert.Contains(t, buf.String(), "draft (below uniqueness threshold)")
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary(12, 1, 3, false)
	output := buf.String()
	assert.Contains(t, output, "GENERATION SUMMARY")
	assert.Contains(t, output, "Generated:  12")
	assert.NotContains(t, output, "aborted")

	buf.Reset()
	p.PrintBatchSummary(2, 0, 0, true)
	assert.Contains(t, buf.String(), "aborted early on a quota/billing fault")
}

func TestPrintJobFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobFailure("failing maths", errors.New("no response"))
	assert.Contains(t, buf.String(), "failing maths")
	assert.Contains(t, buf.String(), "no response")
}
