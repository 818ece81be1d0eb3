package executor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/pseo-engine/internal/retry"
	"github.com/studybuddy/pseo-engine/internal/store"
	"github.com/studybuddy/pseo-engine/internal/synthesis"
	"github.com/studybuddy/pseo-engine/internal/taxonomy"
	"github.com/studybuddy/pseo-engine/internal/types"
	"github.com/studybuddy/pseo-engine/internal/uniqueness"
)

// These tests run the real pipeline end to end: taxonomy expansion through
// the template strategy, retry loop and filesystem store, with only the
// pacing sleeps stubbed out.

func skipSleep(context.Context, time.Duration) error { return nil }

func pipelineExecutor(st store.Store, corpus *uniqueness.Corpus) *Executor {
	controller := retry.NewController(&synthesis.TemplateStrategy{}, corpus)
	e := New(controller, st)
	e.Sleep = skipSleep
	return e
}

func TestPipeline_ExpandedKeywordsAllLandInIndex(t *testing.T) {
	records, err := taxonomy.Expand(
		[]taxonomy.Template{{Pattern: "failing {subject} grade {grade} need help fast", Category: types.CategoryPainPoint}},
		taxonomy.Dimensions{Subjects: []string{"maths", "physical science"}, Grades: []int{10, 12}},
	)
	require.NoError(t, err)
	require.Len(t, records, 4)

	st, err := store.NewFSStore(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	jobs := make([]Job, 0, len(records))
	for _, kw := range records {
		jobs = append(jobs, Job{Keyword: kw})
	}

	e := pipelineExecutor(st, uniqueness.NewCorpus())
	outcome, err := e.RunBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.False(t, outcome.Aborted)
	require.Len(t, outcome.Outcomes, 4)

	index, err := st.Index(context.Background())
	require.NoError(t, err)
	require.Len(t, index, 4)

	slugs := make(map[string]bool, len(index))
	for _, entry := range index {
		slugs[entry.Slug] = true
	}
	for _, want := range []string{
		"failing-maths-grade-10-need-help-fast",
		"failing-maths-grade-12-need-help-fast",
		"failing-physical-science-grade-10-need-help-fast",
		"failing-physical-science-grade-12-need-help-fast",
	} {
		assert.True(t, slugs[want], "index missing %s", want)
	}
}

func TestPipeline_RegenerationKeepsPagePublished(t *testing.T) {
	kw := types.KeywordRecord{Keyword: "failing maths grade 12 need help fast", Category: types.CategoryPainPoint}

	dir := t.TempDir()
	st, err := store.NewFSStore(dir)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	e := pipelineExecutor(st, uniqueness.NewCorpus())
	outcome, err := e.RunBatch(context.Background(), []Job{{Keyword: kw}})
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Generated())

	first, err := st.GetPage(context.Background(), "failing-maths-grade-12-need-help-fast")
	require.NoError(t, err)
	require.True(t, first.Published)

	// second run: the corpus is seeded from the store and the job carries
	// the stored body, exactly as the generate command wires a refresh
	corpus := uniqueness.NewCorpus()
	stored, err := st.ListPages(context.Background())
	require.NoError(t, err)
	for _, page := range stored {
		corpus.Add(page.Content)
	}

	e = pipelineExecutor(st, corpus)
	outcome, err = e.RunBatch(context.Background(), []Job{{Keyword: kw, ExistingContent: first.Content}})
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Generated())

	second, err := st.GetPage(context.Background(), "failing-maths-grade-12-need-help-fast")
	require.NoError(t, err)
	assert.True(t, second.Published, "a refresh must not unpublish the page")
	assert.GreaterOrEqual(t, second.UniquenessScore, retry.DefaultThreshold)

	index, err := st.Index(context.Background())
	require.NoError(t, err)
	assert.Len(t, index, 1)
}
