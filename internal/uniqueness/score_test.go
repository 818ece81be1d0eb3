package uniqueness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreEmptyCorpusIsMaximal(t *testing.T) {
	assert.Equal(t, 100.0, Score("any draft content at all", nil))
	assert.Equal(t, 100.0, Score("any draft content at all", []string{}))
}

func TestScoreIdenticalContentIsZero(t *testing.T) {
	content := "studybuddy helps struggling students improve fast"
	assert.InDelta(t, 0.0, Score(content, []string{content}), 0.001)
}

func TestScoreDisjointContentIsMaximal(t *testing.T) {
	draft := "alpha beta gamma delta"
	corpus := []string{"epsilon zeta eta theta"}
	assert.InDelta(t, 100.0, Score(draft, corpus), 0.001)
}

func TestScorePartialOverlap(t *testing.T) {
	// Draft set: {alpha, beta, gamma, delta}; two words shared → 50% overlap.
	draft := "alpha beta gamma delta"
	corpus := []string{"alpha beta other words entirely"}
	assert.InDelta(t, 50.0, Score(draft, corpus), 0.001)
}

func TestScoreUsesWorstCorpusEntry(t *testing.T) {
	draft := "alpha beta gamma delta"
	corpus := []string{
		"alpha unrelated text",             // 25% overlap
		"alpha beta gamma more words here", // 75% overlap, the maximum
	}
	assert.InDelta(t, 25.0, Score(draft, corpus), 0.001)
}

func TestScoreBounded(t *testing.T) {
	drafts := []string{
		"a",
		"repeated repeated repeated repeated",
		"one two three four five six seven eight nine ten",
	}
	corpus := []string{
		"one two three",
		"repeated text block",
		"completely different vocabulary set",
	}
	for _, draft := range drafts {
		got := Score(draft, corpus)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	assert.InDelta(t, 0.0, Score("Alpha BETA", []string{"alpha beta"}), 0.001)
}

func TestCorpusSnapshotIsolation(t *testing.T) {
	corpus := NewCorpus()
	corpus.Add("first accepted page")

	snapshot := corpus.Snapshot()
	corpus.Add("second accepted page")

	// Snapshots taken earlier never see later additions.
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, corpus.Len())

	// Mutating a snapshot does not reach back into the corpus.
	snapshot[0] = "tampered"
	assert.Equal(t, "first accepted page", corpus.Snapshot()[0])
}
