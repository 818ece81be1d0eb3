package types

// OpeningStyle selects how a page's first paragraph is written.
// Superficially similar keywords get different openings so the generated
// corpus does not all read identically.
type OpeningStyle string

// OpeningStyle constants define the interchangeable opening paragraph styles
const (
	OpeningEmpathy   OpeningStyle = "empathy"
	OpeningStatistic OpeningStyle = "statistic"
	OpeningQuestion  OpeningStyle = "question"
	OpeningStory     OpeningStyle = "story"
	OpeningUrgent    OpeningStyle = "urgent"
	OpeningDirect    OpeningStyle = "direct"
)

// Tone is the register a synthesis attempt writes in
type Tone string

// Tone constants define the alternating tone presets used across retries
const (
	ToneConversational Tone = "conversational"
	ToneProfessional   Tone = "professional"
	ToneEmpathetic     Tone = "empathetic"
)

// Variation is a structured variation descriptor passed into the synthesizer.
// Retries escalate by swapping presets rather than concatenating prose
// instructions, which keeps the retry contract testable.
type Variation struct {
	Opening    OpeningStyle `json:"opening"`
	Tone       Tone         `json:"tone"`
	ExampleSet int          `json:"example_set"`

	// Attempt and PriorScore carry retry context into the synthesizer's
	// feedback note. Both are zero on first attempts.
	Attempt    int     `json:"attempt,omitempty"`
	PriorScore float64 `json:"prior_score,omitempty"`
}

// retryPresets are the alternating tone/style presets applied on retry.
// Attempt indexes beyond the preset count cycle.
var retryPresets = []Variation{
	{Opening: OpeningQuestion, Tone: ToneProfessional, ExampleSet: 1},
	{Opening: OpeningStory, Tone: ToneConversational, ExampleSet: 2},
	{Opening: OpeningStatistic, Tone: ToneEmpathetic, ExampleSet: 3},
}

// RetryVariation returns the variation preset for a retry attempt.
// Attempt numbering starts at 1 for the first retry.
func RetryVariation(attempt int) Variation {
	if attempt < 1 {
		attempt = 1
	}
	return retryPresets[(attempt-1)%len(retryPresets)]
}
