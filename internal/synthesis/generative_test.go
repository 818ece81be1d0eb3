package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/pseo-engine/internal/llm"
	"github.com/studybuddy/pseo-engine/internal/quality"
	"github.com/studybuddy/pseo-engine/internal/types"
	"google.golang.org/api/googleapi"
)

// fakeClient is a canned llm.Client that records the last prompt it saw
type fakeClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func longBody() string {
	return strings.TrimSpace(strings.Repeat("Mathematics practice builds exam confidence one topic at a time. ", 40))
}

func cannedResponse(content string) string {
	payload := fmt.Sprintf(`{"content": %q, "metaTitle": "Maths Help That Works", "metaDescription": "Get targeted maths help aligned with the CAPS curriculum, with unlimited practice and instant feedback for South African students.", "faqs": [{"question": "How fast can I improve?", "answer": "Most students improve within weeks."}]}`, content)
	return "Here is your page:\n```json\n" + payload + "\n```"
}

func TestGenerativeStrategy_Synthesize(t *testing.T) {
	client := &fakeClient{response: cannedResponse(longBody())}
	s := NewGenerativeStrategy(client)
	s.Now = fixedClock
	kw := testKeyword(types.CategoryPainPoint)

	draft, err := s.Synthesize(context.Background(), kw, "", types.Variation{})
	require.NoError(t, err)

	assert.Equal(t, kw.Keyword, draft.TargetKeyword)
	assert.Equal(t, "fake-model", draft.GenerationModel)
	assert.Equal(t, "Maths Help That Works", draft.MetaTitle)
	assert.Len(t, draft.FAQs, 1)
	assert.NotEmpty(t, draft.QuickAnswer)
	assert.Equal(t, "2026-09-01", draft.Authorship.ReviewDate)

	// structural guarantees hold even for model-written bodies: the word
	// floor is enforced and a link-poor body gets exactly one link added
	assert.GreaterOrEqual(t, quality.WordCount(draft.Content), quality.MinWords)
	assert.Equal(t, 1, countInternalLinks(draft.Content))
	assert.Equal(t, 1, strings.Count(draft.Content, "Ready to take the next step?"))

	// prompt carries the keyword and the uniqueness constraints
	assert.Contains(t, client.lastPrompt, kw.Keyword)
	assert.Contains(t, client.lastPrompt, "Return ONLY valid JSON")
}

func TestGenerativeStrategy_ControlCharsAndWrappedJSON(t *testing.T) {
	body := longBody()
	raw := "Sure!\x00 Here it is:\n" + `{"content": "` + body + `", "metaTitle": "T", "metaDescription": "D"}` + "\ntrailing prose"
	client := &fakeClient{response: raw}
	s := NewGenerativeStrategy(client)
	s.Now = fixedClock

	draft, err := s.Synthesize(context.Background(), testKeyword(types.CategoryPainPoint), "", types.Variation{})
	require.NoError(t, err)
	assert.Contains(t, draft.Content, "Mathematics practice builds exam confidence")
}

func TestGenerativeStrategy_MissingFAQsAccepted(t *testing.T) {
	raw := `{"content": "` + longBody() + `", "metaTitle": "T", "metaDescription": "D"}`
	client := &fakeClient{response: raw}
	s := NewGenerativeStrategy(client)
	s.Now = fixedClock

	draft, err := s.Synthesize(context.Background(), testKeyword(types.CategoryExamPrep), "", types.Variation{})
	require.NoError(t, err)
	assert.NotNil(t, draft.FAQs)
	assert.Empty(t, draft.FAQs)
}

func TestGenerativeStrategy_UnparsableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no JSON at all", response: "I cannot produce that page."},
		{name: "unbalanced object", response: `{"content": "oops"`},
		{name: "empty content field", response: `{"content": "   ", "metaTitle": "T"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response}
			s := NewGenerativeStrategy(client)

			_, err := s.Synthesize(context.Background(), testKeyword(types.CategoryPainPoint), "", types.Variation{})
			var synthErr *SynthesisError
			require.ErrorAs(t, err, &synthErr)
			assert.False(t, IsQuota(err))
		})
	}
}

func TestGenerativeStrategy_QuotaErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantQuota bool
	}{
		{name: "http 429", err: &googleapi.Error{Code: 429, Message: "rate limited"}, wantQuota: true},
		{name: "http 402", err: &googleapi.Error{Code: 402, Message: "payment required"}, wantQuota: true},
		{name: "quota in message", err: errors.New("generateContent: quota exceeded for project"), wantQuota: true},
		{name: "billing in message", err: errors.New("billing account disabled"), wantQuota: true},
		{name: "resource exhausted", err: errors.New("rpc error: RESOURCE_EXHAUSTED"), wantQuota: true},
		{name: "plain server error", err: &googleapi.Error{Code: 500, Message: "internal"}, wantQuota: false},
		{name: "timeout", err: errors.New("context deadline exceeded"), wantQuota: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{err: tt.err}
			s := NewGenerativeStrategy(client)

			_, err := s.Synthesize(context.Background(), testKeyword(types.CategoryPainPoint), "", types.Variation{})
			require.Error(t, err)
			assert.Equal(t, tt.wantQuota, IsQuota(err))
			if !tt.wantQuota {
				var synthErr *SynthesisError
				assert.ErrorAs(t, err, &synthErr)
			}
		})
	}
}

func TestGenerativeStrategy_RetryNote(t *testing.T) {
	client := &fakeClient{response: cannedResponse(longBody())}
	s := NewGenerativeStrategy(client)
	s.Now = fixedClock
	kw := testKeyword(types.CategoryPainPoint)

	v := types.RetryVariation(1)
	v.Attempt = 1
	v.PriorScore = 42
	_, err := s.Synthesize(context.Background(), kw, "", v)
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "42")
	assert.Contains(t, client.lastPrompt, "attempt")

	// first attempts carry no retry note
	client2 := &fakeClient{response: cannedResponse(longBody())}
	s2 := NewGenerativeStrategy(client2)
	s2.Now = fixedClock
	_, err = s2.Synthesize(context.Background(), kw, "", types.Variation{})
	require.NoError(t, err)
	assert.NotContains(t, client2.lastPrompt, "previous attempt")
}
