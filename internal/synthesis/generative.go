package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/studybuddy/pseo-engine/internal/llm"
	"github.com/studybuddy/pseo-engine/internal/prompts"
	"github.com/studybuddy/pseo-engine/internal/quality"
	"github.com/studybuddy/pseo-engine/internal/slug"
	"github.com/studybuddy/pseo-engine/internal/types"
)

const generationPromptsFile = "generation.json"

// GenerativeStrategy asks a language model for the page body and metadata,
// constrained to a JSON contract. Structural guarantees (word floor, internal
// links, FAQ, authorship) are enforced here rather than trusted to the model.
type GenerativeStrategy struct {
	Client llm.Client
	Tier   llm.ModelTier

	// Now returns the timestamp used for review dates. Defaults to time.Now.
	Now func() time.Time
}

// NewGenerativeStrategy wires a strategy to a client at the standard tier
func NewGenerativeStrategy(client llm.Client) *GenerativeStrategy {
	return &GenerativeStrategy{Client: client, Tier: llm.TierStandard}
}

func (s *GenerativeStrategy) Name() string {
	if s.Client != nil {
		return s.Client.GetModel(s.tier())
	}
	return string(s.tier())
}

func (s *GenerativeStrategy) tier() llm.ModelTier {
	if s.Tier == "" {
		return llm.TierStandard
	}
	return s.Tier
}

func (s *GenerativeStrategy) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// generatedPayload is the JSON contract the model must return
type generatedPayload struct {
	Content         string      `json:"content"`
	MetaTitle       string      `json:"metaTitle"`
	MetaDescription string      `json:"metaDescription"`
	FAQs            []types.FAQ `json:"faqs"`
}

func (s *GenerativeStrategy) Synthesize(ctx context.Context, kw types.KeywordRecord, existingContent string, v types.Variation) (*types.DraftPage, error) {
	if !kw.Category.Valid() {
		return nil, &SynthesisError{Keyword: kw.Keyword, Message: fmt.Sprintf("unknown category %q", kw.Category)}
	}

	prompt, err := s.buildPrompt(kw, v)
	if err != nil {
		return nil, &SynthesisError{Keyword: kw.Keyword, Message: "building prompt", Cause: err}
	}

	raw, err := s.Client.GenerateJSON(ctx, prompt, s.tier())
	if err != nil {
		return nil, classifyProviderError(kw.Keyword, err)
	}

	payload, err := parsePayload(raw)
	if err != nil {
		return nil, &SynthesisError{Keyword: kw.Keyword, Message: "parsing model response", Cause: err}
	}

	body := ensureMinWords(payload.Content, kw.Category)
	body = ensureInternalLinks(body, kw.Category, kw.Keyword)
	if !strings.Contains(body, faqHeading) && len(payload.FAQs) > 0 {
		body = body + "\n\n" + faqSection(payload.FAQs)
	}

	title := titleFor(kw)
	metaTitle := payload.MetaTitle
	if metaTitle == "" {
		metaTitle = title + " | StudyBuddy"
	}
	metaDescription := payload.MetaDescription
	if metaDescription == "" {
		metaDescription = metaDescriptionFor(kw)
	}

	return &types.DraftPage{
		Slug:            slug.Make(kw.Keyword),
		Category:        kw.Category,
		TargetKeyword:   kw.Keyword,
		Title:           title,
		MetaTitle:       clampMeta(metaTitle, quality.MetaTitleMaxLen),
		MetaDescription: clampMeta(metaDescription, quality.MetaDescriptionMaxLen),
		Content:         body,
		QuickAnswer:     quickAnswerFor(kw),
		FAQs:            payload.FAQs,
		Citations:       citations[kw.Category],
		Keywords:        relatedKeywords(kw),
		Authorship:      authorshipFor(kw.Category, s.now().Format("2006-01-02")),
		GenerationModel: s.Name(),
	}, nil
}

func (s *GenerativeStrategy) buildPrompt(kw types.KeywordRecord, v types.Variation) (string, error) {
	tpl, err := prompts.Get(generationPromptsFile, string(kw.Category))
	if err != nil {
		return "", err
	}
	rules := prompts.MustGet(generationPromptsFile, "uniqueness-rules")

	style := chooseOpeningStyle(kw.Keyword, v)
	tone := v.Tone
	if tone == "" {
		tone = types.ToneConversational
	}

	names := make([]string, 0, 4)
	for _, t := range TestimonialSet(v.ExampleSet) {
		names = append(names, fmt.Sprintf("%s (Grade %d, %s, %s)", t.Name, t.Grade, t.Area, t.Improvement))
	}

	data := map[string]string{
		"Keyword":         kw.Keyword,
		"Opening":         string(style),
		"Tone":            string(tone),
		"ExampleNames":    strings.Join(names, "; "),
		"InternalLinks":   strings.Join(internalLinks[kw.Category], ", "),
		"UniquenessRules": rules,
	}
	if kw.Category == types.CategoryLocale {
		data["Place"] = titleCase(kw.Substitutions.Place)
	}
	prompt := prompts.Format(tpl, data)

	if v.Attempt > 0 {
		noteTpl := prompts.MustGet(generationPromptsFile, "retry-note")
		note := prompts.Format(noteTpl, map[string]string{
			"Score":      fmt.Sprintf("%.0f", v.PriorScore),
			"Attempt":    fmt.Sprintf("%d", v.Attempt),
			"ExampleSet": fmt.Sprintf("%d", v.ExampleSet),
			"Opening":    string(style),
			"Tone":       string(tone),
		})
		prompt = prompt + "\n\n" + note
	}
	return prompt, nil
}

// parsePayload recovers the JSON contract from a raw model response. Control
// characters are stripped first, then the outermost JSON object is located,
// tolerating prose the model wraps around it.
func parsePayload(raw string) (*generatedPayload, error) {
	clean := llm.StripControlChars(raw)
	obj := llm.ExtractJSONObject(clean)
	if obj == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var payload generatedPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, fmt.Errorf("decoding response object: %w", err)
	}
	if strings.TrimSpace(payload.Content) == "" {
		return nil, fmt.Errorf("response missing content field")
	}
	if payload.FAQs == nil {
		payload.FAQs = []types.FAQ{}
	}
	return &payload, nil
}
