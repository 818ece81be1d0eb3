package synthesis

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/studybuddy/pseo-engine/internal/quality"
	"github.com/studybuddy/pseo-engine/internal/slug"
	"github.com/studybuddy/pseo-engine/internal/types"
)

// TemplateStrategy assembles pages deterministically from category templates,
// rotating openings by keyword hash so sibling pages do not share first
// paragraphs. It needs no network access and is the fallback when the
// generative strategy is unavailable.
type TemplateStrategy struct {
	// Now returns the timestamp used for review dates. Defaults to time.Now.
	Now func() time.Time
}

func (s *TemplateStrategy) Name() string { return "template-v2" }

func (s *TemplateStrategy) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TemplateStrategy) Synthesize(ctx context.Context, kw types.KeywordRecord, existingContent string, v types.Variation) (*types.DraftPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !kw.Category.Valid() {
		return nil, &SynthesisError{Keyword: kw.Keyword, Message: fmt.Sprintf("unknown category %q", kw.Category)}
	}

	opening := chooseOpening(kw.Keyword, v)
	body := existingContent
	if body == "" {
		body = s.buildBody(kw, opening, v)
	}
	body = ensureMinWords(body, kw.Category)
	body = ensureInternalLinks(body, kw.Category, kw.Keyword)

	title := titleFor(kw)
	draft := &types.DraftPage{
		Slug:            slug.Make(kw.Keyword),
		Category:        kw.Category,
		TargetKeyword:   kw.Keyword,
		Title:           title,
		MetaTitle:       clampMeta(title+" | StudyBuddy", quality.MetaTitleMaxLen),
		MetaDescription: metaDescriptionFor(kw),
		Content:         body,
		QuickAnswer:     quickAnswerFor(kw),
		FAQs:            faqsFor(kw),
		Citations:       citations[kw.Category],
		Keywords:        relatedKeywords(kw),
		Authorship:      authorshipFor(kw.Category, s.now().Format("2006-01-02")),
		GenerationModel: s.Name(),
	}
	return draft, nil
}

// chooseOpeningStyle picks the opening style. A populated variation wins;
// otherwise the keyword hash selects deterministically.
func chooseOpeningStyle(keyword string, v types.Variation) types.OpeningStyle {
	if v.Opening != "" {
		return v.Opening
	}
	h := fnv.New32a()
	h.Write([]byte(keyword))
	return openingOrder[int(h.Sum32())%len(openingOrder)]
}

func chooseOpening(keyword string, v types.Variation) string {
	build, ok := openingBuilders[chooseOpeningStyle(keyword, v)]
	if !ok {
		build = openingBuilders[types.OpeningDirect]
	}
	return build(strings.ToLower(keyword))
}

func (s *TemplateStrategy) buildBody(kw types.KeywordRecord, opening string, v types.Variation) string {
	var b strings.Builder
	b.WriteString("# " + titleFor(kw) + "\n\n")
	b.WriteString(opening + "\n\n")

	switch kw.Category {
	case types.CategoryPainPoint:
		b.WriteString(painPointSections(kw))
	case types.CategoryExamPrep:
		b.WriteString(examPrepSections(kw))
	case types.CategoryComparison:
		b.WriteString(comparisonSections(kw))
	case types.CategoryPricing:
		b.WriteString(pricingSections(kw))
	case types.CategoryLocale:
		b.WriteString(localeSections(kw))
	}

	b.WriteString(testimonialSection(TestimonialSet(v.ExampleSet), kw))
	b.WriteString(nextStepsSection(kw.Category))
	b.WriteString(faqSection(faqsFor(kw)))
	return b.String()
}

func nextStepsSection(category types.Category) string {
	links := internalLinks[category]
	if len(links) == 0 {
		return ""
	}
	return "## Your Next Step\n\nYou do not have to figure this out alone. " +
		strings.Join(links, " or ") + " to see how quickly things can turn around.\n\n"
}

func painPointSections(kw types.KeywordRecord) string {
	subject := subjectOf(kw)
	return fmt.Sprintf(`## Why Students Fall Behind in %[1]s

Falling behind in %[2]s rarely happens overnight. It usually starts with one confusing topic, then the next lesson builds on it, and within a few weeks the gap feels impossible to close. Large classes, limited teacher time, and exam pressure make it worse.

The good news: the gap closes faster than it opened when you get the right help.

## How StudyBuddy Turns Things Around

StudyBuddy's AI tutor starts by finding exactly which concepts you're missing, then rebuilds your understanding from that point:

- **Diagnostic assessment** finds the real gaps, not just the symptoms
- **Step-by-step explanations** in plain language, repeated as many times as you need
- **Unlimited practice questions** matched to the CAPS curriculum
- **Instant feedback** so mistakes become lessons, not habits
- **Progress tracking** so you and your parents can see the improvement

## What to Do This Week

1. Stop guessing where the problem is. Take the free diagnostic.
2. Spend 30 focused minutes a day on your weakest topic.
3. Redo every question you get wrong until you can explain it.
4. Use past papers once your topic marks pass 60%%.

`, titleCase(subject), subject)
}

func examPrepSections(kw types.KeywordRecord) string {
	subject := subjectOf(kw)
	return fmt.Sprintf(`## Your Exam Preparation Plan

Effective exam prep for %[1]s is about structure, not cramming. Here is the approach our top-performing students follow:

### 8 Weeks Out

- Map every topic in the CAPS %[1]s syllabus and rate your confidence on each
- Start with your two weakest topics, 40 minutes a day
- Keep a mistakes notebook and review it every Sunday

### 4 Weeks Out

- Switch to full past papers under timed conditions
- Mark with the official memoranda and study the mark allocation
- Drill the question styles examiners reuse year after year

### Exam Week

- Light revision only, from your mistakes notebook and summary notes
- Sleep, eat, and arrive early. A tired brain loses marks a prepared brain earned.

## How StudyBuddy Accelerates Your Prep

- **Past NSC papers with worked solutions** for every topic
- **Memo-style marking guidance** so you answer the way examiners reward
- **Smart revision** that spends your time on your weakest areas first
- **24/7 availability** for those late-night panic questions

`, subject)
}

func comparisonSections(kw types.KeywordRecord) string {
	return `## Comparing Your Tutoring Options

| | Traditional Tutor | StudyBuddy AI Tutor |
|---|---|---|
| Cost per month | R4,800 - R8,000 | Under R100 |
| Availability | 1-2 hours per week | 24/7, unlimited |
| Subjects covered | Usually one | All CAPS subjects |
| Waiting time | Days for next session | Instant answers |
| Patience | Varies | Infinite |
| CAPS alignment | Depends on tutor | Built in |

## When a Human Tutor Still Makes Sense

A good human tutor brings accountability and motivation that some students need. If your child struggles to sit down and start, a weekly in-person session can anchor their routine. Many families combine both: StudyBuddy for daily practice, a human tutor for fortnightly check-ins.

## When StudyBuddy Is the Better Choice

- You need help across multiple subjects
- Questions come up at night or on weekends
- The budget will not stretch to R300+ per hour
- You want measurable progress data, not just "the session went well"

`
}

func pricingSections(kw types.KeywordRecord) string {
	return `## What Tutoring Really Costs in South Africa

- **Private in-person tutor:** R300 - R500 per hour
- **Tutoring centre:** R1,500 - R3,000 per month per subject
- **Online human tutor:** R200 - R400 per hour
- **StudyBuddy:** under R100 per month, all subjects, unlimited use

A student having two one-hour sessions a week with a private tutor costs a family R4,800 to R8,000 every month, for a single subject.

## What You Get for Under R100

- Unlimited AI tutoring across all CAPS subjects, Grades 8 to 12
- Unlimited practice questions with instant, step-by-step feedback
- Past NSC papers with worked solutions
- Progress dashboards for parents
- No contracts, cancel anytime

## Why We Price It This Way

Quality academic support should not be a luxury. AI tutoring removes the per-hour human cost, and we pass that saving on so that any family with a smartphone can afford real help.

`
}

func localeSections(kw types.KeywordRecord) string {
	place := kw.Substitutions.Place
	if place == "" {
		place = "your area"
	}
	placeTitle := titleCase(place)
	return fmt.Sprintf(`## Tutoring Options in %[1]s

Families in %[1]s typically choose between in-person tutors, tutoring centres, and online platforms. In-person rates in the area run R250 to R450 per hour, and the best tutors have waiting lists. Travel time and scheduling add friction that busy households feel every week.

## Why %[1]s Students Choose StudyBuddy

- **No travel:** study from home in %[1]s, any time of day
- **No waiting lists:** start within minutes of signing up
- **All subjects covered:** one subscription instead of one tutor per subject
- **CAPS aligned:** the same curriculum your school in the area follows
- **Load-shedding friendly:** works on mobile data, picks up where you left off

## Getting Started from %[1]s

All you need is a phone, tablet, or computer with an internet connection. Sign up, take the free diagnostic, and your personalised study plan is ready the same day.

`, placeTitle)
}

func testimonialSection(set []Testimonial, kw types.KeywordRecord) string {
	var b strings.Builder
	b.WriteString("## Real Results from Real Students\n\n")
	for _, t := range set {
		b.WriteString(fmt.Sprintf("**%s, Grade %d, %s:** improved from %s in %s using StudyBuddy.\n\n",
			t.Name, t.Grade, t.Area, t.Improvement, t.Timeframe))
	}
	return b.String()
}

const faqHeading = "## Frequently Asked Questions"

func faqSection(faqs []types.FAQ) string {
	var b strings.Builder
	b.WriteString(faqHeading + "\n\n")
	for _, f := range faqs {
		b.WriteString("### " + f.Question + "\n\n" + f.Answer + "\n\n")
	}
	return b.String()
}

// ensureMinWords pads a draft below the word floor with expansion blocks,
// inserted ahead of the FAQ section so the FAQ stays last. The deficit picks
// the initial block set; if the draft is still short, unused blocks top it up.
func ensureMinWords(content string, category types.Category) string {
	deficit := quality.MinWords - quality.WordCount(content)
	if deficit <= 0 {
		return content
	}
	used := make(map[string]bool)
	for _, block := range blocksForDeficit(deficit, category) {
		content = insertBeforeFAQ(content, block)
		used[block] = true
	}
	for _, block := range []string{blockWhyChoose, blockProvenResults, blockStudyTips, blockHowItWorks, blockCurriculum, blockAffordable} {
		if quality.WordCount(content) >= quality.MinWords {
			break
		}
		if used[block] {
			continue
		}
		content = insertBeforeFAQ(content, block)
		used[block] = true
	}
	return content
}

func insertBeforeFAQ(content, block string) string {
	idx := strings.Index(content, faqHeading)
	if idx < 0 {
		return strings.TrimRight(content, "\n") + "\n\n" + block + "\n"
	}
	return content[:idx] + block + "\n\n" + content[idx:]
}

// ensureInternalLinks adds at most one contextual link paragraph, just past
// the midpoint, when the draft holds fewer than three internal links.
// Drafts at or above three links are left untouched.
func ensureInternalLinks(content string, category types.Category, keyword string) string {
	count := countInternalLinks(content)
	if count >= 3 {
		return content
	}
	links := internalLinks[category]
	if len(links) == 0 {
		return content
	}
	link := links[count%len(links)]
	return insertPastMidpoint(content, "Ready to take the next step? "+link+" and see the difference for yourself.")
}

func countInternalLinks(content string) int {
	return strings.Count(content, "](/")
}

// insertPastMidpoint places a paragraph at the first paragraph boundary
// after the halfway mark of the document.
func insertPastMidpoint(content, paragraph string) string {
	paras := strings.Split(content, "\n\n")
	if len(paras) < 2 {
		return content + "\n\n" + paragraph
	}
	at := len(paras)/2 + 1
	if at >= len(paras) {
		at = len(paras) - 1
	}
	out := make([]string, 0, len(paras)+1)
	out = append(out, paras[:at]...)
	out = append(out, paragraph)
	out = append(out, paras[at:]...)
	return strings.Join(out, "\n\n")
}

func subjectOf(kw types.KeywordRecord) string {
	if kw.Substitutions.Subject != "" {
		return kw.Substitutions.Subject
	}
	return "your subject"
}

func titleFor(kw types.KeywordRecord) string {
	return titleCase(kw.Keyword)
}

// titleCase uppercases the first letter of each word
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func metaDescriptionFor(kw types.KeywordRecord) string {
	base := fmt.Sprintf("%s - StudyBuddy's AI tutor helps South African students master the CAPS curriculum with unlimited practice, instant feedback, and 24/7 support.", titleFor(kw))
	return clampMeta(base, quality.MetaDescriptionMaxLen)
}

func quickAnswerFor(kw types.KeywordRecord) string {
	switch kw.Category {
	case types.CategoryPricing:
		return "StudyBuddy gives you unlimited AI tutoring across all CAPS subjects for under R100 per month, compared to R300-R500 per hour for a private tutor."
	case types.CategoryExamPrep:
		return "Start 8 weeks out with a topic confidence map, drill your weakest areas daily, then switch to timed past papers 4 weeks before the exam."
	case types.CategoryComparison:
		return "AI tutoring offers 24/7 availability and unlimited practice for under R100 per month; human tutors add accountability at R300-R500 per hour. Many families combine both."
	case types.CategoryLocale:
		return fmt.Sprintf("Students in %s can start AI tutoring within minutes: no travel, no waiting lists, all CAPS subjects for under R100 per month.", titleCase(kw.Substitutions.Place))
	default:
		return "Identify the exact topics you're missing with a free diagnostic, then rebuild your understanding with daily 30-minute sessions of targeted practice."
	}
}

func faqsFor(kw types.KeywordRecord) []types.FAQ {
	subject := subjectOf(kw)
	common := []types.FAQ{
		{
			Question: "How much does StudyBuddy cost?",
			Answer:   "Under R100 per month for unlimited tutoring across all CAPS subjects, Grades 8 to 12. No contracts, cancel anytime.",
		},
		{
			Question: "Is StudyBuddy aligned with the CAPS curriculum?",
			Answer:   "Yes. All content follows the Department of Basic Education's CAPS curriculum, including NSC past papers and memoranda.",
		},
		{
			Question: "How quickly will I see improvement?",
			Answer:   "Most students see measurable improvement within 3 to 6 weeks of consistent daily practice of 30 to 45 minutes.",
		},
	}
	switch kw.Category {
	case types.CategoryExamPrep:
		return append([]types.FAQ{
			{
				Question: fmt.Sprintf("When should I start preparing for my %s exam?", subject),
				Answer:   "Eight weeks before the exam is ideal. Start with your weakest topics, then switch to timed past papers four weeks out.",
			},
			{
				Question: "Are past NSC papers included?",
				Answer:   "Yes, with worked solutions and memo-style marking guidance so you answer the way examiners reward.",
			},
		}, common...)
	case types.CategoryComparison:
		return append([]types.FAQ{
			{
				Question: "Can AI tutoring really replace a human tutor?",
				Answer:   "For explanations and practice, yes, and it is available 24/7. Some students still benefit from a human tutor for accountability, and many families combine both.",
			},
			{
				Question: "What if I don't understand the AI's explanation?",
				Answer:   "Ask it to explain again, differently. The AI rephrases and simplifies as many times as you need, with no judgement and no clock running.",
			},
		}, common...)
	case types.CategoryLocale:
		place := titleCase(kw.Substitutions.Place)
		return append([]types.FAQ{
			{
				Question: fmt.Sprintf("Does StudyBuddy work in %s?", place),
				Answer:   fmt.Sprintf("Yes. All you need in %s is a phone, tablet, or computer with an internet connection. It works on mobile data and resumes after load-shedding.", place),
			},
			{
				Question: "Do I need to travel to a tutoring centre?",
				Answer:   "No. StudyBuddy is fully online, so you study from home at any time of day.",
			},
		}, common...)
	case types.CategoryPricing:
		return append([]types.FAQ{
			{
				Question: "Are there any hidden fees?",
				Answer:   "No. One monthly subscription covers all subjects, all features, and unlimited use. No setup costs or per-question charges.",
			},
			{
				Question: "How does this compare to a private tutor?",
				Answer:   "Two hours a week with a private tutor costs R4,800 to R8,000 per month for one subject. StudyBuddy covers every subject for under R100.",
			},
		}, common...)
	default:
		return append([]types.FAQ{
			{
				Question: fmt.Sprintf("I'm failing %s. Is it too late to catch up?", subject),
				Answer:   "No. Gaps close faster than they open with targeted help. Most struggling students recover a failing mark within one term of consistent daily practice.",
			},
			{
				Question: "How does the AI know what I'm struggling with?",
				Answer:   "A diagnostic assessment pinpoints the exact concepts you're missing, then your study plan rebuilds from that point instead of repeating what you already know.",
			},
		}, common...)
	}
}

func relatedKeywords(kw types.KeywordRecord) []string {
	out := []string{kw.Keyword}
	if s := kw.Substitutions.Subject; s != "" {
		out = append(out, s+" tutoring south africa", s+" help online")
	}
	if p := kw.Substitutions.Place; p != "" {
		out = append(out, "tutoring "+p, "online tutor "+p)
	}
	out = append(out, "ai tutor south africa", "caps curriculum help")
	return out
}

func clampMeta(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " -|")
}
