package taxonomy

import "github.com/studybuddy/pseo-engine/internal/types"

// DefaultDimensions covers the high-demand subjects, target grades and
// suburbs the marketing site focuses on.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Subjects: []string{
			"Mathematics",
			"Physical Sciences",
			"Life Sciences",
			"English",
			"Accounting",
			"Economics",
		},
		Grades: []int{10, 11, 12},
		Places: []string{
			"Sandton", "Rosebank", "Randburg",
			"Centurion", "Menlyn", "Brooklyn",
			"Rondebosch", "Claremont", "Constantia",
			"Umhlanga", "Ballito", "Westville",
		},
	}
}

// DefaultTemplates is the built-in keyword strategy, ordered by expected
// conversion value: pain points and exam prep first, then comparisons,
// pricing and suburb pages.
func DefaultTemplates() []Template {
	return []Template{
		// Pain points, highest intent
		{Pattern: "failing {subject} grade {grade} need help fast", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "grade {grade} {subject} tutor for struggling students", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "weekend {subject} tutor grade {grade}", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "best tutor for my child grade {grade} {subject}", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "struggling with {subject} how to improve quickly", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "last minute {subject} help matric finals", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "urgent {subject} tutoring matric exams 2026", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "24/7 {subject} help for matric students", Category: types.CategoryPainPoint, PriorityClass: 1},
		{Pattern: "how to pass matric {subject} in 3 months", Category: types.CategoryPainPoint, PriorityClass: 1},

		// Exam prep
		{Pattern: "{subject} exam tips grade {grade}", Category: types.CategoryExamPrep, PriorityClass: 1},
		{Pattern: "how to ace {subject} matric exams", Category: types.CategoryExamPrep, PriorityClass: 1},
		{Pattern: "matric {subject} crash course last minute", Category: types.CategoryExamPrep, PriorityClass: 1},
		{Pattern: "{subject} exam revision help grade 12", Category: types.CategoryExamPrep, PriorityClass: 1},

		// Comparisons, ready-to-buy
		{Pattern: "ai tutor vs traditional tutor which is better", Category: types.CategoryComparison, PriorityClass: 1},
		{Pattern: "online tutoring vs in-person for matric students", Category: types.CategoryComparison, PriorityClass: 1},
		{Pattern: "group tutoring vs one-on-one which works better", Category: types.CategoryComparison, PriorityClass: 2},

		// Pricing
		{Pattern: "affordable matric tutoring under r100 per month", Category: types.CategoryPricing, PriorityClass: 1},
		{Pattern: "cheapest online tutor for grade {grade} {subject}", Category: types.CategoryPricing, PriorityClass: 2},
		{Pattern: "how much does a good tutor cost south africa", Category: types.CategoryPricing, PriorityClass: 2},

		// Suburb pages, local intent
		{Pattern: "{subject} tutor {place} grade {grade}", Category: types.CategoryLocale, PriorityClass: 2},
		{Pattern: "affordable tutoring {place} matric students", Category: types.CategoryLocale, PriorityClass: 2},
	}
}
