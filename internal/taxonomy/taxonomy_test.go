package taxonomy

import (
	"testing"

	"github.com/studybuddy/pseo-engine/internal/slug"
	"github.com/studybuddy/pseo-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCartesianProduct(t *testing.T) {
	templates := []Template{
		{Pattern: "failing {subject} grade {grade} need help fast", Category: types.CategoryPainPoint, PriorityClass: 1},
	}
	dims := Dimensions{
		Subjects: []string{"Mathematics", "Accounting"},
		Grades:   []int{11, 12},
	}

	records, err := Expand(templates, dims)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "failing mathematics grade 11 need help fast", records[0].Keyword)
	assert.Equal(t, "failing mathematics grade 12 need help fast", records[1].Keyword)
	assert.Equal(t, "failing accounting grade 11 need help fast", records[2].Keyword)
	assert.Equal(t, "failing accounting grade 12 need help fast", records[3].Keyword)

	// Every record carries its dimension bindings and a distinct slug.
	slugs := make(map[string]bool)
	for _, r := range records {
		assert.Equal(t, types.CategoryPainPoint, r.Category)
		assert.NotEmpty(t, r.Substitutions.Subject)
		assert.NotZero(t, r.Substitutions.Grade)
		slugs[slug.Make(r.Keyword)] = true
	}
	assert.Len(t, slugs, 4)
}

func TestExpandDeterministicOrder(t *testing.T) {
	templates := DefaultTemplates()
	dims := DefaultDimensions()

	first, err := Expand(templates, dims)
	require.NoError(t, err)
	second, err := Expand(templates, dims)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandTemplateWithoutPlaceholders(t *testing.T) {
	templates := []Template{
		{Pattern: "ai tutor vs traditional tutor which is better", Category: types.CategoryComparison, PriorityClass: 1},
	}

	records, err := Expand(templates, Dimensions{Subjects: []string{"Mathematics"}})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "ai tutor vs traditional tutor which is better", records[0].Keyword)
	assert.Equal(t, types.Substitutions{}, records[0].Substitutions)
}

func TestExpandPlaceDimension(t *testing.T) {
	templates := []Template{
		{Pattern: "{subject} tutor {place} grade {grade}", Category: types.CategoryLocale, PriorityClass: 2},
	}
	dims := Dimensions{
		Subjects: []string{"Mathematics"},
		Grades:   []int{12},
		Places:   []string{"Sandton"},
	}

	records, err := Expand(templates, dims)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "mathematics tutor sandton grade 12", records[0].Keyword)
	assert.Equal(t, "Sandton", records[0].Substitutions.Place)
}

func TestExpandConfigFaults(t *testing.T) {
	tests := []struct {
		name      string
		templates []Template
		dims      Dimensions
		wantMsg   string
	}{
		{
			name: "unknown placeholder",
			templates: []Template{
				{Pattern: "tutor for {topic} help", Category: types.CategoryPainPoint},
			},
			dims:    Dimensions{Subjects: []string{"Mathematics"}},
			wantMsg: "unresolvable placeholder {topic}",
		},
		{
			name: "unterminated placeholder",
			templates: []Template{
				{Pattern: "failing {subject grade 12", Category: types.CategoryPainPoint},
			},
			dims:    Dimensions{Subjects: []string{"Mathematics"}},
			wantMsg: "unterminated placeholder",
		},
		{
			name: "missing dimension values",
			templates: []Template{
				{Pattern: "{subject} tutor {place} grade {grade}", Category: types.CategoryLocale},
			},
			dims:    Dimensions{Subjects: []string{"Mathematics"}, Grades: []int{12}},
			wantMsg: "no places supplied",
		},
		{
			name: "invalid category",
			templates: []Template{
				{Pattern: "maths tutor", Category: types.Category("blog")},
			},
			wantMsg: "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.templates, tt.dims)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefaultTemplatesExpandCleanly(t *testing.T) {
	records, err := Expand(DefaultTemplates(), DefaultDimensions())
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	for _, r := range records {
		assert.True(t, r.Category.Valid())
		assert.NotContains(t, r.Keyword, "{")
		assert.NotContains(t, r.Keyword, "}")
	}
}
