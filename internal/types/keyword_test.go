package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     bool
	}{
		{name: "pain-point", category: CategoryPainPoint, want: true},
		{name: "exam-prep", category: CategoryExamPrep, want: true},
		{name: "comparison", category: CategoryComparison, want: true},
		{name: "pricing", category: CategoryPricing, want: true},
		{name: "locale", category: CategoryLocale, want: true},
		{name: "unknown", category: Category("informational"), want: false},
		{name: "empty", category: Category(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Valid())
		})
	}
}

func TestKeywordRecordJSONRoundTrip(t *testing.T) {
	record := KeywordRecord{
		Keyword:  "failing mathematics grade 12 need help fast",
		Category: CategoryPainPoint,
		Substitutions: Substitutions{
			Subject: "Mathematics",
			Grade:   12,
		},
		PriorityClass: 1,
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded KeywordRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record, decoded)
}

func TestSubstitutionsOmitsAbsentDimensions(t *testing.T) {
	record := KeywordRecord{
		Keyword:  "ai tutor vs traditional tutor which is better",
		Category: CategoryComparison,
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "subject")
	assert.NotContains(t, string(data), "grade")
	assert.NotContains(t, string(data), "place")
}
