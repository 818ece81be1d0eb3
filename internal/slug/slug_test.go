package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{
			name:    "simple keyword",
			keyword: "failing mathematics grade 12 need help fast",
			want:    "failing-mathematics-grade-12-need-help-fast",
		},
		{
			name:    "uppercase is lowered",
			keyword: "Mathematics Tutor Sandton Grade 11",
			want:    "mathematics-tutor-sandton-grade-11",
		},
		{
			name:    "punctuation stripped",
			keyword: "24/7 maths help for matric students",
			want:    "247-maths-help-for-matric-students",
		},
		{
			name:    "whitespace runs collapse",
			keyword: "maths   tutor\t grade  12",
			want:    "maths-tutor-grade-12",
		},
		{
			name:    "existing hyphens kept and collapsed",
			keyword: "one-on-one -- tutoring",
			want:    "one-on-one-tutoring",
		},
		{
			name:    "leading and trailing noise trimmed",
			keyword: "  ?maths tutor!  ",
			want:    "maths-tutor",
		},
		{
			name:    "truncated to max length",
			keyword: strings.Repeat("mathematics ", 10),
			want:    "mathematics-mathematics-mathematics-mathematics-mathematics",
		},
		{
			name:    "empty input",
			keyword: "",
			want:    "",
		},
		{
			name:    "only stripped characters",
			keyword: "!!??",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.keyword)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxLen)
		})
	}
}

func TestMakeIsPure(t *testing.T) {
	keyword := "urgent physical sciences tutoring matric exams 2026"
	first := Make(keyword)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Make(keyword))
	}
}

func TestMakeNeverEndsWithHyphenAfterTruncation(t *testing.T) {
	// A word boundary exactly at the cut point must not leave a dangling hyphen.
	keyword := strings.Repeat("ab ", 40)
	got := Make(keyword)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.False(t, strings.HasPrefix(got, "-"))
}
