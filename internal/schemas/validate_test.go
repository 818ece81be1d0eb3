package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageSchema = `{
	"type": "object",
	"required": ["slug", "category"],
	"properties": {
		"slug": {"type": "string", "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
		"category": {"type": "string", "enum": ["pain-point", "exam-prep"]},
		"quality_score": {"type": "integer", "minimum": 0, "maximum": 10}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	doc := `{"slug": "failing-maths-grade-12", "category": "pain-point", "quality_score": 8}`
	assert.NoError(t, ValidateJSONString(pageSchema, doc))
}

func TestValidateJSONString_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing required field",
			doc:   `{"slug": "failing-maths"}`,
			field: "(root)",
		},
		{
			name:  "bad slug pattern",
			doc:   `{"slug": "Has Spaces", "category": "pain-point"}`,
			field: "slug",
		},
		{
			name:  "unknown category",
			doc:   `{"slug": "ok-slug", "category": "mystery"}`,
			field: "category",
		},
		{
			name:  "score out of range",
			doc:   `{"slug": "ok-slug", "category": "pain-point", "quality_score": 11}`,
			field: "quality_score",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(pageSchema, tt.doc)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "not-a-type"}`, `{}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	docPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(pageSchema), 0o644))
	require.NoError(t, os.WriteFile(docPath, []byte(`{"slug": "ok-slug", "category": "exam-prep"}`), 0o644))

	assert.NoError(t, ValidateJSON(schemaPath, docPath))

	// missing document file
	err := ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "JSON file not found")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "slug", Message: "does not match pattern"},
		{Field: "category", Message: "must be one of the allowed values"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "1. slug")
	assert.Contains(t, msg, "2. category")
}

func TestResolveSchemaPath(t *testing.T) {
	// repo schemas resolve from the package directory via the parent walk
	resolved := ResolveSchemaPath(PageSchemaPath)
	assert.NotEmpty(t, resolved)

	assert.Empty(t, ResolveSchemaPath("schemas/does-not-exist.schema.json"))
}
