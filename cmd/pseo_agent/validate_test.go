package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_UnknownSchema(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--schema", "report", "--json", "whatever.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown schema")
}

func TestValidateCommand_ValidKeywordSet(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := filepath.Join(t.TempDir(), "keywords.json")
	content := `{"keywords": [{"keyword": "maths help", "category": "pain-point"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cmd := exec.Command(binaryPath, "validate", "--schema", "keywords", "--json", path)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command output: %s", string(output))
	assert.Contains(t, string(output), "validates")
}

func TestValidateCommand_InvalidKeywordSet(t *testing.T) {
	binaryPath := getBinaryPath(t)
	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keywords": [{"keyword": "maths help"}]}`), 0644))

	cmd := exec.Command(binaryPath, "validate", "--schema", "keywords", "--json", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "category")
}
