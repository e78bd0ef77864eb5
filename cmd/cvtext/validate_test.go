package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvtext/internal/parsing"
	"github.com/jonathan/cvtext/internal/schemas"
)

func TestValidateFile_BuiltinSchema(t *testing.T) {
	doc, _, err := parsing.NewParser(parsing.NewRegistry()).Parse(sampleResume)
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.NoError(t, validateFile(writeTemp(t, "ada.json", string(data)), ""))
}

func TestValidateFile_Invalid(t *testing.T) {
	err := validateFile(writeTemp(t, "partial.json", `{"name": "Ada"}`), "")
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateFile_SchemaFlag(t *testing.T) {
	schema := writeTemp(t, "schema.json", `{"type": "object", "required": ["name"]}`)

	assert.NoError(t, validateFile(writeTemp(t, "ok.json", `{"name": "Ada"}`), schema))
	assert.Error(t, validateFile(writeTemp(t, "bad.json", `{}`), schema))
}

func TestValidateFile_RepoSchemaPath(t *testing.T) {
	doc, _, err := parsing.NewParser(parsing.NewRegistry()).Parse(parsing.Skeleton())
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	// resolved from the repo root when run inside cmd/cvtext
	schemaPath := filepath.Join("schemas", "document.schema.json")
	assert.NoError(t, validateFile(writeTemp(t, "skeleton.json", string(data)), schemaPath))
}

func TestValidateFile_MissingInput(t *testing.T) {
	assert.Error(t, validateFile(filepath.Join(t.TempDir(), "missing.json"), ""))
}
