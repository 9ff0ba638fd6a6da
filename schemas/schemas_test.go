package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"resume_profile.schema.json",
	"vocabulary.schema.json",
	"job_postings.schema.json",
	"match_report.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]
			_, hasDefs := schemaObj["$defs"]

			assert.True(t, hasType || hasSchema || hasProps || hasDefs,
				"schema should have at least type, $schema, properties, or $defs")
		})
	}
}

func TestMatchReportSchema_ValidatesExample(t *testing.T) {
	err := schemas.ValidateJSON("match_report.schema.json", "../testdata/valid/match_report.json")
	assert.NoError(t, err)
}

func TestMatchReportSchema_RejectsInvalidExamples(t *testing.T) {
	tests := []struct {
		name     string
		jsonFile string
	}{
		{name: "missing resume_id", jsonFile: "../testdata/invalid/missing_field.json"},
		{name: "string score", jsonFile: "../testdata/invalid/wrong_type.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSON("match_report.schema.json", tt.jsonFile)
			require.Error(t, err)

			validationErr, ok := err.(*schemas.ValidationError)
			require.True(t, ok, "error should be ValidationError, got %T: %v", err, err)
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestVocabularySchema_ValidatesFittedArtifact(t *testing.T) {
	schemaContent, err := os.ReadFile("vocabulary.schema.json")
	require.NoError(t, err)

	artifact := `{
		"terms": ["machine learning", "python", "sql"],
		"idf": [1.6931471805599454, 1.0, 1.2876820724517809],
		"documents": 3,
		"options": {
			"max_features": 5000,
			"ngram_max": 2
		}
	}`

	err = schemas.ValidateJSONString(string(schemaContent), artifact)
	assert.NoError(t, err)
}

func TestVocabularySchema_RejectsEmptyTermSpace(t *testing.T) {
	schemaContent, err := os.ReadFile("vocabulary.schema.json")
	require.NoError(t, err)

	artifact := `{
		"terms": [],
		"idf": [],
		"documents": 0,
		"options": {
			"max_features": 5000,
			"ngram_max": 2
		}
	}`

	err = schemas.ValidateJSONString(string(schemaContent), artifact)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestJobPostingsSchema_ValidatesNormalizedFeed(t *testing.T) {
	schemaContent, err := os.ReadFile("job_postings.schema.json")
	require.NoError(t, err)

	doc := `[
		{
			"job_id": "job-42",
			"title": "Data Engineer",
			"company": "Acme",
			"location": "Remote",
			"description": "Build pipelines with Python and SQL.",
			"url": "https://example.com/jobs/42",
			"posted_at": "2026-08-01T09:30:00Z",
			"skills": ["python", "sql"],
			"vector": [0.1, 0.0, 0.9]
		},
		{
			"job_id": "job-7",
			"title": "ML Engineer",
			"company": "Beta",
			"location": "NYC",
			"description": "Train and ship models.",
			"url": "https://example.com/jobs/7",
			"skills": ["machine learning"],
			"vector": []
		}
	]`

	err = schemas.ValidateJSONString(string(schemaContent), doc)
	assert.NoError(t, err)
}

func TestJobPostingsSchema_RejectsMissingID(t *testing.T) {
	schemaContent, err := os.ReadFile("job_postings.schema.json")
	require.NoError(t, err)

	doc := `[
		{
			"title": "Data Engineer",
			"company": "Acme",
			"location": "Remote",
			"description": "Build pipelines.",
			"url": "https://example.com/jobs/42",
			"skills": [],
			"vector": []
		}
	]`

	err = schemas.ValidateJSONString(string(schemaContent), doc)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestResumeProfileSchema_ValidatesBuiltProfile(t *testing.T) {
	schemaContent, err := os.ReadFile("resume_profile.schema.json")
	require.NoError(t, err)

	doc := `{
		"resume_id": "resume-1",
		"full_text": "Data engineer with Python and SQL experience.",
		"skills": ["python", "sql"],
		"summary": "Data engineer with Python and SQL experience.",
		"vector": [0.5, 0.5, 0.0]
	}`

	err = schemas.ValidateJSONString(string(schemaContent), doc)
	assert.NoError(t, err)
}
