package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/types"
)

// Artifact filenames written under the output directory.
const (
	ResumeProfileFile = "resume_profile.json"
	VocabularyFile    = "vocabulary.json"
	JobPostingsFile   = "job_postings.json"
	MatchReportFile   = "match_report.json"
)

// schemaFor maps an artifact filename to its JSON Schema under schemas/.
var schemaFor = map[string]string{
	ResumeProfileFile: "schemas/resume_profile.schema.json",
	VocabularyFile:    "schemas/vocabulary.schema.json",
	JobPostingsFile:   "schemas/job_postings.schema.json",
	MatchReportFile:   "schemas/match_report.schema.json",
}

// WriteArtifact writes v as indented JSON to dir/name and checks the result
// against the artifact's schema. Validation problems fail the write when
// strict is set and print a stderr warning otherwise.
func WriteArtifact(dir, name string, v any, strict bool) (string, error) {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}

	if err := validateArtifact(name, path, strict); err != nil {
		if strict {
			return "", fmt.Errorf("artifact %s failed schema validation: %w", path, err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed for %s: %v\n", path, err)
	}

	return path, nil
}

// validateArtifact applies the schema registered for name. Outside strict
// mode a missing schema file is skipped; installed binaries run without the
// schemas directory.
func validateArtifact(name, path string, strict bool) error {
	rel, ok := schemaFor[name]
	if !ok {
		return nil
	}

	schemaPath := schemas.ResolveSchemaPath(rel)
	if schemaPath == "" {
		if strict {
			return fmt.Errorf("schema %s not found", rel)
		}
		return nil
	}

	return schemas.ValidateJSON(schemaPath, path)
}

// ReadResumeProfile loads a ResumeProfile artifact from disk.
func ReadResumeProfile(path string) (*types.ResumeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume profile %s: %w", path, err)
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse resume profile %s: %w", path, err)
	}

	return &profile, nil
}

// ReadJobPostings loads a job postings artifact from disk.
func ReadJobPostings(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job postings %s: %w", path, err)
	}

	var postings []types.JobPosting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("failed to parse job postings %s: %w", path, err)
	}

	return postings, nil
}
