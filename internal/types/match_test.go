// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchReport_WireFormat(t *testing.T) {
	report := MatchReport{
		ResumeID: "resume_001",
		Results: []MatchResult{
			{
				ResumeID:       "resume_001",
				JobID:          "job_42",
				SemanticScore:  0.8,
				KeywordOverlap: 0.5,
				RecencyWeight:  1.0,
				Popularity:     0.5,
				FinalScore:     0.715,
				CommonSkills:   []string{"python", "sql"},
				MissingSkills:  []string{"aws"},
			},
		},
		SkillGaps: []SkillGap{{Skill: "aws", Count: 1}},
		Courses:   []CourseSuggestion{{Skill: "aws", Courses: []string{"AWS Cloud Practitioner"}}},
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"resume_id": "resume_001"`)
	assert.Contains(t, string(jsonBytes), `"job_id": "job_42"`)
	assert.Contains(t, string(jsonBytes), `"semantic_score": 0.8`)
	assert.Contains(t, string(jsonBytes), `"keyword_overlap": 0.5`)
	assert.Contains(t, string(jsonBytes), `"final_score": 0.715`)
	assert.Contains(t, string(jsonBytes), `"common_skills"`)
	assert.Contains(t, string(jsonBytes), `"missing_skills"`)
	assert.Contains(t, string(jsonBytes), `"skill_gaps"`)
}

func TestJobPosting_OmitsMissingTimestamp(t *testing.T) {
	job := JobPosting{JobID: "job_1", Title: "Data Engineer"}

	jsonBytes, err := json.Marshal(job)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "posted_at")

	posted := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	job.PostedAt = &posted
	jsonBytes, err = json.Marshal(job)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"posted_at":"2024-03-01T12:00:00Z"`)
}

func TestResumeChunk_Validate(t *testing.T) {
	chunk := ResumeChunk{ResumeID: "resume_001", ChunkIndex: 0, Content: "text"}
	require.NoError(t, chunk.Validate())

	missing := ResumeChunk{ChunkIndex: 0, Content: "text"}
	assert.Error(t, missing.Validate())

	negative := ResumeChunk{ResumeID: "resume_001", ChunkIndex: -1}
	assert.Error(t, negative.Validate())
}
