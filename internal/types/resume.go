// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ResumeChunk represents one extracted text fragment of a resume, as emitted
// by the upstream text-extraction step. Chunks for a resume are reassembled
// in chunk_index order before featurization.
type ResumeChunk struct {
	ResumeID   string `json:"resume_id" validate:"required"`
	ChunkIndex int    `json:"chunk_index" validate:"gte=0"`
	Content    string `json:"content"`
}

// ResumeProfile represents a fully featurized resume: the concatenated text,
// the recognized skill set, a display summary, and the TF-IDF vector built
// under a fitted vocabulary. Immutable once built; rebuilt only when the
// vocabulary changes.
type ResumeProfile struct {
	ResumeID string    `json:"resume_id"`
	FullText string    `json:"full_text"`
	Skills   []string  `json:"skills"`
	Summary  string    `json:"summary"`
	Vector   []float64 `json:"vector"`
}

// Validate validates the ResumeChunk using the validator.
func (c *ResumeChunk) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
