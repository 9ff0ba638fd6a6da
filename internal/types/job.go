// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobPosting represents a normalized job posting with its extracted
// required-skill set and TF-IDF vector. Vectors are only comparable to
// resume vectors built from the same vocabulary.
type JobPosting struct {
	JobID       string     `json:"job_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Skills      []string   `json:"skills"`
	Vector      []float64  `json:"vector"`
}
