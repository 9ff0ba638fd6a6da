package jobfeed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-matcher/internal/fetch"
	"github.com/jonathan/job-matcher/internal/types"
)

// RawPosting mirrors the feed's wire shape for one search result.
type RawPosting struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	RedirectURL string      `json:"redirect_url"`
	Created     string      `json:"created"`
	Company     RawCompany  `json:"company"`
	Location    RawLocation `json:"location"`
}

// RawCompany carries the feed's nested company object.
type RawCompany struct {
	DisplayName string `json:"display_name"`
}

// RawLocation carries the feed's nested location object.
type RawLocation struct {
	DisplayName string `json:"display_name"`
}

type searchResponse struct {
	Results []RawPosting `json:"results"`
}

// Normalize converts a raw feed result into a JobPosting. The feed wraps
// matched terms in highlight markup, so titles and descriptions are
// reduced to plain text. A missing identifier falls back to a generated
// UUID; a missing or malformed created timestamp yields a nil PostedAt.
func Normalize(raw RawPosting) types.JobPosting {
	jobID := raw.ID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	var postedAt *time.Time
	if raw.Created != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Created); err == nil {
			postedAt = &ts
		}
	}

	return types.JobPosting{
		JobID:       jobID,
		Title:       fetch.ExtractText(raw.Title),
		Company:     raw.Company.DisplayName,
		Location:    raw.Location.DisplayName,
		Description: fetch.ExtractText(raw.Description),
		URL:         raw.RedirectURL,
		PostedAt:    postedAt,
	}
}

// LoadDump reads feed results from a JSON file for offline runs. The
// file may hold either a full search response ({"results": [...]}) or a
// bare array of raw postings.
func LoadDump(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed dump: %w", err)
	}

	var payload searchResponse
	if err := json.Unmarshal(data, &payload); err != nil || payload.Results == nil {
		var bare []RawPosting
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			return nil, fmt.Errorf("failed to parse feed dump %s: %w", path, bareErr)
		}
		payload.Results = bare
	}

	postings := make([]types.JobPosting, 0, len(payload.Results))
	for _, raw := range payload.Results {
		postings = append(postings, Normalize(raw))
	}
	return postings, nil
}
