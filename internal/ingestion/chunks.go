package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// LoadChunks reads a JSON array of resume chunks from disk and validates
// each entry.
func LoadChunks(path string) ([]types.ResumeChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("chunk file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read chunk file: %w", err)
	}

	var chunks []types.ResumeChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse chunk file %s: %w", path, err)
	}

	for i := range chunks {
		if err := chunks[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid chunk at index %d: %w", i, err)
		}
	}
	return chunks, nil
}

// AssembleChunks groups chunk rows by resume identifier and joins each
// group's contents with single spaces, ordered by chunk index ascending.
// Rows sharing an index keep their input order.
func AssembleChunks(rows []types.ResumeChunk) map[string]string {
	grouped := make(map[string][]types.ResumeChunk)
	for _, row := range rows {
		grouped[row.ResumeID] = append(grouped[row.ResumeID], row)
	}

	assembled := make(map[string]string, len(grouped))
	for resumeID, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ChunkIndex < group[j].ChunkIndex
		})
		parts := make([]string, 0, len(group))
		for _, chunk := range group {
			parts = append(parts, chunk.Content)
		}
		assembled[resumeID] = strings.Join(parts, " ")
	}
	return assembled
}

// ResumeIDs returns the resume identifiers present in the chunk rows,
// sorted alphabetically so callers process resumes in a stable order.
func ResumeIDs(rows []types.ResumeChunk) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[row.ResumeID] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
