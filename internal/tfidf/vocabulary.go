package tfidf

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the fitted vocabulary as a pretty-printed JSON artifact so a
// later stage can transform documents in the same vector space.
func (v *Vocabulary) Save(path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	return nil
}

// Parse decodes a vocabulary artifact, checks its internal consistency,
// and rebuilds the term index.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	if len(v.Terms) == 0 {
		return nil, fmt.Errorf("vocabulary contains no terms")
	}
	if len(v.Terms) != len(v.IDF) {
		return nil, fmt.Errorf("vocabulary has %d terms but %d idf weights", len(v.Terms), len(v.IDF))
	}
	if err := v.Options.validate(); err != nil {
		return nil, fmt.Errorf("vocabulary has invalid options: %w", err)
	}

	v.buildIndex()
	return &v, nil
}

// Load reads a vocabulary artifact written by Save.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary file %s: %w", path, err)
	}
	return v, nil
}
