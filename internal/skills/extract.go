// Package skills provides recognition of known skill terms in free text.
package skills

import (
	"sort"
	"strings"
)

// defaultReference is the fixed list of skill terms recognized across resumes
// and job descriptions. Matching is case-insensitive substring presence, so
// multi-word terms like "machine learning" match as written.
var defaultReference = []string{
	"python", "java", "c++", "c#", "sql", "mysql", "postgresql", "mongodb",
	"aws", "azure", "gcp", "docker", "kubernetes",
	"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
	"machine learning", "deep learning", "data analysis", "data engineering",
	"spark", "hadoop", "excel", "power bi", "tableau",
}

// DefaultReference returns a copy of the built-in skill reference list.
func DefaultReference() []string {
	out := make([]string, len(defaultReference))
	copy(out, defaultReference)
	return out
}

// Extract returns the reference terms present in text, lowercased,
// deduplicated, and sorted. Matching is exact substring presence against the
// lowercased text; no fuzzy matching, no partial scoring. An empty text
// yields an empty set.
func Extract(text string, reference []string) []string {
	if text == "" || len(reference) == 0 {
		return []string{}
	}

	textLow := strings.ToLower(text)
	seen := make(map[string]struct{}, len(reference))
	for _, skill := range reference {
		term := strings.ToLower(strings.TrimSpace(skill))
		if term == "" {
			continue
		}
		if strings.Contains(textLow, term) {
			seen[term] = struct{}{}
		}
	}

	found := make([]string, 0, len(seen))
	for term := range seen {
		found = append(found, term)
	}
	sort.Strings(found)
	return found
}
