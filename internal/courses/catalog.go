// Package courses maps skill names to course recommendations.
package courses

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/job-matcher/internal/types"
)

//go:embed catalog.json
var embeddedCatalog embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Catalog maps lowercase skill names to course titles. Skills absent
// from the catalog have no recommendations.
type Catalog struct {
	entries map[string][]string
}

// NewCatalog builds a catalog from a skill-to-courses map. Keys are
// lowercased so lookups are case-insensitive.
func NewCatalog(entries map[string][]string) *Catalog {
	c := &Catalog{entries: make(map[string][]string, len(entries))}
	for skill, titles := range entries {
		c.entries[strings.ToLower(skill)] = append([]string(nil), titles...)
	}
	return c
}

// DefaultCatalog returns the built-in catalog shipped with the binary.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		data, err := embeddedCatalog.ReadFile("catalog.json")
		if err != nil {
			panic(fmt.Sprintf("courses: embedded catalog missing: %v", err))
		}
		var entries map[string][]string
		if err := json.Unmarshal(data, &entries); err != nil {
			panic(fmt.Sprintf("courses: embedded catalog malformed: %v", err))
		}
		defaultCatalog = NewCatalog(entries)
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog from a JSON file mapping skill names to
// lists of course titles.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course catalog: %w", err)
	}
	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse course catalog %s: %w", path, err)
	}
	return NewCatalog(entries), nil
}

// Lookup returns the courses for a skill, matched case-insensitively.
// Skills without catalog entries return nil.
func (c *Catalog) Lookup(skill string) []string {
	titles, ok := c.entries[strings.ToLower(skill)]
	if !ok {
		return nil
	}
	return append([]string(nil), titles...)
}

// Recommend produces course suggestions for the given skills, in the
// order the skills appear. Skills without catalog entries are omitted,
// and repeated skills are suggested once.
func (c *Catalog) Recommend(skills []string) []types.CourseSuggestion {
	var suggestions []types.CourseSuggestion
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		titles := c.Lookup(key)
		if len(titles) == 0 {
			continue
		}
		suggestions = append(suggestions, types.CourseSuggestion{
			Skill:   key,
			Courses: titles,
		})
	}
	return suggestions
}

// Skills lists every skill the catalog covers, sorted alphabetically.
func (c *Catalog) Skills() []string {
	skills := make([]string, 0, len(c.entries))
	for skill := range c.entries {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}
