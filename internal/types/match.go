// Package types provides type definitions for structured data used throughout the job-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult represents one scored resume/job pairing with its component
// scores and skill explanation. Derived and ephemeral: recomputed on demand,
// never mutated after ranking.
type MatchResult struct {
	ResumeID       string   `json:"resume_id"`
	JobID          string   `json:"job_id"`
	SemanticScore  float64  `json:"semantic_score"`
	KeywordOverlap float64  `json:"keyword_overlap"`
	RecencyWeight  float64  `json:"recency_weight"`
	Popularity     float64  `json:"popularity_score"`
	FinalScore     float64  `json:"final_score"`
	CommonSkills   []string `json:"common_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// SkillGap represents one missing skill and the number of ranked jobs that
// required it.
type SkillGap struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// CourseSuggestion ties a missing skill to the catalog courses that teach it.
type CourseSuggestion struct {
	Skill   string   `json:"skill"`
	Courses []string `json:"courses"`
}

// MatchReport is the artifact produced by the match step: the ranked results
// for one resume plus the aggregated skill gaps and course suggestions.
type MatchReport struct {
	ResumeID  string             `json:"resume_id"`
	Results   []MatchResult      `json:"results"`
	SkillGaps []SkillGap         `json:"skill_gaps"`
	Courses   []CourseSuggestion `json:"courses,omitempty"`
}
