package ranking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/job-matcher/internal/types"
)

// Default weights for scoring components
const (
	semanticWeight   = 0.55
	keywordWeight    = 0.25
	recencyWeight    = 0.10
	popularityWeight = 0.10
)

// defaultPopularity is the placeholder popularity signal applied to every
// job until a real signal exists.
const defaultPopularity = 0.5

// Weights holds the component weights of the final score. They are
// configuration: alternative weightings plug in without touching the
// scoring code.
type Weights struct {
	Semantic   float64 `json:"semantic"`
	Keyword    float64 `json:"keyword"`
	Recency    float64 `json:"recency"`
	Popularity float64 `json:"popularity"`
}

// DefaultWeights returns the production weighting:
// 0.55 semantic, 0.25 keyword, 0.10 recency, 0.10 popularity.
func DefaultWeights() Weights {
	return Weights{
		Semantic:   semanticWeight,
		Keyword:    keywordWeight,
		Recency:    recencyWeight,
		Popularity: popularityWeight,
	}
}

// Validate rejects negative components and weight sums away from 1.0, which
// would push final scores outside [0,1].
func (w Weights) Validate() error {
	if w.Semantic < 0 || w.Keyword < 0 || w.Recency < 0 || w.Popularity < 0 {
		return &ConfigurationError{Message: "weights must be non-negative"}
	}
	sum := w.Semantic + w.Keyword + w.Recency + w.Popularity
	if math.Abs(sum-1.0) > 1e-9 {
		return &ConfigurationError{Message: fmt.Sprintf("weights must sum to 1.0, got %.6f", sum)}
	}
	return nil
}

// PopularityScorer supplies the popularity component for a job. The engine
// takes it as configuration so a real signal can later replace the constant
// placeholder without changing the scoring formula.
type PopularityScorer interface {
	Score(job *types.JobPosting) float64
}

// ConstantPopularity scores every job with the same fixed value.
type ConstantPopularity struct {
	Value float64
}

// Score implements PopularityScorer.
func (c ConstantPopularity) Score(*types.JobPosting) float64 {
	return c.Value
}

// cosineSimilarity returns the cosine of a and b clamped to [0,1]. A zero
// vector scores 0 against anything; callers guarantee equal lengths.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0.0
	}
	if sim > 1 {
		return 1.0
	}
	return sim
}

// keywordOverlapScore returns |resume skills ∩ job required skills| divided
// by |job required skills|, or 0 when the job lists no required skills.
func keywordOverlapScore(resumeSkills, jobSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0.0
	}

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[strings.ToLower(skill)] = struct{}{}
	}

	jobSet := make(map[string]struct{}, len(jobSkills))
	matches := 0
	for _, skill := range jobSkills {
		key := strings.ToLower(skill)
		if _, dup := jobSet[key]; dup {
			continue
		}
		jobSet[key] = struct{}{}
		if _, ok := resumeSet[key]; ok {
			matches++
		}
	}

	return float64(matches) / float64(len(jobSet))
}

// recencyScore maps posting age to [0,1] with linear decay across the
// window: age zero scores 1.0, ages at or beyond the window score 0.0.
// Postings without a timestamp get the neutral 0.5.
func recencyScore(postedAt *time.Time, now time.Time, window time.Duration) float64 {
	if postedAt == nil {
		return 0.5
	}

	age := now.Sub(*postedAt)
	if age <= 0 {
		return 1.0
	}
	if age >= window {
		return 0.0
	}
	return 1.0 - float64(age)/float64(window)
}
