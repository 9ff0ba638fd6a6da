package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/job-matcher/internal/types"
)

// DefaultTopN is the number of results returned when the caller does not ask
// for a specific count.
const DefaultTopN = 20

// DefaultRecencyWindow is the posting-age window over which the recency
// component decays linearly from 1.0 to 0.0.
const DefaultRecencyWindow = 30 * 24 * time.Hour

// Options configures an Engine. Zero fields fall back to defaults.
type Options struct {
	// Weights combines the component scores; defaults to DefaultWeights.
	Weights Weights
	// Popularity supplies the popularity component; defaults to the
	// constant placeholder.
	Popularity PopularityScorer
	// RecencyWindow bounds the linear recency decay; defaults to
	// DefaultRecencyWindow.
	RecencyWindow time.Duration
	// Now anchors recency computation; defaults to time.Now at
	// construction. Fixing it makes ranking fully deterministic.
	Now time.Time
}

// Engine ranks job postings against a resume profile. Its configuration is
// read-only after construction, so a single Engine may score any number of
// batches.
type Engine struct {
	weights    Weights
	popularity PopularityScorer
	window     time.Duration
	now        time.Time
}

// NewEngine builds an Engine, applying defaults for unset options and
// validating the weight configuration.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.Popularity == nil {
		opts.Popularity = ConstantPopularity{Value: defaultPopularity}
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = DefaultRecencyWindow
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	return &Engine{
		weights:    opts.Weights,
		popularity: opts.Popularity,
		window:     opts.RecencyWindow,
		now:        opts.Now,
	}, nil
}

// Rank scores every job posting against the resume and returns at most topN
// results ordered by final score descending, ties broken by job identifier.
// An empty job list yields an empty result; a topN beyond the job count
// returns all jobs ranked.
func (e *Engine) Rank(resume *types.ResumeProfile, jobs []types.JobPosting, topN int) ([]types.MatchResult, error) {
	if resume == nil {
		return nil, &InputValidationError{Message: "resume profile is nil"}
	}
	if topN <= 0 {
		return nil, &InputValidationError{Message: fmt.Sprintf("topN must be positive, got %d", topN)}
	}
	if len(resume.Vector) == 0 {
		return nil, &ConfigurationError{Message: fmt.Sprintf("resume %q has no feature vector", resume.ResumeID)}
	}

	results := make([]types.MatchResult, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		if len(job.Vector) != len(resume.Vector) {
			return nil, &ConfigurationError{Message: fmt.Sprintf(
				"vocabulary mismatch: resume vector has %d dimensions, job %q has %d",
				len(resume.Vector), job.JobID, len(job.Vector))}
		}

		semantic := cosineSimilarity(resume.Vector, job.Vector)
		keyword := keywordOverlapScore(resume.Skills, job.Skills)
		recency := recencyScore(job.PostedAt, e.now, e.window)
		popularity := e.popularity.Score(job)

		finalScore := (e.weights.Semantic * semantic) +
			(e.weights.Keyword * keyword) +
			(e.weights.Recency * recency) +
			(e.weights.Popularity * popularity)
		if finalScore > 1.0 {
			finalScore = 1.0
		}
		if finalScore < 0.0 {
			finalScore = 0.0
		}

		results = append(results, types.MatchResult{
			ResumeID:       resume.ResumeID,
			JobID:          job.JobID,
			SemanticScore:  semantic,
			KeywordOverlap: keyword,
			RecencyWeight:  recency,
			Popularity:     popularity,
			FinalScore:     finalScore,
			CommonSkills:   commonSkills(resume.Skills, job.Skills),
			MissingSkills:  missingSkills(resume.Skills, job.Skills),
		})
	}

	// Sort by final score (descending), ties by job identifier
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].JobID < results[j].JobID
	})

	if topN < len(results) {
		results = results[:topN]
	}
	return results, nil
}
