// Package pipeline provides the high-level orchestration for the job matching process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/courses"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/jobfeed"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/tfidf"
	"github.com/jonathan/job-matcher/internal/types"
)

// VocabularyName is the name the fitted vocabulary is stored under in the
// vocabularies table.
const VocabularyName = "default"

// RunOptions holds configuration for the chained three-stage run.
type RunOptions struct {
	ChunksPath  string
	ResumeID    string
	Query       string
	Pages       int
	JobsDump    string
	Feed        jobfeed.Config
	CoursesPath string
	OutDir      string
	TopN        int
	Strict      bool
	Verbose     bool
	Quiet       bool
	DatabaseURL string
	Logger      *zap.Logger
}

// BuildResumeOptions configures the resume featurization stage.
type BuildResumeOptions struct {
	ChunksPath string
	// ResumeID selects the profile artifact when the chunk file holds
	// several resumes; optional when it holds exactly one.
	ResumeID string
	OutDir   string
	Strict   bool
	Verbose  bool
	Database *db.DB
}

// BuildResumeResult carries the stage outputs forward.
type BuildResumeResult struct {
	// Profile is the selected profile, written to the artifact file.
	Profile *types.ResumeProfile
	// Profiles holds every resume featurized from the chunk file.
	Profiles       []types.ResumeProfile
	Vocabulary     *tfidf.Vocabulary
	ProfilePath    string
	VocabularyPath string
}

// selectProfile picks the profile to carry forward: the sole profile when the
// chunk file holds one resume, otherwise the one matching resumeID.
func selectProfile(profiles []types.ResumeProfile, resumeID string) (*types.ResumeProfile, error) {
	ids := make([]string, 0, len(profiles))
	for i := range profiles {
		ids = append(ids, profiles[i].ResumeID)
	}

	if resumeID != "" {
		for i := range profiles {
			if profiles[i].ResumeID == resumeID {
				return &profiles[i], nil
			}
		}
		return nil, fmt.Errorf("resume %q not found in chunk file (have: %s)", resumeID, strings.Join(ids, ", "))
	}

	if len(profiles) == 1 {
		return &profiles[0], nil
	}
	return nil, fmt.Errorf("chunk file holds %d resumes; pick one with --resume-id (have: %s)", len(profiles), strings.Join(ids, ", "))
}

// BuildResume assembles resume chunks into full texts, fits the TF-IDF
// vocabulary over the resume corpus, featurizes every resume, and writes the
// profile and vocabulary artifacts. Database saves are best-effort.
func BuildResume(ctx context.Context, opts BuildResumeOptions) (*BuildResumeResult, error) {
	rows, err := ingestion.LoadChunks(opts.ChunksPath)
	if err != nil {
		return nil, fmt.Errorf("loading chunks failed: %w", err)
	}

	texts := ingestion.AssembleChunks(rows)
	ids := ingestion.ResumeIDs(rows)
	if len(ids) == 0 {
		return nil, fmt.Errorf("chunk file %s holds no resume rows", opts.ChunksPath)
	}

	corpus := make([]string, 0, len(ids))
	for _, id := range ids {
		corpus = append(corpus, texts[id])
	}

	vocab, err := tfidf.Fit(corpus, tfidf.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("fitting vocabulary failed: %w", err)
	}

	reference := skills.DefaultReference()
	profiles := make([]types.ResumeProfile, 0, len(ids))
	for _, id := range ids {
		text := texts[id]
		profiles = append(profiles, types.ResumeProfile{
			ResumeID: id,
			FullText: text,
			Skills:   skills.Extract(text, reference),
			Summary:  ingestion.Summarize(text, ingestion.DefaultSummaryLimit),
			Vector:   vocab.Transform(text),
		})
	}

	profile, err := selectProfile(profiles, opts.ResumeID)
	if err != nil {
		return nil, err
	}

	if opts.Database != nil {
		if err := opts.Database.SaveResumeChunks(ctx, rows); err != nil {
			fmt.Printf("Warning: Failed to save resume chunks: %v\n", err)
		}
		for i := range profiles {
			if err := opts.Database.SaveResumeProfile(ctx, &profiles[i]); err != nil {
				fmt.Printf("Warning: Failed to save resume profile %s: %v\n", profiles[i].ResumeID, err)
			}
		}
		if err := opts.Database.SaveVocabulary(ctx, VocabularyName, vocab); err != nil {
			fmt.Printf("Warning: Failed to save vocabulary: %v\n", err)
		}
	}

	profilePath, err := WriteArtifact(opts.OutDir, ResumeProfileFile, profile, opts.Strict)
	if err != nil {
		return nil, err
	}
	vocabPath, err := WriteArtifact(opts.OutDir, VocabularyFile, vocab, opts.Strict)
	if err != nil {
		return nil, err
	}

	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintResumeProfile(profile)
	}

	return &BuildResumeResult{
		Profile:        profile,
		Profiles:       profiles,
		Vocabulary:     vocab,
		ProfilePath:    profilePath,
		VocabularyPath: vocabPath,
	}, nil
}

// FetchJobsOptions configures the job featurization stage. Exactly one of
// Query and DumpPath supplies the postings.
type FetchJobsOptions struct {
	Query    string
	Pages    int
	DumpPath string
	Feed     jobfeed.Config
	// Vocabulary must be the Stage 2 fit; job vectors are only comparable
	// to resume vectors built from the same vocabulary.
	Vocabulary *tfidf.Vocabulary
	OutDir     string
	Strict     bool
	Verbose    bool
	Database   *db.DB
	Logger     *zap.Logger
}

// FetchJobs loads postings from the feed or an offline dump, extracts
// required skills, and vectorizes each description under the supplied
// vocabulary. The vocabulary is never refitted here.
func FetchJobs(ctx context.Context, opts FetchJobsOptions) ([]types.JobPosting, string, error) {
	if opts.Vocabulary == nil {
		return nil, "", fmt.Errorf("a fitted vocabulary is required to featurize job postings")
	}

	var postings []types.JobPosting
	switch {
	case opts.DumpPath != "":
		var err error
		postings, err = jobfeed.LoadDump(opts.DumpPath)
		if err != nil {
			return nil, "", fmt.Errorf("loading job dump failed: %w", err)
		}
	case opts.Query != "":
		client, err := jobfeed.New(opts.Feed, opts.Logger)
		if err != nil {
			return nil, "", fmt.Errorf("building feed client failed: %w", err)
		}
		postings, err = client.Search(ctx, jobfeed.SearchRequest{
			What:  opts.Query,
			Pages: opts.Pages,
		})
		if err != nil {
			return nil, "", fmt.Errorf("searching job feed failed: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("either a search query or a jobs dump file is required")
	}

	reference := skills.DefaultReference()
	for i := range postings {
		postings[i].Skills = skills.Extract(postings[i].Description, reference)
		postings[i].Vector = opts.Vocabulary.Transform(postings[i].Description)
	}

	if opts.Database != nil {
		if err := opts.Database.UpsertJobPostings(ctx, postings); err != nil {
			fmt.Printf("Warning: Failed to save job postings: %v\n", err)
		}
	}

	path, err := WriteArtifact(opts.OutDir, JobPostingsFile, postings, opts.Strict)
	if err != nil {
		return nil, "", err
	}

	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintJobPostings(postings)
	}

	return postings, path, nil
}

// MatchOptions configures the scoring stage.
type MatchOptions struct {
	Resume *types.ResumeProfile
	Jobs   []types.JobPosting
	// TopN caps the ranked results; non-positive falls back to
	// ranking.DefaultTopN.
	TopN        int
	CoursesPath string
	OutDir      string
	Strict      bool
	Verbose     bool
	// Quiet suppresses the per-result console lines for scripted runs.
	Quiet bool
	// Now anchors recency scoring; zero means time.Now.
	Now time.Time
}

// Match ranks the jobs against the resume, aggregates skill gaps, attaches
// course suggestions, prints the explained results, and writes the report.
// Match results are derived values and are never stored in Postgres.
func Match(_ context.Context, opts MatchOptions) (*types.MatchReport, string, error) {
	engine, err := ranking.NewEngine(ranking.Options{Now: opts.Now})
	if err != nil {
		return nil, "", fmt.Errorf("building ranking engine failed: %w", err)
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = ranking.DefaultTopN
	}

	results, err := engine.Rank(opts.Resume, opts.Jobs, topN)
	if err != nil {
		return nil, "", fmt.Errorf("ranking failed: %w", err)
	}

	gaps := ranking.SortedSkillGaps(ranking.AggregateSkillGaps(results))

	catalog := courses.DefaultCatalog()
	if opts.CoursesPath != "" {
		catalog, err = courses.LoadCatalog(opts.CoursesPath)
		if err != nil {
			return nil, "", fmt.Errorf("loading course catalog failed: %w", err)
		}
	}
	gapSkills := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		gapSkills = append(gapSkills, gap.Skill)
	}

	report := &types.MatchReport{
		ResumeID:  opts.Resume.ResumeID,
		Results:   results,
		SkillGaps: gaps,
		Courses:   catalog.Recommend(gapSkills),
	}

	path, err := WriteArtifact(opts.OutDir, MatchReportFile, report, opts.Strict)
	if err != nil {
		return nil, "", err
	}

	if !opts.Quiet {
		for i := range report.Results {
			fmt.Printf("%2d. %-24s %s\n", i+1, report.Results[i].JobID, ranking.Explanation(&report.Results[i]))
		}
	}
	if opts.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintMatchReport(report)
		printer.PrintSkillGaps(report.SkillGaps)
		printer.PrintCourseSuggestions(report.Courses)
	}

	return report, path, nil
}

// Run chains build-resume, fetch-jobs, and match into one pipeline run.
// Database persistence is best-effort; stage errors are fatal.
func Run(ctx context.Context, opts RunOptions) error {
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				fmt.Printf("Warning: Failed to run migrations: %v\n", err)
			}
		}
	}

	fmt.Printf("Step 1/3: Building resume profiles from %s...\n", opts.ChunksPath)
	built, err := BuildResume(ctx, BuildResumeOptions{
		ChunksPath: opts.ChunksPath,
		ResumeID:   opts.ResumeID,
		OutDir:     opts.OutDir,
		Strict:     opts.Strict,
		Verbose:    opts.Verbose,
		Database:   database,
	})
	if err != nil {
		return fmt.Errorf("building resume profiles failed: %w", err)
	}
	fmt.Printf("Featurized %d resumes (vocabulary: %d terms)\n", len(built.Profiles), built.Vocabulary.Dim())

	fmt.Printf("Step 2/3: Featurizing job postings...\n")
	jobs, _, err := FetchJobs(ctx, FetchJobsOptions{
		Query:      opts.Query,
		Pages:      opts.Pages,
		DumpPath:   opts.JobsDump,
		Feed:       opts.Feed,
		Vocabulary: built.Vocabulary,
		OutDir:     opts.OutDir,
		Strict:     opts.Strict,
		Verbose:    opts.Verbose,
		Database:   database,
		Logger:     opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("featurizing job postings failed: %w", err)
	}
	fmt.Printf("Featurized %d job postings\n", len(jobs))

	fmt.Printf("Step 3/3: Ranking jobs against resume %s...\n", built.Profile.ResumeID)
	report, reportPath, err := Match(ctx, MatchOptions{
		Resume:      built.Profile,
		Jobs:        jobs,
		TopN:        opts.TopN,
		CoursesPath: opts.CoursesPath,
		OutDir:      opts.OutDir,
		Strict:      opts.Strict,
		Verbose:     opts.Verbose,
		Quiet:       opts.Quiet,
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	fmt.Printf("Done! Ranked %d jobs; report written to %s\n", len(report.Results), reportPath)
	return nil
}
