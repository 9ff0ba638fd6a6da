package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/pipeline"
	"github.com/jonathan/job-matcher/internal/ranking"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job postings against a resume profile",
	Long:  "Scores every featurized posting against the resume profile, prints the ranked results with their skill explanations, and writes the match report with aggregated skill gaps and course suggestions.",
	RunE:  runMatch,
}

var (
	matchResume   string
	matchJobs     string
	matchCourses  string
	matchTopN     int
	matchOut      string
	matchValidate bool
	matchVerbose  bool
	matchQuiet    bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", pipeline.ResumeProfileFile, "Path to the resume profile artifact")
	matchCmd.Flags().StringVarP(&matchJobs, "jobs", "j", pipeline.JobPostingsFile, "Path to the job postings artifact")
	matchCmd.Flags().StringVar(&matchCourses, "courses", "", "Path to a course catalog override (optional)")
	matchCmd.Flags().IntVarP(&matchTopN, "top-n", "n", ranking.DefaultTopN, "Number of ranked results to keep")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", ".", "Output directory for the match report")
	matchCmd.Flags().BoolVar(&matchValidate, "validate", false, "Fail when the report does not match its schema")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print the full report, skill gaps, and course suggestions")
	matchCmd.Flags().BoolVar(&matchQuiet, "quiet", false, "Suppress per-result console output")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	resume, err := pipeline.ReadResumeProfile(matchResume)
	if err != nil {
		return fmt.Errorf("failed to load resume profile (run build-resume first): %w", err)
	}

	jobs, err := pipeline.ReadJobPostings(matchJobs)
	if err != nil {
		return fmt.Errorf("failed to load job postings (run fetch-jobs first): %w", err)
	}

	report, path, err := pipeline.Match(ctx, pipeline.MatchOptions{
		Resume:      resume,
		Jobs:        jobs,
		TopN:        matchTopN,
		CoursesPath: matchCourses,
		OutDir:      matchOut,
		Strict:      matchValidate,
		Verbose:     matchVerbose,
		Quiet:       matchQuiet,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Successfully ranked %d jobs for %s; report written to %s\n", len(report.Results), report.ResumeID, path)

	return nil
}
