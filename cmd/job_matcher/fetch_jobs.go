package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/jobfeed"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/pipeline"
	"github.com/jonathan/job-matcher/internal/tfidf"
)

var fetchJobsCmd = &cobra.Command{
	Use:   "fetch-jobs",
	Short: "Fetch job postings and featurize them under the fitted vocabulary",
	Long:  "Pulls postings from the job feed (or an offline dump), extracts required skills, and vectorizes each description with the vocabulary produced by build-resume. The vocabulary is never refitted here.",
	RunE:  runFetchJobs,
}

var (
	fetchQuery      string
	fetchPages      int
	fetchJobsDump   string
	fetchVocabulary string
	fetchAPIURL     string
	fetchAppID      string
	fetchAppKey     string
	fetchCountry    string
	fetchOut        string
	fetchValidate   bool
	fetchVerbose    bool
	fetchJSONLogs   bool
	fetchDBURL      string
)

func init() {
	fetchJobsCmd.Flags().StringVarP(&fetchQuery, "query", "q", "", "Search query for the job feed (mutually exclusive with --jobs-dump)")
	fetchJobsCmd.Flags().IntVar(&fetchPages, "pages", jobfeed.DefaultPages, "Feed pages to fetch")
	fetchJobsCmd.Flags().StringVar(&fetchJobsDump, "jobs-dump", "", "Path to an offline feed dump JSON file (mutually exclusive with --query)")
	fetchJobsCmd.Flags().StringVar(&fetchVocabulary, "vocabulary", pipeline.VocabularyFile, "Path to the fitted vocabulary artifact")
	fetchJobsCmd.Flags().StringVar(&fetchAPIURL, "api-url", "", "Feed API base URL (optional)")
	fetchJobsCmd.Flags().StringVar(&fetchAppID, "app-id", "", "Feed application ID (optional, defaults to ADZUNA_APP_ID env var)")
	fetchJobsCmd.Flags().StringVar(&fetchAppKey, "app-key", "", "Feed application key (optional, defaults to ADZUNA_APP_KEY env var)")
	fetchJobsCmd.Flags().StringVar(&fetchCountry, "country", "", "Feed country code (optional)")
	fetchJobsCmd.Flags().StringVarP(&fetchOut, "out", "o", ".", "Output directory for artifacts")
	fetchJobsCmd.Flags().BoolVar(&fetchValidate, "validate", false, "Fail when artifacts do not match their schemas")
	fetchJobsCmd.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "Print the featurized postings")
	fetchJobsCmd.Flags().BoolVar(&fetchJSONLogs, "log-json", false, "Emit logs as JSON")
	fetchJobsCmd.Flags().StringVar(&fetchDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(fetchJobsCmd)
}

func runFetchJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Validate mutually exclusive flags
	if fetchQuery == "" && fetchJobsDump == "" {
		return fmt.Errorf("either --query or --jobs-dump must be provided")
	}
	if fetchQuery != "" && fetchJobsDump != "" {
		return fmt.Errorf("--query and --jobs-dump are mutually exclusive; provide only one")
	}

	if fetchAppID == "" {
		fetchAppID = os.Getenv(config.EnvFeedAppID)
	}
	if fetchAppKey == "" {
		fetchAppKey = os.Getenv(config.EnvFeedAppKey)
	}
	if fetchQuery != "" && (fetchAppID == "" || fetchAppKey == "") {
		return fmt.Errorf("ADZUNA_APP_ID and ADZUNA_APP_KEY (or --app-id/--app-key) are required to query the feed")
	}

	vocab, err := tfidf.Load(fetchVocabulary)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary (run build-resume first): %w", err)
	}

	zapLogger, err := logger.New(fetchJSONLogs, fetchVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	database := connectBestEffort(ctx, fetchDBURL)
	if database != nil {
		defer database.Close()
	}

	postings, path, err := pipeline.FetchJobs(ctx, pipeline.FetchJobsOptions{
		Query:    fetchQuery,
		Pages:    fetchPages,
		DumpPath: fetchJobsDump,
		Feed: jobfeed.Config{
			APIURL:  fetchAPIURL,
			AppID:   fetchAppID,
			AppKey:  fetchAppKey,
			Country: fetchCountry,
		},
		Vocabulary: vocab,
		OutDir:     fetchOut,
		Strict:     fetchValidate,
		Verbose:    fetchVerbose,
		Database:   database,
		Logger:     zapLogger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Successfully featurized %d job postings to %s\n", len(postings), path)

	return nil
}
