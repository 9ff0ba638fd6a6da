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
	"github.com/jonathan/job-matcher/internal/ranking"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full matching pipeline end-to-end",
	Long: `Orchestrates the entire matching process: build-resume -> fetch-jobs -> match.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runChunks     string
	runResumeID   string
	runQuery      string
	runPages      int
	runJobsDump   string
	runCourses    string
	runOut        string
	runTopN       int
	runAPIURL     string
	runAppID      string
	runAppKey     string
	runCountry    string
	runValidate   bool
	runVerbose    bool
	runQuiet      bool
	runJSONLogs   bool
	runDBURL      string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runChunks, "chunks", "c", "", "Path to resume chunk JSON file")
	runCommand.Flags().StringVar(&runResumeID, "resume-id", "", "Resume to rank jobs against when the chunk file holds several")
	runCommand.Flags().StringVarP(&runQuery, "query", "q", "", "Search query for the job feed (mutually exclusive with --jobs-dump)")
	runCommand.Flags().IntVar(&runPages, "pages", 0, "Feed pages to fetch")
	runCommand.Flags().StringVar(&runJobsDump, "jobs-dump", "", "Path to an offline feed dump JSON file (mutually exclusive with --query)")
	runCommand.Flags().StringVar(&runCourses, "courses", "", "Path to a course catalog override (optional)")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "", "Output directory for artifacts")
	runCommand.Flags().IntVarP(&runTopN, "top-n", "n", 0, "Number of ranked results to keep")
	runCommand.Flags().StringVar(&runAPIURL, "api-url", "", "Feed API base URL (optional)")
	runCommand.Flags().StringVar(&runAppID, "app-id", "", "Feed application ID (optional, defaults to ADZUNA_APP_ID env var)")
	runCommand.Flags().StringVar(&runAppKey, "app-key", "", "Feed application key (optional, defaults to ADZUNA_APP_KEY env var)")
	runCommand.Flags().StringVar(&runCountry, "country", "", "Feed country code (optional)")
	runCommand.Flags().BoolVar(&runValidate, "validate", false, "Fail when artifacts do not match their schemas")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runQuiet, "quiet", false, "Suppress per-result console output")
	runCommand.Flags().BoolVar(&runJSONLogs, "log-json", false, "Emit logs as JSON")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	// Note: --chunks is not marked required; we validate after merging config

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("chunks") {
		cfg.Chunks = runChunks
	}
	if cmd.Flags().Changed("resume-id") {
		cfg.ResumeID = runResumeID
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = runQuery
	}
	if cmd.Flags().Changed("pages") {
		cfg.Pages = runPages
	}
	if cmd.Flags().Changed("jobs-dump") {
		cfg.JobsDump = runJobsDump
	}
	if cmd.Flags().Changed("courses") {
		cfg.Courses = runCourses
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = runOut
	}
	if cmd.Flags().Changed("top-n") {
		cfg.TopN = runTopN
	}
	if cmd.Flags().Changed("api-url") {
		cfg.FeedAPIURL = runAPIURL
	}
	if cmd.Flags().Changed("app-id") {
		cfg.FeedAppID = runAppID
	}
	if cmd.Flags().Changed("app-key") {
		cfg.FeedAppKey = runAppKey
	}
	if cmd.Flags().Changed("country") {
		cfg.FeedCountry = runCountry
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("log-json") {
		cfg.JSONLogs = runJSONLogs
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDBURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		OutDir: ".",
		Pages:  jobfeed.DefaultPages,
		TopN:   ranking.DefaultTopN,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Fill credentials from the environment
	cfg.FromEnv()

	// Step 5: Validate required fields
	if cfg.Chunks == "" {
		return fmt.Errorf("--chunks is required (via flag or config)")
	}
	if cfg.Query == "" && cfg.JobsDump == "" {
		return fmt.Errorf("either --query or --jobs-dump must be provided (via flag or config)")
	}
	if cfg.Query != "" && cfg.JobsDump != "" {
		return fmt.Errorf("--query and --jobs-dump are mutually exclusive; provide only one")
	}
	if cfg.Query != "" && (cfg.FeedAppID == "" || cfg.FeedAppKey == "") {
		return fmt.Errorf("ADZUNA_APP_ID and ADZUNA_APP_KEY (or --app-id/--app-key) are required to query the feed")
	}

	zapLogger, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	opts := pipeline.RunOptions{
		ChunksPath: cfg.Chunks,
		ResumeID:   cfg.ResumeID,
		Query:      cfg.Query,
		Pages:      cfg.Pages,
		JobsDump:   cfg.JobsDump,
		Feed: jobfeed.Config{
			APIURL:  cfg.FeedAPIURL,
			AppID:   cfg.FeedAppID,
			AppKey:  cfg.FeedAppKey,
			Country: cfg.FeedCountry,
		},
		CoursesPath: cfg.Courses,
		OutDir:      cfg.OutDir,
		TopN:        cfg.TopN,
		Strict:      runValidate,
		Verbose:     cfg.Verbose,
		Quiet:       runQuiet,
		DatabaseURL: cfg.DatabaseURL,
		Logger:      zapLogger,
	}

	return pipeline.Run(ctx, opts)
}
