package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/pipeline"
)

var buildResumeCmd = &cobra.Command{
	Use:   "build-resume",
	Short: "Featurize resumes from extracted text chunks",
	Long:  "Assembles resume chunks into full texts, fits the TF-IDF vocabulary over the resume corpus, extracts skills, and writes the resume profile and vocabulary artifacts.",
	RunE:  runBuildResume,
}

var (
	buildChunks   string
	buildResumeID string
	buildOut      string
	buildValidate bool
	buildVerbose  bool
	buildDBURL    string
)

func init() {
	buildResumeCmd.Flags().StringVarP(&buildChunks, "chunks", "c", "", "Path to resume chunk JSON file (required)")
	buildResumeCmd.Flags().StringVar(&buildResumeID, "resume-id", "", "Resume to select when the chunk file holds several")
	buildResumeCmd.Flags().StringVarP(&buildOut, "out", "o", ".", "Output directory for artifacts")
	buildResumeCmd.Flags().BoolVar(&buildValidate, "validate", false, "Fail when artifacts do not match their schemas")
	buildResumeCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print the featurized profile")
	buildResumeCmd.Flags().StringVar(&buildDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := buildResumeCmd.MarkFlagRequired("chunks"); err != nil {
		panic(fmt.Sprintf("failed to mark chunks flag as required: %v", err))
	}

	rootCmd.AddCommand(buildResumeCmd)
}

// connectBestEffort opens the database when a URL is available. Connection
// problems are reported as warnings; the pipeline runs without persistence.
func connectBestEffort(ctx context.Context, databaseURL string) *db.DB {
	if databaseURL == "" {
		databaseURL = os.Getenv(config.EnvDatabaseURL)
	}
	if databaseURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Warning: Failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without database persistence...\n")
		return nil
	}
	if err := database.Migrate(ctx); err != nil {
		fmt.Printf("Warning: Failed to run migrations: %v\n", err)
	}
	return database
}

func runBuildResume(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	database := connectBestEffort(ctx, buildDBURL)
	if database != nil {
		defer database.Close()
	}

	result, err := pipeline.BuildResume(ctx, pipeline.BuildResumeOptions{
		ChunksPath: buildChunks,
		ResumeID:   buildResumeID,
		OutDir:     buildOut,
		Strict:     buildValidate,
		Verbose:    buildVerbose,
		Database:   database,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Successfully featurized %d resumes (vocabulary: %d terms)\n", len(result.Profiles), result.Vocabulary.Dim())
	fmt.Fprintf(os.Stdout, "Resume profile: %s\n", result.ProfilePath)
	fmt.Fprintf(os.Stdout, "Vocabulary: %s\n", result.VocabularyPath)

	return nil
}
