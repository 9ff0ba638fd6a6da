// Package main provides the entry point for the job_matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_matcher",
	Short: "Rank job postings against featurized resumes",
	Long:  "Job Matcher featurizes resume text with a TF-IDF vocabulary, pulls postings from a job feed, and ranks them by semantic similarity, keyword overlap, recency, and popularity, reporting skill gaps and course suggestions alongside each match.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
