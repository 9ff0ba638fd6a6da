// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names for credential overrides.
const (
	EnvFeedAppID   = "ADZUNA_APP_ID"
	EnvFeedAppKey  = "ADZUNA_APP_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Chunks   string `json:"chunks,omitempty"`    // Path to resume chunk JSON file
	JobsDump string `json:"jobs_dump,omitempty"` // Path to an offline job feed dump
	Courses  string `json:"courses,omitempty"`   // Path to a course catalog override
	OutDir   string `json:"out_dir,omitempty"`   // Directory for pipeline artifacts

	// Job feed
	FeedAPIURL  string `json:"feed_api_url,omitempty"`
	FeedAppID   string `json:"feed_app_id,omitempty"`
	FeedAppKey  string `json:"feed_app_key,omitempty"`
	FeedCountry string `json:"feed_country,omitempty"`
	Query       string `json:"query,omitempty"` // Search query for the job feed
	Pages       int    `json:"pages,omitempty"` // Feed pages to fetch

	// Matching
	ResumeID string `json:"resume_id,omitempty"` // Resume to rank jobs against
	TopN     int    `json:"top_n,omitempty"`     // Number of ranked results to keep

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	JSONLogs    bool   `json:"json_logs,omitempty"`    // Emit logs as JSON
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset credential fields from the environment, so secrets
// can stay out of config files.
func (c *Config) FromEnv() {
	if c.FeedAppID == "" {
		c.FeedAppID = os.Getenv(EnvFeedAppID)
	}
	if c.FeedAppKey == "" {
		c.FeedAppKey = os.Getenv(EnvFeedAppKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Query != "" && c.JobsDump != "" {
		return fmt.Errorf("config error: 'query' and 'jobs_dump' are mutually exclusive")
	}

	if c.Pages < 0 {
		return fmt.Errorf("config error: 'pages' must be non-negative")
	}
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}

	if c.Chunks != "" {
		if _, err := os.Stat(c.Chunks); os.IsNotExist(err) {
			return fmt.Errorf("config error: chunks file not found: %s", c.Chunks)
		}
	}
	if c.JobsDump != "" {
		if _, err := os.Stat(c.JobsDump); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs dump file not found: %s", c.JobsDump)
		}
	}
	if c.Courses != "" {
		if _, err := os.Stat(c.Courses); os.IsNotExist(err) {
			return fmt.Errorf("config error: course catalog file not found: %s", c.Courses)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Chunks == "" {
		result.Chunks = defaults.Chunks
	}
	if result.JobsDump == "" {
		result.JobsDump = defaults.JobsDump
	}
	if result.Courses == "" {
		result.Courses = defaults.Courses
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.FeedAPIURL == "" {
		result.FeedAPIURL = defaults.FeedAPIURL
	}
	if result.FeedAppID == "" {
		result.FeedAppID = defaults.FeedAppID
	}
	if result.FeedAppKey == "" {
		result.FeedAppKey = defaults.FeedAppKey
	}
	if result.FeedCountry == "" {
		result.FeedCountry = defaults.FeedCountry
	}
	if result.Query == "" {
		result.Query = defaults.Query
	}
	if result.ResumeID == "" {
		result.ResumeID = defaults.ResumeID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Pages == 0 {
		result.Pages = defaults.Pages
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
