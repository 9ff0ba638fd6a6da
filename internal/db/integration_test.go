//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/job-matcher/internal/tfidf"
	"github.com/jonathan/job-matcher/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Clean up test data before each test
	_, _ = db.pool.Exec(ctx, "DELETE FROM resumes WHERE id LIKE 'it-%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM resume_chunks WHERE resume_id LIKE 'it-%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM job_postings WHERE id LIKE 'it-%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM vocabularies WHERE name LIKE 'it-%'")

	return db
}

func TestIntegration_ResumeChunks_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	chunks := []types.ResumeChunk{
		{ResumeID: "it-resume-1", ChunkIndex: 1, Content: "second part"},
		{ResumeID: "it-resume-1", ChunkIndex: 0, Content: "first part"},
	}
	if err := db.SaveResumeChunks(ctx, chunks); err != nil {
		t.Fatalf("SaveResumeChunks failed: %v", err)
	}

	// Upsert replaces content on the same key
	if err := db.SaveResumeChunks(ctx, []types.ResumeChunk{
		{ResumeID: "it-resume-1", ChunkIndex: 0, Content: "first part revised"},
	}); err != nil {
		t.Fatalf("SaveResumeChunks upsert failed: %v", err)
	}

	stored, err := db.ListResumeChunks(ctx)
	if err != nil {
		t.Fatalf("ListResumeChunks failed: %v", err)
	}

	var mine []types.ResumeChunk
	for _, c := range stored {
		if c.ResumeID == "it-resume-1" {
			mine = append(mine, c)
		}
	}
	if len(mine) != 2 {
		t.Fatalf("got %d chunks, want 2", len(mine))
	}
	if mine[0].ChunkIndex != 0 || mine[0].Content != "first part revised" {
		t.Errorf("chunk 0 = %+v, want revised first part", mine[0])
	}
	if mine[1].ChunkIndex != 1 {
		t.Errorf("chunk order wrong: %+v", mine)
	}
}

func TestIntegration_ResumeProfile_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	profile := &types.ResumeProfile{
		ResumeID: "it-resume-2",
		FullText: "Python developer with SQL and AWS experience",
		Summary:  "Python developer...",
		Skills:   []string{"aws", "python", "sql"},
		Vector:   []float64{0.6, 0.8, 0.0},
	}
	if err := db.SaveResumeProfile(ctx, profile); err != nil {
		t.Fatalf("SaveResumeProfile failed: %v", err)
	}

	loaded, err := db.GetResumeProfile(ctx, "it-resume-2")
	if err != nil {
		t.Fatalf("GetResumeProfile failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("GetResumeProfile returned nil for saved profile")
	}
	if loaded.FullText != profile.FullText {
		t.Errorf("FullText = %q, want %q", loaded.FullText, profile.FullText)
	}
	if len(loaded.Skills) != 3 || loaded.Skills[1] != "python" {
		t.Errorf("Skills = %v, want %v", loaded.Skills, profile.Skills)
	}
	if len(loaded.Vector) != 3 {
		t.Fatalf("Vector dim = %d, want 3", len(loaded.Vector))
	}
	if diff := loaded.Vector[0] - 0.6; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Vector[0] = %f, want 0.6", loaded.Vector[0])
	}
}

func TestIntegration_ResumeProfile_MissingReturnsNil(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	loaded, err := db.GetResumeProfile(context.Background(), "it-no-such-resume")
	if err != nil {
		t.Fatalf("GetResumeProfile failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("GetResumeProfile = %+v, want nil", loaded)
	}
}

func TestIntegration_JobPostings_UpsertAndList(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	posted := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	postings := []types.JobPosting{
		{
			JobID:       "it-job-1",
			Title:       "Data Engineer",
			Company:     "Acme",
			Location:    "Remote",
			Description: "Python and SQL pipelines",
			URL:         "https://example.com/jobs/1",
			PostedAt:    &posted,
			Skills:      []string{"python", "sql"},
			Vector:      []float64{1, 0},
		},
		{JobID: "it-job-2", Title: "Analyst"},
	}
	if err := db.UpsertJobPostings(ctx, postings); err != nil {
		t.Fatalf("UpsertJobPostings failed: %v", err)
	}

	// Re-upsert with a changed title
	postings[0].Title = "Senior Data Engineer"
	if err := db.UpsertJobPostings(ctx, postings[:1]); err != nil {
		t.Fatalf("UpsertJobPostings update failed: %v", err)
	}

	loaded, err := db.GetJobPosting(ctx, "it-job-1")
	if err != nil {
		t.Fatalf("GetJobPosting failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("GetJobPosting returned nil for saved posting")
	}
	if loaded.Title != "Senior Data Engineer" {
		t.Errorf("Title = %q, want updated title", loaded.Title)
	}
	if loaded.PostedAt == nil || !loaded.PostedAt.Equal(posted) {
		t.Errorf("PostedAt = %v, want %v", loaded.PostedAt, posted)
	}
	if len(loaded.Skills) != 2 {
		t.Errorf("Skills = %v, want 2 entries", loaded.Skills)
	}

	all, err := db.ListJobPostings(ctx, 50)
	if err != nil {
		t.Fatalf("ListJobPostings failed: %v", err)
	}
	found := 0
	for _, p := range all {
		if p.JobID == "it-job-1" || p.JobID == "it-job-2" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("found %d test postings in list, want 2", found)
	}
}

func TestIntegration_Vocabulary_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	vocab, err := tfidf.Fit([]string{"python sql python", "sql engineer"}, tfidf.DefaultOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if err := db.SaveVocabulary(ctx, "it-vocab", vocab); err != nil {
		t.Fatalf("SaveVocabulary failed: %v", err)
	}

	loaded, err := db.GetVocabulary(ctx, "it-vocab")
	if err != nil {
		t.Fatalf("GetVocabulary failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("GetVocabulary returned nil for saved vocabulary")
	}
	if loaded.Dim() != vocab.Dim() {
		t.Errorf("Dim = %d, want %d", loaded.Dim(), vocab.Dim())
	}

	// The loaded vocabulary must produce identical vectors
	doc := "python sql"
	a := vocab.Transform(doc)
	b := loaded.Transform(doc)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Transform mismatch at %d: %f vs %f", i, a[i], b[i])
		}
	}

	missing, err := db.GetVocabulary(ctx, "it-absent-vocab")
	if err != nil {
		t.Fatalf("GetVocabulary failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetVocabulary = %+v, want nil", missing)
	}
}
