package jobfeed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AllFields(t *testing.T) {
	posting := Normalize(RawPosting{
		ID:          "9001",
		Title:       "Machine Learning Engineer",
		Description: "TensorFlow and PyTorch models in production.",
		RedirectURL: "https://example.com/jobs/9001",
		Created:     "2026-07-20T14:00:00Z",
		Company:     RawCompany{DisplayName: "DeepWork"},
		Location:    RawLocation{DisplayName: "Seattle, WA"},
	})

	assert.Equal(t, "9001", posting.JobID)
	assert.Equal(t, "Machine Learning Engineer", posting.Title)
	assert.Equal(t, "TensorFlow and PyTorch models in production.", posting.Description)
	assert.Equal(t, "DeepWork", posting.Company)
	assert.Equal(t, "Seattle, WA", posting.Location)
	assert.Equal(t, "https://example.com/jobs/9001", posting.URL)
	require.NotNil(t, posting.PostedAt)
	assert.True(t, posting.PostedAt.Equal(time.Date(2026, 7, 20, 14, 0, 0, 0, time.UTC)))
}

func TestNormalize_StripsHighlightMarkup(t *testing.T) {
	posting := Normalize(RawPosting{
		ID:          "1",
		Title:       "Senior <strong>Python</strong> Developer",
		Description: "<p>Needs <strong>SQL</strong> and\n\nAWS   experience.</p>",
	})

	assert.Equal(t, "Senior Python Developer", posting.Title)
	assert.Equal(t, "Needs SQL and AWS experience.", posting.Description)
}

func TestNormalize_MissingIDGetsUUID(t *testing.T) {
	first := Normalize(RawPosting{Title: "Untracked role"})
	second := Normalize(RawPosting{Title: "Untracked role"})

	_, err := uuid.Parse(first.JobID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.JobID, second.JobID)
}

func TestNormalize_MalformedTimestampIgnored(t *testing.T) {
	posting := Normalize(RawPosting{ID: "1", Created: "yesterday"})

	assert.Nil(t, posting.PostedAt)
}

func TestNormalize_MissingTimestampIgnored(t *testing.T) {
	posting := Normalize(RawPosting{ID: "1"})

	assert.Nil(t, posting.PostedAt)
}

func TestLoadDump_SearchResponseShape(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "dump.json")
	content := `{"results": [
		{"id": "d1", "title": "Data Engineer", "company": {"display_name": "Acme"}},
		{"id": "d2", "title": "Analyst"}
	]}`
	require.NoError(t, os.WriteFile(dumpPath, []byte(content), 0644))

	postings, err := LoadDump(dumpPath)

	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "d1", postings[0].JobID)
	assert.Equal(t, "Acme", postings[0].Company)
	assert.Equal(t, "d2", postings[1].JobID)
}

func TestLoadDump_BareArrayShape(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "dump.json")
	content := `[{"id": "d1", "title": "Data Engineer"}]`
	require.NoError(t, os.WriteFile(dumpPath, []byte(content), 0644))

	postings, err := LoadDump(dumpPath)

	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "d1", postings[0].JobID)
}

func TestLoadDump_MissingFile(t *testing.T) {
	_, err := LoadDump(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read feed dump")
}

func TestLoadDump_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(dumpPath, []byte("<<not json>>"), 0644))

	_, err := LoadDump(dumpPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed dump")
}
