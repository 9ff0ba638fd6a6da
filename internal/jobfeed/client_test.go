package jobfeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New(Config{
		APIURL: serverURL,
		AppID:  "test-app-id",
		AppKey: "test-app-key",
	}, nil)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{AppID: "id-only"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid feed config")
}

func TestNew_AppliesDefaults(t *testing.T) {
	client, err := New(Config{AppID: "id", AppKey: "key"}, nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, client.APIURL)
	assert.Equal(t, "us", client.country)
}

func TestSearch_SinglePage(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"app_id":           r.URL.Query().Get("app_id"),
			"app_key":          r.URL.Query().Get("app_key"),
			"what":             r.URL.Query().Get("what"),
			"results_per_page": r.URL.Query().Get("results_per_page"),
		}
		fmt.Fprint(w, `{"results": [
			{
				"id": "4001",
				"title": "Senior <strong>Python</strong> Engineer",
				"description": "<p>Build pipelines with Python and SQL.</p>",
				"redirect_url": "https://example.com/jobs/4001",
				"created": "2026-08-01T09:30:00Z",
				"company": {"display_name": "Acme Analytics"},
				"location": {"display_name": "Remote, US"}
			},
			{
				"id": "4002",
				"title": "Data Analyst",
				"description": "Excel and Tableau reporting.",
				"redirect_url": "https://example.com/jobs/4002",
				"company": {"display_name": "Beta Corp"},
				"location": {"display_name": "Austin, TX"}
			}
		]}`)
	}))
	defer server.Close()

	postings, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{
		What:           "data engineer",
		Pages:          1,
		ResultsPerPage: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/api/jobs/us/search/1", gotPath)
	assert.Equal(t, "test-app-id", gotQuery["app_id"])
	assert.Equal(t, "test-app-key", gotQuery["app_key"])
	assert.Equal(t, "data engineer", gotQuery["what"])
	assert.Equal(t, "25", gotQuery["results_per_page"])

	require.Len(t, postings, 2)
	first := postings[0]
	assert.Equal(t, "4001", first.JobID)
	assert.Equal(t, "Senior Python Engineer", first.Title)
	assert.Equal(t, "Build pipelines with Python and SQL.", first.Description)
	assert.Equal(t, "Acme Analytics", first.Company)
	assert.Equal(t, "Remote, US", first.Location)
	assert.Equal(t, "https://example.com/jobs/4001", first.URL)
	require.NotNil(t, first.PostedAt)
	assert.True(t, first.PostedAt.Equal(time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)))

	assert.Nil(t, postings[1].PostedAt)
}

func TestSearch_ConcatenatesPagesInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := path.Base(r.URL.Path)
		fmt.Fprintf(w, `{"results": [{"id": "job-p%s-a"}, {"id": "job-p%s-b"}]}`, page, page)
	}))
	defer server.Close()

	postings, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{
		What:  "engineer",
		Pages: 3,
	})

	require.NoError(t, err)
	ids := make([]string, len(postings))
	for i, p := range postings {
		ids[i] = p.JobID
	}
	assert.Equal(t, []string{
		"job-p1-a", "job-p1-b",
		"job-p2-a", "job-p2-b",
		"job-p3-a", "job-p3-b",
	}, ids)
}

func TestSearch_DefaultsApplied(t *testing.T) {
	var mu sync.Mutex
	pagesSeen := make(map[string]string)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		pagesSeen[path.Base(r.URL.Path)] = r.URL.Query().Get("results_per_page")
		mu.Unlock()
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{What: "engineer"})

	require.NoError(t, err)
	require.Len(t, pagesSeen, DefaultPages)
	assert.Equal(t, strconv.Itoa(DefaultResultsPerPage), pagesSeen["1"])
	assert.Equal(t, strconv.Itoa(DefaultResultsPerPage), pagesSeen["2"])
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	client, err := New(Config{AppID: "id", AppKey: "key"}, nil)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search request")
}

func TestSearch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{What: "engineer", Pages: 1})

	require.Error(t, err)
	var feedErr *Error
	require.ErrorAs(t, err, &feedErr)
	assert.Contains(t, feedErr.Message, "HTTP status 401")
}

func TestSearch_ErrorOmitsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{What: "engineer", Pages: 1})

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "test-app-key")
	assert.NotContains(t, err.Error(), "test-app-id")
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{What: "engineer", Pages: 1})

	require.Error(t, err)
	var feedErr *Error
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, "failed to decode response", feedErr.Message)
}

func TestSearch_FailingPageAbortsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Base(r.URL.Path) == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"results": [{"id": "ok"}]}`)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), SearchRequest{What: "engineer", Pages: 3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 500")
}
