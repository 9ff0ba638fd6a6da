// Package jobfeed retrieves job postings from an Adzuna-style REST feed
// and normalizes them into JobPosting records.
package jobfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/types"
)

const (
	// DefaultAPIURL is the production feed endpoint.
	DefaultAPIURL = "https://api.adzuna.com"
	// DefaultCountry selects the feed's country-scoped index.
	DefaultCountry = "us"
	// DefaultPages is how many result pages a search covers.
	DefaultPages = 2
	// DefaultResultsPerPage is the feed's maximum page size.
	DefaultResultsPerPage = 50

	defaultTimeout = 30 * time.Second
	userAgent      = "jonathan/job-matcher"

	// maxConcurrentPages bounds parallel page fetches.
	maxConcurrentPages = 4
)

// Config holds feed credentials and connection settings.
type Config struct {
	APIURL  string        `json:"api_url"`
	AppID   string        `json:"app_id" validate:"required"`
	AppKey  string        `json:"app_key" validate:"required"`
	Country string        `json:"country"`
	Timeout time.Duration `json:"-"`
}

// Validate checks that required credentials are present.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Client queries the job feed. APIURL and HTTPClient are exported so
// tests can point at a local server.
type Client struct {
	APIURL     string
	HTTPClient *http.Client
	UserAgent  string

	appID   string
	appKey  string
	country string
	logger  *zap.Logger
}

// New builds a feed client, applying defaults for unset config fields.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		APIURL:     cfg.APIURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		UserAgent:  userAgent,
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    cfg.Country,
		logger:     logger,
	}, nil
}

// SearchRequest describes one feed query.
type SearchRequest struct {
	What           string `json:"what" validate:"required"`
	Pages          int    `json:"pages" validate:"gte=1"`
	ResultsPerPage int    `json:"results_per_page" validate:"gte=1,lte=50"`
}

// Validate checks the request after defaults are applied.
func (r *SearchRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *SearchRequest) applyDefaults() {
	if r.Pages == 0 {
		r.Pages = DefaultPages
	}
	if r.ResultsPerPage == 0 {
		r.ResultsPerPage = DefaultResultsPerPage
	}
}

// Search fetches all requested pages and returns the normalized postings
// concatenated in page order. Pages are requested concurrently; the
// first failing page aborts the remaining fetches.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]types.JobPosting, error) {
	req.applyDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	pages := make([][]types.JobPosting, req.Pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for page := 1; page <= req.Pages; page++ {
		page := page
		g.Go(func() error {
			postings, err := c.fetchPage(gctx, req, page)
			if err != nil {
				return err
			}
			pages[page-1] = postings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.JobPosting
	for _, postings := range pages {
		all = append(all, postings...)
	}
	c.logger.Info("fetched job postings",
		zap.String("what", req.What),
		zap.Int("pages", req.Pages),
		zap.Int("count", len(all)))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, req SearchRequest, page int) ([]types.JobPosting, error) {
	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/%d", c.APIURL, c.country, page)

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", req.What)
	q.Set("results_per_page", strconv.Itoa(req.ResultsPerPage))
	q.Set("content-type", "application/json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Set("User-Agent", c.UserAgent)

	c.logger.Debug("requesting feed page", zap.String("endpoint", endpoint), zap.Int("page", page))

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to decode response", Cause: err}
	}

	postings := make([]types.JobPosting, 0, len(payload.Results))
	for _, raw := range payload.Results {
		postings = append(postings, Normalize(raw))
	}
	return postings, nil
}
