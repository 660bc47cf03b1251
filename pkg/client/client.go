// Package client provides the HTTP Page Loader for the remote catalog
// listing endpoint.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
	"github.com/Sternrassler/catalog-select/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Art Institute of Chicago artworks listing endpoint.
const DefaultBaseURL = "https://api.artic.edu/api/v1/artworks"

// Prometheus metrics for catalog page loads.
var (
	catalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total catalog page requests by status",
	}, []string{"status"})

	catalogRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Catalog page request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	catalogFetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Total failed catalog page loads by error class",
	}, []string{"class"})
)

// Client loads catalog pages over HTTP. It implements catalog.Loader.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the listing endpoint. Page and limit are appended as
	// query parameters.
	BaseURL string

	// User-Agent header (REQUIRED)
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// Timeout bounds a single page request.
	Timeout time.Duration

	// Fields restricts the attributes returned per record. Empty requests
	// the upstream default set.
	Fields []string

	// Paging holds the page size limits applied before each request.
	Paging pagination.Config
}

// DefaultConfig returns a default configuration for the public artworks
// endpoint.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
		Fields:    catalog.RecordFields,
		Paging:    pagination.DefaultConfig(),
	}
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", baseURL.Scheme)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "catalog-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		config:  cfg,
		logger:  logger,
	}, nil
}

// listResponse is the body of the listing endpoint.
type listResponse struct {
	Data       []catalog.Record `json:"data"`
	Pagination struct {
		Total       int `json:"total"`
		Limit       int `json:"limit"`
		Offset      int `json:"offset"`
		TotalPages  int `json:"total_pages"`
		CurrentPage int `json:"current_page"`
	} `json:"pagination"`
}

// LoadPage fetches the page at the 0-based pageIndex. There are no retries
// and nothing is cached. Every failure comes back as *catalog.FetchError.
func (c *Client) LoadPage(ctx context.Context, pageIndex, pageSize int) (*catalog.Page, error) {
	page := c.config.Paging.Normalize(pageIndex, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), nil)
	if err != nil {
		return nil, c.fetchError(page.Index, 0, catalog.ErrorClassNetwork, "create request", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, c.fetchError(page.Index, 0, catalog.ErrorClassNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	if class := catalog.ClassifyStatus(resp.StatusCode); class != "" {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fetchError(page.Index, resp.StatusCode, class, resp.Status, nil)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, c.fetchError(page.Index, resp.StatusCode, catalog.ErrorClassDecode, "decode response body", err)
	}

	records := body.Data
	if records == nil {
		records = []catalog.Record{}
	}

	c.logger.Debug().
		Int("page", page.Index).
		Int("size", page.Size).
		Int("records", len(records)).
		Int("total", body.Pagination.Total).
		Msg("Loaded catalog page")

	return &catalog.Page{
		Index:   page.Index,
		Size:    page.Size,
		Records: records,
		Total:   body.Pagination.Total,
	}, nil
}

// Do performs an HTTP request with the configured headers and records
// request metrics. Non-2xx responses are returned as-is for the caller to
// classify.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	defer func() {
		catalogRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", req.URL.String()).
		Str("method", req.Method).
		Msg("Executing catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		catalogRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, err
	}

	catalogRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// pageURL builds the listing URL for one page. The wire page number is
// 1-based.
func (c *Client) pageURL(page pagination.Request) string {
	u := *c.baseURL
	query := u.Query()
	query.Set("page", strconv.Itoa(page.Number()))
	query.Set("limit", strconv.Itoa(page.Size))
	if len(c.config.Fields) > 0 {
		query.Set("fields", strings.Join(c.config.Fields, ","))
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// fetchError builds, counts and logs a FetchError.
func (c *Client) fetchError(pageIndex, statusCode int, class catalog.ErrorClass, msg string, cause error) *catalog.FetchError {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		msg = "request cancelled"
	}

	catalogFetchErrorsTotal.WithLabelValues(string(class)).Inc()

	c.logger.Warn().
		Err(cause).
		Int("page", pageIndex).
		Int("status", statusCode).
		Str("error_class", string(class)).
		Msg("Catalog page load failed")

	return &catalog.FetchError{
		PageIndex:  pageIndex,
		StatusCode: statusCode,
		ErrorClass: class,
		Message:    msg,
		Err:        cause,
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

var _ catalog.Loader = (*Client)(nil)
