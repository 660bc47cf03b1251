// Package testutil provides testing utilities for the catalog client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
)

// ListingPath is the path the mock serves the listing endpoint on.
const ListingPath = "/api/v1/artworks"

// MockResponse defines a canned response overriding the listing.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockCatalog is a configurable mock listing endpoint for testing. By
// default it pages over Records the way the upstream does.
type MockCatalog struct {
	server  *httptest.Server
	mu      sync.RWMutex
	records []catalog.Record
	handler func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	LastQuery         url.Values
}

// NewMockCatalog creates a mock catalog holding records.
func NewMockCatalog(records []catalog.Record) *MockCatalog {
	mock := &MockCatalog{
		records: records,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.LastQuery = r.URL.Query()
		handler := mock.handler
		mock.mu.Unlock()

		if r.URL.Path != ListingPath {
			http.NotFound(w, r)
			return
		}

		if handler != nil {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the listing endpoint URL.
func (m *MockCatalog) URL() string {
	return m.server.URL + ListingPath
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears tracking counters and any override.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.LastQuery = nil
	m.handler = nil
}

// SetRecords replaces the backing records. Later requests observe the
// mutated catalog.
func (m *MockCatalog) SetRecords(records []catalog.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
}

// SetHandler overrides the listing handler.
func (m *MockCatalog) SetHandler(handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// SetResponse overrides the listing with a canned response.
func (m *MockCatalog) SetResponse(resp MockResponse) {
	m.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastQuery returns the query of the most recent request.
func (m *MockCatalog) GetLastQuery() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastQuery
}

// GetLastRequestHeader returns the headers of the most recent request.
func (m *MockCatalog) GetLastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastRequestHeader
}

// defaultHandler serves one 1-based page of the backing records.
func (m *MockCatalog) defaultHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 1 {
		limit = 12
	}

	m.mu.RLock()
	records := m.records
	m.mu.RUnlock()

	body, err := ListingBody(records, page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ListingBody renders the upstream listing JSON for one 1-based page.
func ListingBody(records []catalog.Record, page, limit int) ([]byte, error) {
	offset := (page - 1) * limit
	start := min(offset, len(records))
	end := min(offset+limit, len(records))

	totalPages := 0
	if limit > 0 {
		totalPages = (len(records) + limit - 1) / limit
	}

	body := map[string]any{
		"pagination": map[string]int{
			"total":        len(records),
			"limit":        limit,
			"offset":       offset,
			"total_pages":  totalPages,
			"current_page": page,
		},
		"data": records[start:end],
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal listing: %w", err)
	}
	return data, nil
}

// SequentialRecords returns records with IDs from..to inclusive.
func SequentialRecords(from, to int) []catalog.Record {
	records := make([]catalog.Record, 0, max(to-from+1, 0))
	for id := from; id <= to; id++ {
		records = append(records, catalog.Record{
			ID:            catalog.ID(id),
			Title:         fmt.Sprintf("Artwork %d", id),
			PlaceOfOrigin: "Chicago",
			ArtistDisplay: fmt.Sprintf("Artist %d", id),
		})
	}
	return records
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"status": 404, "error": "Not found"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewMalformedResponse creates a 200 OK response whose body is not JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `<html>maintenance</html>`,
		Headers: map[string]string{
			"Content-Type": "text/html",
		},
	}
}
