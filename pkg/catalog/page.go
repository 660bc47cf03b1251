package catalog

import "context"

// Page is one fetched batch of records plus the total record count across
// all pages.
type Page struct {
	// Index is the 0-based page index that was requested.
	Index int `json:"index"`

	// Size is the page size that was requested. The last page may hold
	// fewer records.
	Size int `json:"size"`

	// Records are in upstream order.
	Records []Record `json:"records"`

	// Total is the number of records in the whole catalog.
	Total int `json:"total"`
}

// Len returns the number of records resident on the page.
func (p *Page) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Records)
}

// Loader retrieves exactly one page of records and the total record count.
// Implementations do not retry and do not cache: each call is independent
// and may observe a catalog that changed since the previous call.
type Loader interface {
	// LoadPage fetches the page at the 0-based pageIndex. Failures are
	// reported as *FetchError.
	LoadPage(ctx context.Context, pageIndex, pageSize int) (*Page, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, pageIndex, pageSize int) (*Page, error)

// LoadPage calls f.
func (f LoaderFunc) LoadPage(ctx context.Context, pageIndex, pageSize int) (*Page, error) {
	return f(ctx, pageIndex, pageSize)
}
