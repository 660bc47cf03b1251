// Package pagination converts between the 0-based page indexes used inside
// this module and the 1-based page numbers of the listing endpoint, and
// normalizes the page size and index a caller asks for.
//
// Only the page being viewed is ever fetched. There is deliberately no
// prefetching or batch fetching of neighbouring pages.
//
// Example usage:
//
//	cfg := pagination.DefaultConfig()
//	req := cfg.Normalize(pageIndex, pageSize)
//	query := url.Values{}
//	query.Set("page", strconv.Itoa(req.Number()))
//	query.Set("limit", strconv.Itoa(req.Size))
package pagination
