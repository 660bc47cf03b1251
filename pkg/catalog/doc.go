// Package catalog defines the records of a remotely hosted, paginated
// catalog and the contract for loading one page of them at a time.
//
// A Page is transient: callers keep at most one resident and replace it
// wholesale on navigation. Anything that must outlive a page (such as the
// selection state in package selection) is keyed by ID, never by Record.
//
// # Loading
//
//	loader, err := client.New(client.DefaultConfig(userAgent))
//	if err != nil {
//		return err
//	}
//	page, err := loader.LoadPage(ctx, 0, 10)
//	if errors.Is(err, catalog.ErrFetch) {
//		// keep showing the previous page
//	}
package catalog
