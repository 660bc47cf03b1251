// Package session coordinates page loading with the selection store: it
// owns the resident page, forwards UI events into the store and derives
// what the UI should render.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
	"github.com/Sternrassler/catalog-select/pkg/pagination"
	"github.com/Sternrassler/catalog-select/pkg/selection"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrNoLoader is returned by New when no page loader is configured.
var ErrNoLoader = errors.New("page loader is required")

// Config holds the session configuration.
type Config struct {
	// Loader fetches pages (REQUIRED).
	Loader catalog.Loader

	// PageSize is the number of records per page.
	PageSize int

	// ReconcileMode chooses how unchecked rows are handled.
	ReconcileMode selection.ReconcileMode
}

// DefaultConfig returns a configuration with ten records per page and
// two-way reconciliation.
func DefaultConfig(loader catalog.Loader) Config {
	return Config{
		Loader:        loader,
		PageSize:      pagination.DefaultSize,
		ReconcileMode: selection.ReconcileTwoWay,
	}
}

// View is a snapshot of what the UI renders.
type View struct {
	PageIndex  int              `json:"page_index"`
	PageSize   int              `json:"page_size"`
	Offset     int              `json:"offset"` // catalog position of the first record
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	Records    []catalog.Record `json:"records"`

	// SelectedIDs is the displayed selection: selected IDs of Records in
	// page order.
	SelectedIDs []catalog.ID `json:"selected_ids"`

	// SelectionCount counts selected IDs across every page.
	SelectionCount int    `json:"selection_count"`
	Loading        bool   `json:"loading"`
	DialogOpen     bool   `json:"dialog_open"`
	LastError      string `json:"last_error,omitempty"`
}

// Session is the coordinator between the page loader, the selection store
// and the UI.
//
// Handlers may call it concurrently; every operation completes before the
// next one observes state. A page load does not hold the lock while the
// request is in flight, so selection events are not blocked by it.
type Session struct {
	mu       sync.Mutex
	loader   catalog.Loader
	pageSize int
	page     *catalog.Page
	pending  int
	lastErr  error
	store    *selection.Store
	dialog   *selection.Dialog
	logger   zerolog.Logger
}

// New creates a session with no page loaded.
func New(cfg Config) (*Session, error) {
	if cfg.Loader == nil {
		return nil, ErrNoLoader
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be > 0 (got %d)", cfg.PageSize)
	}

	logger := log.With().Str("component", "session").Logger()

	store := selection.NewStore(
		selection.WithReconcileMode(cfg.ReconcileMode),
		selection.WithLogger(logger),
	)
	dialog := selection.NewDialog(store)
	dialog.OnTransition(func(from, to selection.DialogState) {
		logger.Debug().
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Bulk-select dialog transition")
	})

	return &Session{
		loader:   cfg.Loader,
		pageSize: cfg.PageSize,
		store:    store,
		dialog:   dialog,
		logger:   logger,
	}, nil
}

// Navigate loads the page at the 0-based pageIndex and makes it current.
//
// The lock is released while the loader runs. Whichever response arrives
// last becomes the current page, even if it answers an older navigation.
// On failure the previous page and the selection are left as they were and
// the *catalog.FetchError is returned.
func (s *Session) Navigate(ctx context.Context, pageIndex int) error {
	s.mu.Lock()
	s.pending++
	pageSize := s.pageSize
	s.mu.Unlock()

	s.logger.Info().
		Int("page", pageIndex).
		Int("size", pageSize).
		Msg("Loading page")

	page, err := s.loader.LoadPage(ctx, pageIndex, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--

	if err != nil {
		s.lastErr = err
		s.logger.Warn().
			Err(err).
			Int("page", pageIndex).
			Msg("Page load failed, keeping previous page")
		return err
	}

	s.page = page
	s.lastErr = nil
	return nil
}

// ChangeSelection applies the UI's checked rows for the current page.
// Without a loaded page it does nothing.
func (s *Session) ChangeSelection(checked []catalog.ID) selection.Delta {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return selection.Delta{}
	}
	return s.store.ReconcileIDs(s.page.Records, checked)
}

// OpenBulkSelect opens the bulk-select dialog.
func (s *Session) OpenBulkSelect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog.Open()
}

// ConfirmBulkSelect selects the first n rows of the current page and closes
// the dialog. It returns selection.ErrDialogClosed if the dialog is not
// open.
func (s *Session) ConfirmBulkSelect(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []catalog.Record
	if s.page != nil {
		records = s.page.Records
	}
	return s.dialog.Confirm(records, n)
}

// CancelBulkSelect closes the dialog without selecting.
func (s *Session) CancelBulkSelect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog.Cancel()
}

// ClearSelection deselects every record on every page.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
}

// SelectedIDs returns every selected ID, ascending.
func (s *Session) SelectedIDs() []catalog.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.IDs()
}

// View returns a snapshot for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		PageSize:       s.pageSize,
		Records:        []catalog.Record{},
		SelectedIDs:    []catalog.ID{},
		SelectionCount: s.store.Len(),
		Loading:        s.pending > 0,
		DialogOpen:     s.dialog.IsOpen(),
	}
	if s.lastErr != nil {
		v.LastError = s.lastErr.Error()
	}

	if s.page != nil {
		v.PageIndex = s.page.Index
		v.PageSize = s.page.Size
		v.Offset = pagination.Request{Index: s.page.Index, Size: s.page.Size}.Offset()
		v.Total = s.page.Total
		v.TotalPages = pagination.TotalPages(s.page.Total, s.page.Size)
		v.Records = append(v.Records, s.page.Records...)
		v.SelectedIDs = append(v.SelectedIDs, s.store.DisplayedIDs(s.page.Records)...)
	}

	return v
}
