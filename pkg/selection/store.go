package selection

import (
	"slices"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// ReconcileMode selects how Reconcile treats rows the UI reports unchecked.
type ReconcileMode int

const (
	// ReconcileTwoWay adds checked rows and removes unchecked rows of the
	// current page.
	ReconcileTwoWay ReconcileMode = iota

	// ReconcileAddOnly adds checked rows and never removes. The selection
	// then only grows until Clear.
	ReconcileAddOnly
)

// String returns the string representation of the mode.
func (m ReconcileMode) String() string {
	switch m {
	case ReconcileTwoWay:
		return "two-way"
	case ReconcileAddOnly:
		return "add-only"
	default:
		return "unknown"
	}
}

// Delta reports how many IDs an operation added and removed.
type Delta struct {
	Added   int
	Removed int
}

// Store is the durable set of selected record IDs.
//
// A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	ids    map[catalog.ID]struct{}
	mode   ReconcileMode
	logger zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithReconcileMode sets the reconciliation behavior. The default is
// ReconcileTwoWay.
func WithReconcileMode(mode ReconcileMode) Option {
	return func(s *Store) {
		s.mode = mode
	}
}

// WithLogger sets the logger used for mutation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty selection store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:    make(map[catalog.ID]struct{}),
		mode:   ReconcileTwoWay,
		logger: log.With().Str("component", "selection-store").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the reconciliation mode.
func (s *Store) Mode() ReconcileMode {
	return s.mode
}

// Reconcile updates the selection from the UI's checked subset of the
// current page. Only records on page are affected.
func (s *Store) Reconcile(page, uiSelected []catalog.Record) Delta {
	return s.ReconcileIDs(page, lo.Map(uiSelected, func(r catalog.Record, _ int) catalog.ID {
		return r.ID
	}))
}

// ReconcileIDs is Reconcile with the checked subset given as IDs. IDs that
// are not on page are ignored.
func (s *Store) ReconcileIDs(page []catalog.Record, checked []catalog.ID) Delta {
	checkedSet := lo.SliceToMap(checked, func(id catalog.ID) (catalog.ID, struct{}) {
		return id, struct{}{}
	})

	var delta Delta
	for _, r := range page {
		_, isChecked := checkedSet[r.ID]
		_, isSelected := s.ids[r.ID]

		switch {
		case isChecked && !isSelected:
			s.ids[r.ID] = struct{}{}
			delta.Added++
		case !isChecked && isSelected && s.mode == ReconcileTwoWay:
			delete(s.ids, r.ID)
			delta.Removed++
		}
	}

	s.record("reconcile", delta)
	return delta
}

// SelectFirstN adds the first n records of page, in page order, to the
// selection and returns how many records that covered. n is clamped to
// [0, len(page)]; nothing is ever removed.
func (s *Store) SelectFirstN(page []catalog.Record, n int) int {
	k := lo.Clamp(n, 0, len(page))

	var delta Delta
	for _, r := range page[:k] {
		if _, ok := s.ids[r.ID]; !ok {
			s.ids[r.ID] = struct{}{}
			delta.Added++
		}
	}

	s.logger.Debug().
		Int("requested", n).
		Int("selected", k).
		Int("page_len", len(page)).
		Msg("Bulk-selected first rows of page")

	s.record("select_first_n", delta)
	return k
}

// DisplayedSelection returns, in page order, the records of page whose ID
// is selected. A record repeated on the page is returned once.
func (s *Store) DisplayedSelection(page []catalog.Record) []catalog.Record {
	unique := lo.UniqBy(page, func(r catalog.Record) catalog.ID {
		return r.ID
	})
	return lo.Filter(unique, func(r catalog.Record, _ int) bool {
		return s.Contains(r.ID)
	})
}

// DisplayedIDs is DisplayedSelection reduced to identifiers.
func (s *Store) DisplayedIDs(page []catalog.Record) []catalog.ID {
	return lo.Map(s.DisplayedSelection(page), func(r catalog.Record, _ int) catalog.ID {
		return r.ID
	})
}

// Contains reports whether id is selected.
func (s *Store) Contains(id catalog.ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected IDs across all pages.
func (s *Store) Len() int {
	return len(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s *Store) IDs() []catalog.ID {
	ids := lo.Keys(s.ids)
	slices.Sort(ids)
	return ids
}

// Clear deselects everything. Only explicit user action calls this.
func (s *Store) Clear() {
	delta := Delta{Removed: len(s.ids)}
	clear(s.ids)
	s.record("clear", delta)
}

func (s *Store) record(operation string, delta Delta) {
	SelectionOperations.WithLabelValues(operation).Inc()
	SelectionSize.Set(float64(len(s.ids)))

	s.logger.Debug().
		Str("operation", operation).
		Int("added", delta.Added).
		Int("removed", delta.Removed).
		Int("selected", len(s.ids)).
		Msg("Selection updated")
}
