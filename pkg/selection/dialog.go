package selection

import (
	"errors"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
)

// ErrDialogClosed is returned when a bulk-select is confirmed while the
// dialog is not open.
var ErrDialogClosed = errors.New("bulk-select dialog is not open")

// DialogState is the state of the bulk-select dialog.
//
//	DialogClosed → DialogOpen → DialogClosed
//
// There is no terminal state; the dialog is reusable.
type DialogState int

const (
	// DialogClosed is the initial state.
	DialogClosed DialogState = iota

	// DialogOpen indicates the dialog is waiting for a count.
	DialogOpen
)

// String returns the string representation of the state.
func (s DialogState) String() string {
	switch s {
	case DialogClosed:
		return "Closed"
	case DialogOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

// Dialog drives bulk selection of the first N rows of the current page.
type Dialog struct {
	store        *Store
	state        DialogState
	onTransition func(from, to DialogState)
}

// NewDialog creates a closed dialog that confirms into store.
func NewDialog(store *Store) *Dialog {
	return &Dialog{
		store: store,
		state: DialogClosed,
	}
}

// OnTransition registers fn to run after every state change.
func (d *Dialog) OnTransition(fn func(from, to DialogState)) {
	d.onTransition = fn
}

// State returns the current state.
func (d *Dialog) State() DialogState {
	return d.state
}

// IsOpen reports whether the dialog is open.
func (d *Dialog) IsOpen() bool {
	return d.state == DialogOpen
}

// Open opens the dialog. Opening an open dialog does nothing.
func (d *Dialog) Open() {
	d.transition(DialogOpen)
}

// Confirm selects the first n records of page and closes the dialog. It
// returns the number of records covered after clamping.
func (d *Dialog) Confirm(page []catalog.Record, n int) (int, error) {
	if d.state != DialogOpen {
		return 0, ErrDialogClosed
	}

	k := d.store.SelectFirstN(page, n)
	d.transition(DialogClosed)
	return k, nil
}

// Cancel closes the dialog without touching the selection.
func (d *Dialog) Cancel() {
	d.transition(DialogClosed)
}

func (d *Dialog) transition(to DialogState) {
	from := d.state
	if from == to {
		return
	}
	d.state = to
	if d.onTransition != nil {
		d.onTransition(from, to)
	}
}
