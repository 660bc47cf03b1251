// Package selection keeps the set of selected catalog records across pages
// that are loaded one at a time.
//
// The Store holds identifiers only. A record that is no longer resident
// (because another page replaced it) stays selected because its ID stays
// in the set; absence from the set is the deselected state.
//
// Every mutating operation takes the records of the page currently shown.
// That page bounds what may be removed: Reconcile only ever touches IDs that
// appear on it, so selections made on other pages survive navigation.
//
// # Basic Usage
//
//	store := selection.NewStore()
//
//	// UI reports the checked rows of the visible page
//	store.Reconcile(page.Records, checked)
//
//	// Bulk-select the first n rows of the visible page
//	store.SelectFirstN(page.Records, n)
//
//	// Rows to render as checked
//	shown := store.DisplayedSelection(page.Records)
//
// # Bulk-Select Dialog
//
// Dialog wraps SelectFirstN in a Closed/Open state machine:
//
//	Closed --Open--> Open --Confirm(n)--> Closed
//	                 Open --Cancel------> Closed
//
// # Metrics
//
//   - catalog_selection_size - IDs currently selected
//   - catalog_selection_operations_total{operation} - store operations
package selection
