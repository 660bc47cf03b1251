package selection

import (
	"testing"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogState_String(t *testing.T) {
	tests := []struct {
		state DialogState
		want  string
	}{
		{DialogClosed, "Closed"},
		{DialogOpen, "Open"},
		{DialogState(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("DialogState.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDialog_StartsClosed(t *testing.T) {
	d := NewDialog(NewStore())

	assert.Equal(t, DialogClosed, d.State())
	assert.False(t, d.IsOpen())
}

func TestDialog_OpenConfirm(t *testing.T) {
	store := NewStore()
	d := NewDialog(store)
	page := records(1, 10)

	d.Open()
	require.True(t, d.IsOpen())

	k, err := d.Confirm(page, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, k)
	assert.Equal(t, DialogClosed, d.State())
	assert.Equal(t, []catalog.ID{1, 2, 3, 4}, store.IDs())
}

func TestDialog_ConfirmClampsOversizedCount(t *testing.T) {
	store := NewStore()
	d := NewDialog(store)
	page := records(1, 7)

	d.Open()
	k, err := d.Confirm(page, 1000)

	require.NoError(t, err)
	assert.Equal(t, 7, k)
	assert.Equal(t, 7, store.Len())
}

func TestDialog_CancelDoesNotMutate(t *testing.T) {
	store := NewStore()
	store.SelectFirstN(records(1, 3), 1)
	d := NewDialog(store)

	d.Open()
	d.Cancel()

	assert.Equal(t, DialogClosed, d.State())
	assert.Equal(t, []catalog.ID{1}, store.IDs())
}

func TestDialog_ConfirmWhileClosed(t *testing.T) {
	store := NewStore()
	d := NewDialog(store)

	k, err := d.Confirm(records(1, 10), 5)

	assert.ErrorIs(t, err, ErrDialogClosed)
	assert.Equal(t, 0, k)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, DialogClosed, d.State())
}

func TestDialog_Reusable(t *testing.T) {
	store := NewStore()
	d := NewDialog(store)

	d.Open()
	_, err := d.Confirm(records(1, 10), 2)
	require.NoError(t, err)

	d.Open()
	d.Cancel()

	d.Open()
	_, err = d.Confirm(records(11, 20), 1)
	require.NoError(t, err)

	assert.Equal(t, []catalog.ID{1, 2, 11}, store.IDs())
}

func TestDialog_OnTransition(t *testing.T) {
	d := NewDialog(NewStore())

	var transitions []string
	d.OnTransition(func(from, to DialogState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	d.Open()
	d.Open() // no-op
	_, err := d.Confirm(records(1, 2), 1)
	require.NoError(t, err)
	d.Cancel() // already closed

	assert.Equal(t, []string{"Closed->Open", "Open->Closed"}, transitions)
}
