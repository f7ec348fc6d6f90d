package rental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

var allStatuses = []model.RentalStatus{
	model.RentalPending,
	model.RentalReserved,
	model.RentalProcessing,
	model.RentalPaid,
	model.RentalRented,
	model.RentalReturned,
	model.RentalCancelled,
}

func legalPairs() map[model.RentalStatus][]model.RentalStatus {
	return map[model.RentalStatus][]model.RentalStatus{
		model.RentalPending:    {model.RentalPaid, model.RentalRented, model.RentalCancelled},
		model.RentalReserved:   {model.RentalProcessing, model.RentalRented, model.RentalCancelled},
		model.RentalProcessing: {model.RentalRented, model.RentalCancelled},
		model.RentalPaid:       {model.RentalRented},
		model.RentalRented:     {model.RentalReturned},
		model.RentalReturned:   {},
		model.RentalCancelled:  {},
	}
}

// Every (from, to) pair is checked against the table, both directions.
func TestCanTransition_Exhaustive(t *testing.T) {
	legal := legalPairs()
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, n := range legal[from] {
				if n == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestAssertTransition_IllegalPair(t *testing.T) {
	err := AssertTransition(model.RentalReturned, model.RentalRented)
	require.Error(t, err)
	require.Equal(t, ErrInvalidTransition, Code(err))
	require.Equal(t, "Cannot change status from returned to rented", err.Error())
}

func TestAssertTransition_UnknownStatus(t *testing.T) {
	err := AssertTransition(model.RentalPending, model.RentalStatus("shipped"))
	require.Error(t, err)
	require.Equal(t, ErrInvalidTransition, Code(err))

	err = AssertTransition(model.RentalStatus("bogus"), model.RentalPaid)
	require.Error(t, err)
	require.Equal(t, ErrInvalidTransition, Code(err))
}

func TestAssertTransition_Legal(t *testing.T) {
	require.NoError(t, AssertTransition(model.RentalPending, model.RentalPaid))
	require.NoError(t, AssertTransition(model.RentalPaid, model.RentalRented))
	require.NoError(t, AssertTransition(model.RentalRented, model.RentalReturned))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []model.RentalStatus{model.RentalReturned, model.RentalCancelled} {
		require.True(t, from.Terminal())
		for _, to := range allStatuses {
			assert.Falsef(t, CanTransition(from, to), "%s must be terminal, allowed -> %s", from, to)
		}
	}
}

func TestCancellable(t *testing.T) {
	assert.True(t, cancellable(model.RentalPending))
	assert.True(t, cancellable(model.RentalReserved))
	assert.True(t, cancellable(model.RentalProcessing))
	assert.False(t, cancellable(model.RentalPaid))
	assert.False(t, cancellable(model.RentalRented))
	assert.False(t, cancellable(model.RentalReturned))
	assert.False(t, cancellable(model.RentalCancelled))
}
