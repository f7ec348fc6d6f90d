package rental

import (
	"fmt"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

// transitions is the single source of truth for the rental state machine.
// Statuses absent from the map (returned, cancelled) are terminal.
var transitions = map[model.RentalStatus][]model.RentalStatus{
	model.RentalPending:    {model.RentalPaid, model.RentalRented, model.RentalCancelled},
	model.RentalReserved:   {model.RentalProcessing, model.RentalRented, model.RentalCancelled},
	model.RentalProcessing: {model.RentalRented, model.RentalCancelled},
	model.RentalPaid:       {model.RentalRented},
	model.RentalRented:     {model.RentalReturned},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to model.RentalStatus) bool {
	if !model.KnownStatus(from) || !model.KnownStatus(to) {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AssertTransition returns an INVALID_TRANSITION error when from -> to is
// not in the table, including unrecognized target statuses.
func AssertTransition(from, to model.RentalStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return makeErr(ErrInvalidTransition, fmt.Sprintf("Cannot change status from %s to %s", from, to))
}

// cancellable statuses: the customer can still back out while the rental
// has not been paid for or handed over.
func cancellable(s model.RentalStatus) bool {
	switch s {
	case model.RentalPending, model.RentalReserved, model.RentalProcessing:
		return true
	}
	return false
}
