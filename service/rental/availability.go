package rental

import (
	"context"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

// Catalog is the slice of the catalog subsystem the rental engine reads:
// film rate, duration and title for a physical copy. Returns (nil, nil)
// when the inventory id does not exist.
type Catalog interface {
	InventorySnapshot(ctx context.Context, inventoryID int64) (*model.InventorySnapshot, error)
}

// Availability is the answer to "can this copy be rented right now".
type Availability struct {
	Available bool                     `json:"available"`
	Reason    string                   `json:"reason,omitempty"`
	Item      *model.InventorySnapshot `json:"item"`
}

const (
	ReasonRentedOut = "rented out"
	ReasonReserved  = "reserved"
)

// AvailabilityChecker answers availability from current rental state.
// The answer is advisory: the insert itself re-checks atomically against
// the open-rental unique index, so two winners cannot both reserve.
type AvailabilityChecker struct {
	rentals Repo
	catalog Catalog
}

func NewAvailabilityChecker(r Repo, c Catalog) *AvailabilityChecker {
	return &AvailabilityChecker{rentals: r, catalog: c}
}

func (a *AvailabilityChecker) Check(ctx context.Context, inventoryID int64) (*Availability, error) {
	snap, err := a.catalog.InventorySnapshot(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, makeErr(ErrNotFound, "inventory item not found")
	}

	open, err := a.rentals.FindOpenByInventory(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return &Availability{Available: true, Item: snap}, nil
	}

	reason := ReasonReserved
	if open.Status == model.RentalPaid || open.Status == model.RentalRented {
		reason = ReasonRentedOut
	}
	return &Availability{Available: false, Reason: reason, Item: snap}, nil
}
