// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalPending    RentalStatus = "pending"
	RentalReserved   RentalStatus = "reserved"
	RentalProcessing RentalStatus = "in_behandeling"
	RentalPaid       RentalStatus = "paid"
	RentalRented     RentalStatus = "rented"
	RentalReturned   RentalStatus = "returned"
	RentalCancelled  RentalStatus = "cancelled"
)

// KnownStatus reports whether s is part of the closed status enum.
// Anything else found in stored data is a migration concern, not a runtime case.
func KnownStatus(s RentalStatus) bool {
	switch s {
	case RentalPending, RentalReserved, RentalProcessing,
		RentalPaid, RentalRented, RentalReturned, RentalCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s RentalStatus) Terminal() bool {
	return s == RentalReturned || s == RentalCancelled
}

type Rental struct {
	ID          int64        `json:"id"`
	InventoryID int64        `json:"inventory_id"`
	CustomerID  int64        `json:"customer_id"`
	StaffID     *int64       `json:"staff_id,omitempty"`
	Status      RentalStatus `json:"status"`
	Amount      float64      `json:"amount"`
	RentalDate  time.Time    `json:"rental_date"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	ReturnDate  *time.Time   `json:"return_date,omitempty"`
	Extensions  int          `json:"extensions"`
}

// Open means the copy is out of circulation: the rental has not been
// returned and has not reached a terminal status.
func (r *Rental) Open() bool {
	return r.ReturnDate == nil && !r.Status.Terminal()
}

// DueDateAudit is one entry in the trail kept for staff due-date adjustments.
type DueDateAudit struct {
	ID         int64      `json:"id"`
	RentalID   int64      `json:"rental_id"`
	StaffID    int64      `json:"staff_id"`
	OldDueDate *time.Time `json:"old_due_date,omitempty"`
	NewDueDate time.Time  `json:"new_due_date"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
