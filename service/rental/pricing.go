package rental

import (
	"math"
	"time"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

// LateFeePerDay is charged per started day past the expected return date.
const LateFeePerDay = 1.00

// ComputeAmount snapshots the film's rate at creation time. Flat, not
// duration-scaled; later rate changes never affect existing rentals.
func ComputeAmount(rentalRate float64) float64 { return rentalRate }

// ExpectedReturnDate resolves the date the copy is due back: the explicit
// due date when set, otherwise rental date plus the film's rental duration.
// ok is false when neither is resolvable.
func ExpectedReturnDate(r *model.Rental, rentalDuration int) (time.Time, bool) {
	if r.DueDate != nil {
		return *r.DueDate, true
	}
	if rentalDuration <= 0 {
		return time.Time{}, false
	}
	return r.RentalDate.AddDate(0, 0, rentalDuration), true
}

// IsOverdue reports whether the rental is past due at now. Returned
// rentals are never overdue.
func IsOverdue(r *model.Rental, rentalDuration int, now time.Time) bool {
	if r.ReturnDate != nil {
		return false
	}
	expected, ok := ExpectedReturnDate(r, rentalDuration)
	if !ok {
		return false
	}
	return now.After(expected)
}

// DaysLate counts started days past the expected return date, zero when
// not overdue.
func DaysLate(r *model.Rental, rentalDuration int, now time.Time) int {
	if !IsOverdue(r, rentalDuration, now) {
		return 0
	}
	expected, _ := ExpectedReturnDate(r, rentalDuration)
	late := now.Sub(expected)
	return int(math.Ceil(late.Hours() / 24))
}

// ComputeLateFee is DaysLate times the per-day penalty.
func ComputeLateFee(r *model.Rental, rentalDuration int, now time.Time) float64 {
	return float64(DaysLate(r, rentalDuration, now)) * LateFeePerDay
}

// sameAmount compares money to the cent.
func sameAmount(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
