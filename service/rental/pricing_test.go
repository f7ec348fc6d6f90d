package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestComputeAmount_FlatRate(t *testing.T) {
	assert.Equal(t, 2.99, ComputeAmount(2.99))
	assert.Equal(t, 0.0, ComputeAmount(0))
}

func TestExpectedReturnDate_DueDateWins(t *testing.T) {
	due := day(10)
	r := &model.Rental{RentalDate: day(0), DueDate: &due}

	got, ok := ExpectedReturnDate(r, 3)
	require.True(t, ok)
	assert.Equal(t, due, got)
}

func TestExpectedReturnDate_DefaultsFromDuration(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}

	got, ok := ExpectedReturnDate(r, 3)
	require.True(t, ok)
	assert.Equal(t, day(3), got)
}

func TestExpectedReturnDate_Unresolvable(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}
	_, ok := ExpectedReturnDate(r, 0)
	assert.False(t, ok)
}

// rental_date = D, duration = 3 days, now = D + 5 days: overdue, fee 2.00.
func TestLateFee_TwoDaysLate(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}
	now := day(5)

	require.True(t, IsOverdue(r, 3, now))
	assert.Equal(t, 2, DaysLate(r, 3, now))
	assert.Equal(t, 2.00, ComputeLateFee(r, 3, now))
}

func TestLateFee_PartialDayRoundsUp(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}
	now := day(3).Add(time.Hour) // one hour past due

	require.True(t, IsOverdue(r, 3, now))
	assert.Equal(t, 1, DaysLate(r, 3, now))
	assert.Equal(t, 1.00, ComputeLateFee(r, 3, now))
}

func TestIsOverdue_NotYetDue(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}
	assert.False(t, IsOverdue(r, 3, day(2)))
	assert.Equal(t, 0.0, ComputeLateFee(r, 3, day(2)))
}

func TestIsOverdue_ReturnedNeverOverdue(t *testing.T) {
	ret := day(4)
	r := &model.Rental{RentalDate: day(0), ReturnDate: &ret}

	assert.False(t, IsOverdue(r, 3, day(30)))
	assert.Equal(t, 0.0, ComputeLateFee(r, 3, day(30)))
}

func TestIsOverdue_UnresolvableDate(t *testing.T) {
	r := &model.Rental{RentalDate: day(0)}
	assert.False(t, IsOverdue(r, 0, day(30)))
}

func TestSameAmount(t *testing.T) {
	assert.True(t, sameAmount(2.99, 2.99))
	assert.True(t, sameAmount(0.1+0.2, 0.3))
	assert.False(t, sameAmount(2.99, 2.98))
	assert.False(t, sameAmount(2.99, 3.00))
}
