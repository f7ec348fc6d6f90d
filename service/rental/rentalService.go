package rental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
	rrepo "github.com/karim076/Weektaken-LU-1-sub000/repository/rental"
)

// Repo is the storage collaborator. The engine never sees transactions;
// atomicity lives behind this interface so services stay testable with an
// in-memory fake.
type Repo = rrepo.Repo

// Row and Stats are the repository read shapes.
type Row = rrepo.Row
type Stats = rrepo.Stats

// ExtendPolicy bounds customer-driven due-date extensions. The concrete
// numbers are product policy, injected from config.
type ExtendPolicy struct {
	MaxExtensions int
	IncrementDays int
}

var DefaultExtendPolicy = ExtendPolicy{MaxExtensions: 2, IncrementDays: 7}

// dto

type Created struct {
	RentalID  int64   `json:"rental_id"`
	FilmTitle string  `json:"film_title"`
	Amount    float64 `json:"amount"`
	Message   string  `json:"message"`
}

// DecoratedRow is a repository row annotated with the derived schedule
// fields read paths attach before returning.
type DecoratedRow struct {
	Row
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
	DaysOverdue        int        `json:"days_overdue"`
	LateFee            float64    `json:"late_fee"`
}

type CustomerRentals struct {
	Rentals []DecoratedRow `json:"rentals"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Stats   Stats          `json:"stats"`
}

// SkippedRental reports why one rental in a bulk return was left alone.
type SkippedRental struct {
	RentalID int64  `json:"rental_id"`
	Reason   string `json:"reason"`
}

type CascadeResult struct {
	Returned []int64         `json:"returned"`
	Skipped  []SkippedRental `json:"skipped"`
}

type Service interface {
	// Create reserves a copy for the customer (status pending). The
	// amount is snapshotted from the film's rate at this moment.
	Create(ctx context.Context, customerID, inventoryID int64, staffID *int64) (*Created, error)

	// Pay flips pending -> paid when the owner pays the exact amount.
	Pay(ctx context.Context, rentalID, customerID int64, amount float64) error

	// Checkout hands the copy over: transition to rented, binds the staff
	// member who processed it.
	Checkout(ctx context.Context, rentalID, staffID int64) error

	// Return marks a rented copy returned, stamping return_date.
	Return(ctx context.Context, rentalID, staffID int64) error

	// Cancel lets the owner back out while the rental is still pending,
	// reserved or in behandeling. The record is retained with status
	// cancelled.
	Cancel(ctx context.Context, rentalID, customerID int64) (string, error)

	// Extend pushes the due date forward by the policy increment, up to
	// the policy maximum.
	Extend(ctx context.Context, rentalID, customerID int64) (time.Time, error)

	// UpdateDueDate is the staff override, audited with a reason.
	UpdateDueDate(ctx context.Context, rentalID int64, due time.Time, staffID int64, reason *string) error

	// UpdateStatus is the generic staff-driven transition.
	UpdateStatus(ctx context.Context, rentalID int64, status model.RentalStatus, staffID int64) error

	CustomerRentals(ctx context.Context, customerID int64, page, limit int) (*CustomerRentals, error)
	OverdueRentals(ctx context.Context) ([]DecoratedRow, error)
	PendingRentals(ctx context.Context) ([]DecoratedRow, error)
	RecentRentals(ctx context.Context, limit int) ([]DecoratedRow, error)

	// ReturnAllForCustomer bulk-returns a customer's rented copies, used
	// by the customer-deletion cascade. Each rental passes the return
	// guard individually; partial success across rentals is reported.
	ReturnAllForCustomer(ctx context.Context, customerID, staffID int64) (*CascadeResult, error)
}

// ----- Service implementation -----

type service struct {
	r      Repo
	cat    Catalog
	avail  *AvailabilityChecker
	policy ExtendPolicy
	now    func() time.Time
}

func New(r Repo, cat Catalog, policy ExtendPolicy) Service {
	if policy.MaxExtensions <= 0 {
		policy = DefaultExtendPolicy
	}
	return &service{
		r:      r,
		cat:    cat,
		avail:  NewAvailabilityChecker(r, cat),
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, customerID, inventoryID int64, staffID *int64) (*Created, error) {
	av, err := s.avail.Check(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if !av.Available {
		return nil, makeErr(ErrNotAvailable, "copy is "+av.Reason)
	}

	m := &model.Rental{
		InventoryID: inventoryID,
		CustomerID:  customerID,
		StaffID:     staffID,
		Status:      model.RentalPending,
		Amount:      ComputeAmount(av.Item.RentalRate),
		RentalDate:  s.now(),
	}

	id, err := s.r.Create(ctx, m)
	if err != nil {
		// Lost the race after the advisory check; same answer either way.
		if errors.Is(err, rrepo.ErrInventoryConflict) {
			return nil, makeErr(ErrNotAvailable, "copy is "+ReasonRentedOut)
		}
		return nil, err
	}

	return &Created{
		RentalID:  id,
		FilmTitle: av.Item.Title,
		Amount:    m.Amount,
		Message:   fmt.Sprintf("Reservation confirmed for %q, amount due %.2f", av.Item.Title, m.Amount),
	}, nil
}

func (s *service) Pay(ctx context.Context, rentalID, customerID int64, amount float64) error {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return err
	}
	if m.CustomerID != customerID {
		return makeErr(ErrUnauthorized, "rental belongs to another customer")
	}
	if m.Status != model.RentalPending {
		return makeErr(ErrInvalidState, "Cannot pay rental in current status")
	}
	if !sameAmount(amount, m.Amount) {
		return makeErr(ErrPaymentMismatch, fmt.Sprintf("payment of %.2f does not match amount due %.2f", amount, m.Amount))
	}
	if err := AssertTransition(m.Status, model.RentalPaid); err != nil {
		return err
	}
	return s.applyStatus(ctx, rentalID, model.RentalPaid, nil)
}

func (s *service) Checkout(ctx context.Context, rentalID, staffID int64) error {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return err
	}
	if m.ReturnDate != nil {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	if err := AssertTransition(m.Status, model.RentalRented); err != nil {
		return err
	}
	return s.applyStatus(ctx, rentalID, model.RentalRented, &staffID)
}

func (s *service) Return(ctx context.Context, rentalID, staffID int64) error {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return err
	}
	if m.ReturnDate != nil || m.Status == model.RentalReturned {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	if err := AssertTransition(m.Status, model.RentalReturned); err != nil {
		return err
	}
	aff, err := s.r.MarkReturned(ctx, rentalID, s.now(), staffID)
	if err != nil {
		return err
	}
	if aff == 0 {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, rentalID, customerID int64) (string, error) {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return "", err
	}
	if m.CustomerID != customerID {
		return "", makeErr(ErrUnauthorized, "rental belongs to another customer")
	}
	if !cancellable(m.Status) {
		return "", makeErr(ErrInvalidState, "Cannot cancel rental in current status")
	}
	if _, err := s.r.UpdateStatus(ctx, rentalID, model.RentalCancelled, nil); err != nil {
		return "", err
	}
	return fmt.Sprintf("Rental %d cancelled", rentalID), nil
}

func (s *service) Extend(ctx context.Context, rentalID, customerID int64) (time.Time, error) {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return time.Time{}, err
	}
	if m.CustomerID != customerID {
		return time.Time{}, makeErr(ErrUnauthorized, "rental belongs to another customer")
	}
	if m.ReturnDate != nil {
		return time.Time{}, makeErr(ErrAlreadyReturned, "rental already returned")
	}
	if m.Status.Terminal() {
		return time.Time{}, makeErr(ErrInvalidState, "Cannot extend rental in current status")
	}
	if m.Extensions >= s.policy.MaxExtensions {
		return time.Time{}, makeErr(ErrInvalidState, fmt.Sprintf("maximum of %d extensions reached", s.policy.MaxExtensions))
	}

	base := m.RentalDate
	if m.DueDate != nil {
		base = *m.DueDate
	} else {
		snap, err := s.cat.InventorySnapshot(ctx, m.InventoryID)
		if err != nil {
			return time.Time{}, err
		}
		if snap != nil {
			if exp, ok := ExpectedReturnDate(m, snap.RentalDuration); ok {
				base = exp
			}
		}
	}

	due := base.AddDate(0, 0, s.policy.IncrementDays)
	aff, err := s.r.RecordExtension(ctx, rentalID, due)
	if err != nil {
		return time.Time{}, err
	}
	if aff == 0 {
		return time.Time{}, makeErr(ErrAlreadyReturned, "rental already returned")
	}
	return due, nil
}

func (s *service) UpdateDueDate(ctx context.Context, rentalID int64, due time.Time, staffID int64, reason *string) error {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return err
	}
	if m.ReturnDate != nil || m.Status == model.RentalReturned {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	if m.Status.Terminal() {
		return makeErr(ErrInvalidState, "Cannot change due date of a cancelled rental")
	}
	if due.Before(startOfDay(s.now())) {
		return makeErr(ErrInvalidDate, "due date cannot be in the past")
	}
	aff, err := s.r.UpdateDueDate(ctx, rentalID, due, staffID, reason)
	if err != nil {
		return err
	}
	if aff == 0 {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, rentalID int64, status model.RentalStatus, staffID int64) error {
	m, err := s.load(ctx, rentalID)
	if err != nil {
		return err
	}
	if m.ReturnDate != nil {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	if err := AssertTransition(m.Status, status); err != nil {
		return err
	}
	if status == model.RentalReturned {
		aff, err := s.r.MarkReturned(ctx, rentalID, s.now(), staffID)
		if err != nil {
			return err
		}
		if aff == 0 {
			return makeErr(ErrAlreadyReturned, "rental already returned")
		}
		return nil
	}
	return s.applyStatus(ctx, rentalID, status, &staffID)
}

func (s *service) CustomerRentals(ctx context.Context, customerID int64, page, limit int) (*CustomerRentals, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := s.r.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.r.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := &CustomerRentals{
		Rentals: s.decorate(rows),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}

	// Dashboards still render when the rollup query fails; write paths
	// never degrade like this.
	stats, err := s.r.CustomerStats(ctx, customerID)
	if err != nil {
		slog.Warn("customer stats unavailable, zeroing", "customer_id", customerID, "err", err)
	} else {
		out.Stats = *stats
	}
	return out, nil
}

func (s *service) OverdueRentals(ctx context.Context) ([]DecoratedRow, error) {
	rows, err := s.r.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.decorate(rows), nil
}

func (s *service) PendingRentals(ctx context.Context) ([]DecoratedRow, error) {
	rows, err := s.r.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorate(rows), nil
}

func (s *service) RecentRentals(ctx context.Context, limit int) ([]DecoratedRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.r.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(rows), nil
}

func (s *service) ReturnAllForCustomer(ctx context.Context, customerID, staffID int64) (*CascadeResult, error) {
	open, err := s.r.ListOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	res := &CascadeResult{}
	for _, m := range open {
		if err := AssertTransition(m.Status, model.RentalReturned); err != nil {
			res.Skipped = append(res.Skipped, SkippedRental{RentalID: m.ID, Reason: err.Error()})
			continue
		}
		aff, err := s.r.MarkReturned(ctx, m.ID, s.now(), staffID)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRental{RentalID: m.ID, Reason: "storage error"})
			slog.Error("cascade return failed", "rental_id", m.ID, "err", err)
			continue
		}
		if aff == 0 {
			res.Skipped = append(res.Skipped, SkippedRental{RentalID: m.ID, Reason: "rental already returned"})
			continue
		}
		res.Returned = append(res.Returned, m.ID)
	}
	return res, nil
}

// helpers

func (s *service) load(ctx context.Context, rentalID int64) (*model.Rental, error) {
	m, err := s.r.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, makeErr(ErrNotFound, "rental not found")
	}
	return m, nil
}

func (s *service) applyStatus(ctx context.Context, rentalID int64, status model.RentalStatus, staffID *int64) error {
	aff, err := s.r.UpdateStatus(ctx, rentalID, status, staffID)
	if err != nil {
		if errors.Is(err, rrepo.ErrInventoryConflict) {
			return makeErr(ErrNotAvailable, "copy is "+ReasonRentedOut)
		}
		return err
	}
	if aff == 0 {
		return makeErr(ErrAlreadyReturned, "rental already returned")
	}
	return nil
}

func (s *service) decorate(rows []Row) []DecoratedRow {
	now := s.now()
	out := make([]DecoratedRow, 0, len(rows))
	for _, h := range rows {
		m := &model.Rental{
			RentalDate: h.RentalDate,
			DueDate:    h.DueDate,
			ReturnDate: h.ReturnDate,
		}
		d := DecoratedRow{Row: h}
		if exp, ok := ExpectedReturnDate(m, h.RentalDuration); ok {
			d.ExpectedReturnDate = &exp
		}
		d.DaysOverdue = DaysLate(m, h.RentalDuration, now)
		d.LateFee = ComputeLateFee(m, h.RentalDuration, now)
		out = append(out, d)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
