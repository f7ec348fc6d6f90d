// repository/rental/repo.go
package rental

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

// ErrInventoryConflict is returned when an insert or status change would
// give an inventory item a second non-terminal rental. Enforced by the
// rentals_open_inventory_uq partial unique index, so concurrent callers
// cannot both reserve the same copy.
var ErrInventoryConflict = errors.New("inventory item already has an open rental")

// Row is a rental joined with the film fields read paths need to compute
// due dates and late fees.
type Row struct {
	RentalID       int64              `json:"rental_id"`
	InventoryID    int64              `json:"inventory_id"`
	FilmID         int64              `json:"film_id"`
	FilmTitle      string             `json:"film_title"`
	CustomerID     int64              `json:"customer_id"`
	Status         model.RentalStatus `json:"status"`
	Amount         float64            `json:"amount"`
	RentalDate     time.Time          `json:"rental_date"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
	ReturnDate     *time.Time         `json:"return_date,omitempty"`
	RentalDuration int                `json:"rental_duration"`
	Extensions     int                `json:"extensions"`
}

// Stats is the per-customer rollup shown next to the rental list.
type Stats struct {
	Pending         int64   `json:"pending"`
	Reserved        int64   `json:"reserved"`
	Processing      int64   `json:"in_behandeling"`
	Paid            int64   `json:"paid"`
	Rented          int64   `json:"rented"`
	Returned        int64   `json:"returned"`
	Cancelled       int64   `json:"cancelled"`
	TotalSpent      float64 `json:"total_spent"`
	PaidAmount      float64 `json:"paid_amount"`
	CompletedAmount float64 `json:"completed_amount"`
}

type Repo interface {
	FindByID(ctx context.Context, rentalID int64) (*model.Rental, error)
	FindOpenByInventory(ctx context.Context, inventoryID int64) (*model.Rental, error)

	Create(ctx context.Context, r *model.Rental) (int64, error)
	UpdateStatus(ctx context.Context, rentalID int64, status model.RentalStatus, staffID *int64) (int64, error)
	MarkReturned(ctx context.Context, rentalID int64, returnedAt time.Time, staffID int64) (int64, error)
	UpdateDueDate(ctx context.Context, rentalID int64, due time.Time, staffID int64, reason *string) (int64, error)
	RecordExtension(ctx context.Context, rentalID int64, due time.Time) (int64, error)

	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]Row, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	CustomerStats(ctx context.Context, customerID int64) (*Stats, error)
	ListOpenByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error)

	ListOverdue(ctx context.Context, now time.Time) ([]Row, error)
	ListPending(ctx context.Context) ([]Row, error)
	ListRecent(ctx context.Context, limit int) ([]Row, error)

	DeleteStalePending(ctx context.Context, olderThan time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const rentalCols = `id, inventory_id, customer_id, staff_id, status, amount, rental_date, due_date, return_date, extensions`

func scanRental(row *sql.Row) (*model.Rental, error) {
	var r model.Rental
	err := row.Scan(
		&r.ID, &r.InventoryID, &r.CustomerID, &r.StaffID, &r.Status,
		&r.Amount, &r.RentalDate, &r.DueDate, &r.ReturnDate, &r.Extensions,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repo) FindByID(ctx context.Context, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE id = $1`
	m, err := scanRental(r.db.QueryRowContext(ctx, q, rentalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find rental")
	}
	return m, nil
}

func (r *repo) FindOpenByInventory(ctx context.Context, inventoryID int64) (*model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE inventory_id = $1
		  AND return_date IS NULL
		  AND status NOT IN ('returned','cancelled')
		LIMIT 1`
	m, err := scanRental(r.db.QueryRowContext(ctx, q, inventoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find open rental")
	}
	return m, nil
}

// Create inserts the rental. The partial unique index makes this the
// atomic check-and-reserve: a second non-terminal rental for the same
// copy fails with ErrInventoryConflict instead of racing.
func (r *repo) Create(ctx context.Context, m *model.Rental) (int64, error) {
	const q = `
		INSERT INTO rentals (inventory_id, customer_id, staff_id, status, amount, rental_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		m.InventoryID, m.CustomerID, m.StaffID, m.Status, m.Amount, m.RentalDate, m.DueDate,
	).Scan(&id)
	if err != nil {
		if isOpenConflict(err) {
			return 0, ErrInventoryConflict
		}
		return 0, errors.Wrap(err, "insert rental")
	}
	return id, nil
}

func (r *repo) UpdateStatus(ctx context.Context, rentalID int64, status model.RentalStatus, staffID *int64) (int64, error) {
	const q = `
		UPDATE rentals
		SET status = $2,
			staff_id = COALESCE($3, staff_id)
		WHERE id = $1
		  AND return_date IS NULL`
	res, err := r.db.ExecContext(ctx, q, rentalID, status, staffID)
	if err != nil {
		if isOpenConflict(err) {
			return 0, ErrInventoryConflict
		}
		return 0, errors.Wrap(err, "update rental status")
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

// MarkReturned flips status and return date in one statement; the WHERE
// clause makes a second return a no-op (0 rows) rather than an overwrite.
func (r *repo) MarkReturned(ctx context.Context, rentalID int64, returnedAt time.Time, staffID int64) (int64, error) {
	const q = `
		UPDATE rentals
		SET status = 'returned',
			return_date = $2,
			staff_id = $3
		WHERE id = $1
		  AND return_date IS NULL
		  AND status = 'rented'`
	res, err := r.db.ExecContext(ctx, q, rentalID, returnedAt, staffID)
	if err != nil {
		return 0, errors.Wrap(err, "mark returned")
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

// UpdateDueDate writes the new date and the audit row in one transaction.
func (r *repo) UpdateDueDate(ctx context.Context, rentalID int64, due time.Time, staffID int64, reason *string) (aff int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var oldDue *time.Time
	const lock = `
		SELECT due_date
		FROM rentals
		WHERE id = $1
		  AND return_date IS NULL
		FOR UPDATE`
	if err = tx.QueryRowContext(ctx, lock, rentalID).Scan(&oldDue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "lock rental")
	}

	const upd = `
		UPDATE rentals
		SET due_date = $2
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, upd, rentalID, due); err != nil {
		return 0, errors.Wrap(err, "update due date")
	}

	const audit = `
		INSERT INTO rental_audit (rental_id, staff_id, old_due_date, new_due_date, reason)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.ExecContext(ctx, audit, rentalID, staffID, oldDue, due, reason); err != nil {
		return 0, errors.Wrap(err, "insert audit")
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return 1, nil
}

func (r *repo) RecordExtension(ctx context.Context, rentalID int64, due time.Time) (int64, error) {
	const q = `
		UPDATE rentals
		SET due_date = $2,
			extensions = extensions + 1
		WHERE id = $1
		  AND return_date IS NULL`
	res, err := r.db.ExecContext(ctx, q, rentalID, due)
	if err != nil {
		return 0, errors.Wrap(err, "record extension")
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

const rowSelect = `
	SELECT
		r.id          AS rental_id,
		r.inventory_id,
		f.id          AS film_id,
		f.title       AS film_title,
		r.customer_id,
		r.status,
		r.amount,
		r.rental_date,
		r.due_date,
		r.return_date,
		f.rental_duration,
		r.extensions
	FROM rentals r
	JOIN inventory i ON i.id = r.inventory_id
	JOIN films f     ON f.id = i.film_id`

func (r *repo) queryRows(ctx context.Context, q string, args ...any) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query rentals")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.RentalID, &h.InventoryID, &h.FilmID, &h.FilmTitle, &h.CustomerID,
			&h.Status, &h.Amount, &h.RentalDate, &h.DueDate, &h.ReturnDate,
			&h.RentalDuration, &h.Extensions,
		); err != nil {
			return nil, errors.Wrap(err, "scan rental row")
		}
		out = append(out, h)
	}
	return out, errors.Wrap(rows.Err(), "iterate rentals")
}

func (r *repo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]Row, error) {
	q := rowSelect + `
		WHERE r.customer_id = $1
		ORDER BY r.rental_date DESC, r.id DESC
		LIMIT $2 OFFSET $3`
	return r.queryRows(ctx, q, customerID, limit, offset)
}

func (r *repo) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rentals WHERE customer_id = $1`, customerID,
	).Scan(&n)
	return n, errors.Wrap(err, "count rentals")
}

func (r *repo) CustomerStats(ctx context.Context, customerID int64) (*Stats, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'reserved'),
			COUNT(*) FILTER (WHERE status = 'in_behandeling'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'rented'),
			COUNT(*) FILTER (WHERE status = 'returned'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(amount) FILTER (WHERE status IN ('paid','rented','returned')), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'returned'), 0)
		FROM rentals
		WHERE customer_id = $1`
	var s Stats
	err := r.db.QueryRowContext(ctx, q, customerID).Scan(
		&s.Pending, &s.Reserved, &s.Processing, &s.Paid, &s.Rented,
		&s.Returned, &s.Cancelled, &s.TotalSpent, &s.PaidAmount, &s.CompletedAmount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "customer stats")
	}
	return &s, nil
}

func (r *repo) ListOpenByCustomer(ctx context.Context, customerID int64) ([]model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE customer_id = $1
		  AND return_date IS NULL
		  AND status NOT IN ('returned','cancelled')
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "query open rentals")
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := rows.Scan(
			&m.ID, &m.InventoryID, &m.CustomerID, &m.StaffID, &m.Status,
			&m.Amount, &m.RentalDate, &m.DueDate, &m.ReturnDate, &m.Extensions,
		); err != nil {
			return nil, errors.Wrap(err, "scan open rental")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "iterate open rentals")
}

func (r *repo) ListOverdue(ctx context.Context, now time.Time) ([]Row, error) {
	q := rowSelect + `
		WHERE r.return_date IS NULL
		  AND r.status NOT IN ('returned','cancelled')
		  AND COALESCE(r.due_date, r.rental_date + make_interval(days => f.rental_duration)) < $1
		ORDER BY r.due_date NULLS LAST, r.rental_date`
	return r.queryRows(ctx, q, now)
}

func (r *repo) ListPending(ctx context.Context) ([]Row, error) {
	q := rowSelect + `
		WHERE r.status = 'pending'
		ORDER BY r.rental_date`
	return r.queryRows(ctx, q)
}

func (r *repo) ListRecent(ctx context.Context, limit int) ([]Row, error) {
	q := rowSelect + `
		ORDER BY r.rental_date DESC, r.id DESC
		LIMIT $1`
	return r.queryRows(ctx, q, limit)
}

// DeleteStalePending purges reservations that were never paid within the
// hold window. The only path that physically removes rental rows.
func (r *repo) DeleteStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	const q = `
		DELETE FROM rentals
		WHERE status = 'pending'
		  AND rental_date < $1`
	res, err := r.db.ExecContext(ctx, q, olderThan)
	if err != nil {
		return 0, errors.Wrap(err, "delete stale pending")
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

func isOpenConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == "rentals_open_inventory_uq"
}
