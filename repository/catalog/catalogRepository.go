package catalog

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
)

type Repo interface {
	// InventorySnapshot returns (nil, nil) when the copy does not exist.
	InventorySnapshot(ctx context.Context, inventoryID int64) (*model.InventorySnapshot, error)

	ListFilms(ctx context.Context) ([]model.Film, error)
	FilmDetail(ctx context.Context, filmID int64) (*model.Film, error)

	CreateFilm(ctx context.Context, title, category string, rate float64, duration int) (int64, error)
	AddCopies(ctx context.Context, filmID, storeID int64, n int) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InventorySnapshot(ctx context.Context, inventoryID int64) (*model.InventorySnapshot, error) {
	const q = `
		SELECT i.id, i.film_id, i.store_id, f.title, f.rental_rate, f.rental_duration
		FROM inventory i
		JOIN films f ON f.id = i.film_id
		WHERE i.id = $1`
	var s model.InventorySnapshot
	err := r.db.QueryRowContext(ctx, q, inventoryID).Scan(
		&s.InventoryID, &s.FilmID, &s.StoreID, &s.Title, &s.RentalRate, &s.RentalDuration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "inventory snapshot")
	}
	return &s, nil
}

// copies_available counts copies with no non-terminal rental, the same
// predicate the rentals_open_inventory_uq index enforces.
const filmSelect = `
	SELECT f.id, f.title, f.category, f.rental_rate, f.rental_duration,
		COALESCE(COUNT(i.id) FILTER (WHERE NOT EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.inventory_id = i.id
			  AND r.return_date IS NULL
			  AND r.status NOT IN ('returned','cancelled')
		)), 0)::BIGINT AS copies_available
	FROM films f
	LEFT JOIN inventory i ON i.film_id = f.id`

func (r *repo) ListFilms(ctx context.Context) ([]model.Film, error) {
	q := filmSelect + `
	GROUP BY f.id
	ORDER BY f.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "list films")
	}
	defer rows.Close()

	var out []model.Film
	for rows.Next() {
		var f model.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Category, &f.RentalRate, &f.RentalDuration, &f.CopiesAvailable); err != nil {
			return nil, errors.Wrap(err, "scan film")
		}
		out = append(out, f)
	}
	return out, errors.Wrap(rows.Err(), "iterate films")
}

func (r *repo) FilmDetail(ctx context.Context, filmID int64) (*model.Film, error) {
	q := filmSelect + `
	WHERE f.id = $1
	GROUP BY f.id`
	var f model.Film
	err := r.db.QueryRowContext(ctx, q, filmID).Scan(
		&f.ID, &f.Title, &f.Category, &f.RentalRate, &f.RentalDuration, &f.CopiesAvailable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "film detail")
	}
	return &f, nil
}

func (r *repo) CreateFilm(ctx context.Context, title, category string, rate float64, duration int) (int64, error) {
	const q = `
		INSERT INTO films (title, category, rental_rate, rental_duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, title, category, rate, duration).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert film")
	}
	return id, nil
}

func (r *repo) AddCopies(ctx context.Context, filmID, storeID int64, n int) (added int64, err error) {
	if n <= 0 {
		return 0, errors.New("n must be > 0")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	const ins = `INSERT INTO inventory (film_id, store_id) VALUES ($1, $2)`
	for i := 0; i < n; i++ {
		if _, err = tx.ExecContext(ctx, ins, filmID, storeID); err != nil {
			return 0, errors.Wrap(err, "insert copy")
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return int64(n), nil
}
