// model/film.go
package model

type Film struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	RentalRate      float64 `json:"rental_rate"`
	RentalDuration  int     `json:"rental_duration"` // days
	CopiesAvailable int64   `json:"copies_available"`
}

// InventorySnapshot is the denormalized view the rental engine works
// with: the copy plus the film fields pricing needs.
type InventorySnapshot struct {
	InventoryID    int64   `json:"inventory_id"`
	FilmID         int64   `json:"film_id"`
	StoreID        int64   `json:"store_id"`
	Title          string  `json:"title"`
	RentalRate     float64 `json:"rental_rate"`
	RentalDuration int     `json:"rental_duration"`
}
