package catalog

type CreateFilmReq struct {
	Title          string  `json:"title" validate:"required"`
	Category       string  `json:"category" validate:"required"`
	RentalRate     float64 `json:"rental_rate" validate:"gte=0"`
	RentalDuration int     `json:"rental_duration" validate:"required,gt=0"`
}

type AddCopiesReq struct {
	StoreID int64 `json:"store_id" validate:"required,gt=0"`
	Count   int   `json:"count" validate:"required,gt=0"`
}
