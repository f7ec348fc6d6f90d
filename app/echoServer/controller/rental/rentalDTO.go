package rental

type CreateRentalReq struct {
	InventoryID int64 `json:"inventory_id" validate:"required,gt=0"`
}

type PayRentalReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
