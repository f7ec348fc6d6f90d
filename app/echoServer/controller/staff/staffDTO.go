package staff

import "time"

type UpdateDueDateReq struct {
	DueDate time.Time `json:"due_date" validate:"required"`
	Reason  *string   `json:"reason,omitempty"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
