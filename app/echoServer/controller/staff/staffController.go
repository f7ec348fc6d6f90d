package staff

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/jwtx"
	"github.com/karim076/Weektaken-LU-1-sub000/model"
	rs "github.com/karim076/Weektaken-LU-1-sub000/service/rental"
)

// Controller serves the staff desk: check-in/check-out, due-date
// overrides and the dashboards.
type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch rs.Code(err) {
	case rs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case rs.ErrNotAvailable, rs.ErrAlreadyReturned, rs.ErrInvalidState:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case rs.ErrUnauthorized:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case rs.ErrInvalidTransition, rs.ErrPaymentMismatch, rs.ErrInvalidDate:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/rentals/:id/checkout
func (h *Controller) Checkout(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	actor, _ := jwtx.Actor(c)

	if err := h.Svc.Checkout(c.Request().Context(), id, actor.ID); err != nil {
		return h.fail(c, "rental checkout", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "rented out"})
}

// POST /v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	actor, _ := jwtx.Actor(c)

	if err := h.Svc.Return(c.Request().Context(), id, actor.ID); err != nil {
		return h.fail(c, "rental return", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "returned"})
}

// PATCH /v1/rentals/:id/due-date
func (h *Controller) UpdateDueDate(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateDueDateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	actor, _ := jwtx.Actor(c)

	if err := h.Svc.UpdateDueDate(c.Request().Context(), id, req.DueDate, actor.ID, req.Reason); err != nil {
		return h.fail(c, "rental due-date update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "due date updated"})
}

// PATCH /v1/rentals/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	actor, _ := jwtx.Actor(c)

	if err := h.Svc.UpdateStatus(c.Request().Context(), id, model.RentalStatus(req.Status), actor.ID); err != nil {
		return h.fail(c, "rental status update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "status updated"})
}

// GET /v1/staff/rentals/overdue
func (h *Controller) Overdue(c echo.Context) error {
	rows, err := h.Svc.OverdueRentals(c.Request().Context())
	if err != nil {
		return h.fail(c, "overdue list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rentals": rows})
}

// GET /v1/staff/rentals/pending
func (h *Controller) Pending(c echo.Context) error {
	rows, err := h.Svc.PendingRentals(c.Request().Context())
	if err != nil {
		return h.fail(c, "pending list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rentals": rows})
}

// GET /v1/staff/rentals/recent
func (h *Controller) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.Svc.RecentRentals(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, "recent list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rentals": rows})
}

// POST /v1/staff/customers/:id/return-all
func (h *Controller) ReturnAll(c echo.Context) error {
	customerID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	actor, _ := jwtx.Actor(c)

	res, err := h.Svc.ReturnAllForCustomer(c.Request().Context(), customerID, actor.ID)
	if err != nil {
		return h.fail(c, "return all", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": res})
}
