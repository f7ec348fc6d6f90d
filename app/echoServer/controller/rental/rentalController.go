package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/jwtx"
	rs "github.com/karim076/Weektaken-LU-1-sub000/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// fail maps engine error codes onto transport statuses. Unknown codes are
// infrastructure failures: logged, generic 500 to the client.
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

func rentalID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	actor, _ := jwtx.Actor(c)

	out, err := h.Svc.Create(c.Request().Context(), actor.ID, req.InventoryID, nil)
	if err != nil {
		return h.fail(c, "rental create", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"rental":  out,
		"message": out.Message,
	})
}

// POST /v1/rentals/:id/pay
func (h *Controller) Pay(c echo.Context) error {
	id, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req PayRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	actor, _ := jwtx.Actor(c)

	if err := h.Svc.Pay(c.Request().Context(), id, actor.ID, req.Amount); err != nil {
		return h.fail(c, "rental pay", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "payment accepted"})
}

// POST /v1/rentals/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	actor, _ := jwtx.Actor(c)

	msg, err := h.Svc.Cancel(c.Request().Context(), id, actor.ID)
	if err != nil {
		return h.fail(c, "rental cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": msg})
}

// POST /v1/rentals/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id, ok := rentalID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	actor, _ := jwtx.Actor(c)

	due, err := h.Svc.Extend(c.Request().Context(), id, actor.ID)
	if err != nil {
		return h.fail(c, "rental extend", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "due_date": due})
}

// GET /v1/rentals/my
func (h *Controller) MyRentals(c echo.Context) error {
	actor, _ := jwtx.Actor(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.Svc.CustomerRentals(c.Request().Context(), actor.ID, page, limit)
	if err != nil {
		return h.fail(c, "rental list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out})
}
