package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	catalogsvc "github.com/karim076/Weektaken-LU-1-sub000/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/films
func (h *Controller) List(c echo.Context) error {
	films, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("film list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": films})
}

// GET /v1/films/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	film, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("film detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if film == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "film not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": film})
}

// POST /v1/films  (staff)
func (h *Controller) Create(c echo.Context) error {
	var req CreateFilmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), req.Title, req.Category, req.RentalRate, req.RentalDuration)
	if err != nil {
		h.Log.Error("film create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// POST /v1/films/:id/copies  (staff)
func (h *Controller) AddCopies(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddCopiesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	added, err := h.Svc.AddCopies(c.Request().Context(), id, req.StoreID, req.Count)
	if err != nil {
		h.Log.Error("add copies", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"added": added})
}
