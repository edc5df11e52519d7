package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	"camrental/model"
	rentalsvc "camrental/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/rentals
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
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.CameraID, req.StartDate, req.EndDate)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrInvalidDates:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "end date must be after start date"})
		case rentalsvc.ErrCameraNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "camera not found"})
		case rentalsvc.ErrCameraUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "camera is not available for rent"})
		default:
			h.Log.Error("rental create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// PATCH /api/rentals/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.UpdateStatus(c.Request().Context(), id, uid, model.RentalStatus(req.Status))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rentalsvc.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "status transition not allowed"})
		default:
			h.Log.Error("rental status", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/rentals
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Rental{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	row, err := h.Svc.GetForUser(c.Request().Context(), id, uid)
	if err != nil {
		h.Log.Error("rental detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	}
	return c.JSON(http.StatusOK, row)
}
