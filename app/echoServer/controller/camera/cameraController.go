package camera

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"camrental/model"
	camerasvc "camrental/service/camera"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc camerasvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/cameras
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("camera list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Camera{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/cameras/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("camera detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "camera not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/cameras  (admin)
func (h *Controller) Create(c echo.Context) error {
	var req CameraReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	cam := req.toModel()
	if err := h.Svc.Create(c.Request().Context(), cam); err != nil {
		if errors.Is(err, camerasvc.ErrInvalidPayload) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("camera create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, cam)
}

// PUT /api/cameras/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CameraReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	row, err := h.Svc.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, camerasvc.ErrInvalidPayload) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("camera update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "camera not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /api/cameras/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ok, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("camera delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "camera not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "camera deleted"})
}
