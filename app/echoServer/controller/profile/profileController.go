package profile

import (
	"errors"
	"log/slog"
	"net/http"

	usersvc "github.com/Diba-Dev/leafora-marketplace/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/profile
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	p, err := h.Svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("profile get", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}

// PUT /v1/profile
func (h *Controller) Update(c echo.Context) error {
	var req UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.UpdateProfile(c.Request().Context(), uid, req.FullName, req.Email, req.Phone, req.Address); err != nil {
		switch {
		case errors.Is(err, usersvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		case errors.Is(err, usersvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		default:
			h.Log.Error("profile update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}
