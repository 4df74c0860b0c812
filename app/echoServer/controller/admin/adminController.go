package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Diba-Dev/leafora-marketplace/model"
	adminsvc "github.com/Diba-Dev/leafora-marketplace/service/admin"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc adminsvc.Service
	Log *slog.Logger
}

func actorRole(c echo.Context) model.Role {
	role, _ := c.Get("role").(string)
	return model.Role(role)
}

func (h *Controller) writeErr(c echo.Context, op string, err error) error {
	switch adminsvc.Code(err) {
	case adminsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied"})
	case adminsvc.ErrUserNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	case adminsvc.ErrImmutable:
		return c.JSON(http.StatusConflict, echo.Map{"message": "cannot modify a super admin"})
	case adminsvc.ErrHasData:
		return c.JSON(http.StatusConflict, echo.Map{"message": "target has related data"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// GET /v1/admin/overview
func (h *Controller) Overview(c echo.Context) error {
	out, err := h.Svc.Overview(c.Request().Context(), actorRole(c))
	if err != nil {
		return h.writeErr(c, "admin overview", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/admin/users/:id/promote
func (h *Controller) Promote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Promote(c.Request().Context(), actorRole(c), id); err != nil {
		return h.writeErr(c, "admin promote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user promoted to admin"})
}

// POST /v1/admin/users/:id/demote
func (h *Controller) Demote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Demote(c.Request().Context(), actorRole(c), id); err != nil {
		return h.writeErr(c, "admin demote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "admin demoted to user"})
}

// DELETE /v1/admin/users/:id
func (h *Controller) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.DeleteUser(c.Request().Context(), actorRole(c), id); err != nil {
		return h.writeErr(c, "admin delete user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user removed"})
}

// DELETE /v1/admin/books/:id
func (h *Controller) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.DeleteBook(c.Request().Context(), actorRole(c), id); err != nil {
		return h.writeErr(c, "admin delete book", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book removed"})
}
