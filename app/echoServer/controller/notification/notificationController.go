package notification

import (
	"log/slog"
	"net/http"

	notifsvc "github.com/Diba-Dev/leafora-marketplace/service/notification"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc notifsvc.Service
	Log *slog.Logger
}

// GET /v1/notifications
func (h *Controller) Inbox(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.Inbox(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("notification inbox", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/notifications/done
func (h *Controller) ClearDone(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	n, err := h.Svc.ClearDone(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("notification clear", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notifications cleared", "cleared": n})
}
