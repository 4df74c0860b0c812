package order

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Diba-Dev/leafora-marketplace/model"
	ordersvc "github.com/Diba-Dev/leafora-marketplace/service/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/orders
func (h *Controller) Create(c echo.Context) error {
	var req CreateOrderReq
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
	email, _ := c.Get("email").(string)

	o, err := h.Svc.Create(c.Request().Context(), uid, email, req.BookID, model.OrderType(req.OrderType), req.RentMonths)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ordersvc.ErrRentUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book is not offered for rent"})
		case ordersvc.ErrBadOrder:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid order"})
		case ordersvc.ErrCodeCollision:
			return c.JSON(http.StatusConflict, echo.Map{"message": "could not assign a transaction code, try again"})
		default:
			h.Log.Error("order create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":         o.ID,
		"status":           o.Status,
		"total_price":      o.TotalPrice,
		"transaction_code": o.TransactionCode,
	})
}

// POST /v1/orders/:id/accept
func (h *Controller) Accept(c echo.Context) error {
	return h.transition(c, h.Svc.Accept, "order accepted")
}

// POST /v1/orders/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	return h.transition(c, h.Svc.Reject, "order rejected")
}

func (h *Controller) transition(c echo.Context, fn func(ctx context.Context, actorID, orderID int64) error, okMsg string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := fn(c.Request().Context(), uid, id); err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrOrderNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "order not found"})
		case ordersvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "unauthorized"})
		case ordersvc.ErrNotPending:
			return c.JSON(http.StatusConflict, echo.Map{"message": "order already resolved"})
		default:
			h.Log.Error("order transition", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": okMsg})
}

// GET /v1/orders/:id/receipt
func (h *Controller) Receipt(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	rc, err := h.Svc.Receipt(c.Request().Context(), uid, id)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrOrderNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "receipt not found"})
		case ordersvc.ErrNotParticipant:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "unauthorized"})
		default:
			h.Log.Error("order receipt", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, rc)
}

// GET /v1/orders/my
func (h *Controller) My(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyOrders(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("order history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/orders/incoming
func (h *Controller) Incoming(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.IncomingOrders(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("order incoming", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
