package review

import (
	"log/slog"
	"net/http"
	"strconv"

	reviewsvc "github.com/Diba-Dev/leafora-marketplace/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/books/:id/reviews
func (h *Controller) Create(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rv, err := h.Svc.Add(c.Request().Context(), uid, bookID, req.Rating, req.Comment)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrBadRating, reviewsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "please provide a rating from 1 to 5 and a comment"})
		case reviewsvc.ErrAlreadyReviewed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "you have already reviewed this book"})
		case reviewsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		default:
			h.Log.Error("review create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, rv)
}

// GET /v1/books/:id/reviews
func (h *Controller) ListByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
