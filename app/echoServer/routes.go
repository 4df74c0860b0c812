package echoServer

import (
	"net/http"

	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/admin"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/auth"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/book"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/notification"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/order"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/profile"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/review"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth         *auth.Controller
	Book         *book.Controller
	Order        *order.Controller
	Review       *review.Controller
	Notification *notification.Controller
	Profile      *profile.Controller
	Admin        *admin.Controller
	JWTSecret    string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Catalog reads need no session
	pub.GET("/books", c.Book.List)
	pub.GET("/books/latest", c.Book.Latest)
	pub.GET("/books/categories", c.Book.Categories)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/books/:id/reviews", c.Review.ListByBook)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// claims → request-scoped identity (user_id, role, email)
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			email, err := jwtx.EmailFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			ctx.Set("email", email)
			return next(ctx)
		}
	})

	// Listings
	auth.POST("/books", c.Book.Create)
	auth.PUT("/books/:id", c.Book.Update)
	auth.DELETE("/books/:id", c.Book.Delete)

	// Reviews
	auth.POST("/books/:id/reviews", c.Review.Create)

	// Orders
	auth.POST("/orders", c.Order.Create)
	auth.POST("/orders/:id/accept", c.Order.Accept)
	auth.POST("/orders/:id/reject", c.Order.Reject)
	auth.GET("/orders/:id/receipt", c.Order.Receipt)
	auth.GET("/orders/my", c.Order.My)
	auth.GET("/orders/incoming", c.Order.Incoming)

	// Profile & notifications
	auth.GET("/profile", c.Profile.Get)
	auth.PUT("/profile", c.Profile.Update)
	auth.GET("/notifications", c.Notification.Inbox)
	auth.DELETE("/notifications/done", c.Notification.ClearDone)

	// Moderation
	auth.GET("/admin/overview", c.Admin.Overview)
	auth.POST("/admin/users/:id/promote", c.Admin.Promote)
	auth.POST("/admin/users/:id/demote", c.Admin.Demote)
	auth.DELETE("/admin/users/:id", c.Admin.DeleteUser)
	auth.DELETE("/admin/books/:id", c.Admin.DeleteBook)
}
