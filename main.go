// Package main Leafora marketplace API.
//
// @title           Leafora Marketplace API
// @version         1.0
// @description     Used-book marketplace (listings, orders, reviews, notifications).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Diba-Dev/leafora-marketplace/app/echoServer"
	adminctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/admin"
	authctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/auth"
	bookctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/book"
	notifctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/notification"
	orderctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/order"
	profilectrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/profile"
	reviewctrl "github.com/Diba-Dev/leafora-marketplace/app/echoServer/controller/review"
	"github.com/Diba-Dev/leafora-marketplace/app/echoServer/validation"
	"github.com/Diba-Dev/leafora-marketplace/config"
	authrepo "github.com/Diba-Dev/leafora-marketplace/repository/auth"
	bookrepo "github.com/Diba-Dev/leafora-marketplace/repository/book"
	notifrepo "github.com/Diba-Dev/leafora-marketplace/repository/notification"
	orderrepo "github.com/Diba-Dev/leafora-marketplace/repository/order"
	reviewrepo "github.com/Diba-Dev/leafora-marketplace/repository/review"
	userrepo "github.com/Diba-Dev/leafora-marketplace/repository/user"
	adminsvc "github.com/Diba-Dev/leafora-marketplace/service/admin"
	authsvc "github.com/Diba-Dev/leafora-marketplace/service/auth"
	booksvc "github.com/Diba-Dev/leafora-marketplace/service/book"
	notifsvc "github.com/Diba-Dev/leafora-marketplace/service/notification"
	ordersvc "github.com/Diba-Dev/leafora-marketplace/service/order"
	reviewsvc "github.com/Diba-Dev/leafora-marketplace/service/review"
	usersvc "github.com/Diba-Dev/leafora-marketplace/service/user"
	"github.com/Diba-Dev/leafora-marketplace/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	or := orderrepo.New(db)
	rr := reviewrepo.New(db)
	nr := notifrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret, cfg.JWTTTLHours)
	bs := booksvc.New(br)
	ords := ordersvc.New(or)
	rs := reviewsvc.New(rr)
	ns := notifsvc.New(nr)
	us := usersvc.New(ur, br, or, nr)
	ads := adminsvc.New(ur, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, Reviews: rs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: ords, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	notifC := &notifctrl.Controller{Svc: ns, Log: log}
	profileC := &profilectrl.Controller{Svc: us, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:         authC,
		Book:         bookC,
		Order:        orderC,
		Review:       reviewC,
		Notification: notifC,
		Profile:      profileC,
		Admin:        adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
