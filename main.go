// Package main video rental API.
//
// @title           Video Rental API
// @version         1.0
// @description     Video rental storefront (catalog, rentals, staff desk).
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
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/karim076/Weektaken-LU-1-sub000/app/echoServer"
	authctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/auth"
	catalogctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/catalog"
	rentalctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/rental"
	staffctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/staff"
	"github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/validation"
	"github.com/karim076/Weektaken-LU-1-sub000/config"
	authrepo "github.com/karim076/Weektaken-LU-1-sub000/repository/auth"
	catalogrepo "github.com/karim076/Weektaken-LU-1-sub000/repository/catalog"
	rentalrepo "github.com/karim076/Weektaken-LU-1-sub000/repository/rental"
	authsvc "github.com/karim076/Weektaken-LU-1-sub000/service/auth"
	catalogsvc "github.com/karim076/Weektaken-LU-1-sub000/service/catalog"
	rentalsvc "github.com/karim076/Weektaken-LU-1-sub000/service/rental"
	"github.com/karim076/Weektaken-LU-1-sub000/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ar := authrepo.New(db)
	cr := catalogrepo.New(db)
	rr := rentalrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	cs := catalogsvc.New(cr)
	rs := rentalsvc.New(rr, cr, rentalsvc.ExtendPolicy{
		MaxExtensions: cfg.MaxExtensions,
		IncrementDays: cfg.ExtensionDays,
	})

	// expired-reservation sweeper
	cleaner := rentalsvc.NewCleaner(rr, time.Duration(cfg.HoldHours)*time.Hour)
	go func() {
		t := time.NewTicker(15 * time.Minute)
		defer t.Stop()
		for range t.C {
			n, err := cleaner.ReleaseExpired(ctx)
			if err != nil {
				log.Error("sweeper failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("released expired reservations", "count", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	staffC := &staffctrl.Controller{Svc: rs, V: v, Log: log}

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
		Auth:      authC,
		Catalog:   catalogC,
		Rental:    rentalC,
		Staff:     staffC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
