// Package main camera rental API.
//
// @title           Camera Rental API
// @version         1.0
// @description     camera rental service (auth, catalog, rentals).
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
	"net/http"
	"os"
	"time"

	"camrental/app/echoServer"
	authctrl "camrental/app/echoServer/controller/auth"
	cameractrl "camrental/app/echoServer/controller/camera"
	rentalctrl "camrental/app/echoServer/controller/rental"
	"camrental/app/echoServer/validation"
	"camrental/config"
	camerarepo "camrental/repository/camera"
	rentalrepo "camrental/repository/rental"
	userrepo "camrental/repository/user"
	authsvc "camrental/service/auth"
	camerasvc "camrental/service/camera"
	rentalsvc "camrental/service/rental"
	"camrental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process env")
	}

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB over pgx
	db, err := database.Open(ctx, cfg.DatabaseURL)
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
	ur := userrepo.New(db)
	cr := camerarepo.New(db)
	rr := rentalrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := camerasvc.New(cr)
	rs := rentalsvc.New(db, rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	cameraC := &cameractrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/api/health", func(c echo.Context) error {
		pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":   "degraded",
				"database": "disconnected",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":   "ok",
			"database": "connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Camera: cameraC,
		Rental: rentalC,

		Users:     ur,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
