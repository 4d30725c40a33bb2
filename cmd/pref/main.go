package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ZygmuntJakub/preferans/internal/config"
	"github.com/ZygmuntJakub/preferans/internal/handler"
	"github.com/ZygmuntJakub/preferans/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("bad configuration")
	}
	log := cfg.Logger()

	if len(os.Args) > 1 && os.Args[1] == "simulation" {
		if err := StartSimulation(cfg, log); err != nil {
			log.WithError(err).Fatal("simulation failed")
		}
		return
	}
	h := handler.Handler{Store: session.NewStore(log), Log: log}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/ping", func(c echo.Context) error {
		return c.String(200, "pong")
	})

	h.Register(e)

	log.WithField("port", cfg.HTTPPort).Info("server starting")
	e.Logger.Fatal(e.Start(":" + cfg.HTTPPort))
}
