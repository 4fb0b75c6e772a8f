package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cardlens/statement-parser/internal/api"
	"github.com/cardlens/statement-parser/internal/config"
)

func main() {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB << 20,
	})
	api.Register(app)

	logger.WithField("port", cfg.Port).Info("starting statement parser")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
