package server

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

// NewApp builds the Fiber application serving the browser API and the
// static viewer files.
func NewApp(config *pipeline.PipelineConfig) *fiber.App {
	if config == nil {
		config = pipeline.DefaultPipelineConfig()
	}

	app := fiber.New(fiber.Config{
		AppName:               "DocLens Browser",
		DisableStartupMessage: false,
		ReadTimeout:           config.Server.ReadTimeout,
		WriteTimeout:          config.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "UTC",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, OPTIONS",
	}))

	handlers := NewHandlers(config)
	app.Get("/api/quotes", handlers.Quotes)
	app.Get("/api/search", handlers.Search)

	app.Static("/", config.Server.StaticRoot, fiber.Static{
		Browse: false,
	})

	indexPath := filepath.Join(config.DataPaths.BrowserDataDir, "person_index.json")
	if _, err := os.Stat(indexPath); err != nil {
		log.Warn().
			Str("path", indexPath).
			Msg("Person browser data not found, run preprocess-browser to generate it")
	}

	return app
}
