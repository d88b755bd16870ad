package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Thread adjuster
	api.Post("/thread/adjust", handlers.AdjustThread)

	// Instagram downloads
	api.Post("/parse", handlers.ParseInput)
	api.Post("/download", handlers.StartDownload)
	api.Get("/download/:id", handlers.DownloadStatus)
}
