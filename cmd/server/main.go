package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"reposter/internal/adapters/cache"
	"reposter/internal/adapters/compositor"
	"reposter/internal/adapters/files"
	"reposter/internal/adapters/instagram"
	"reposter/internal/adapters/web"
	"reposter/internal/usecases"
	"reposter/pkg/log"
)

func main() {
	// Missing .env is fine; all settings have defaults.
	_ = godotenv.Load()

	logger := log.New(logLevel(), log.NewStdout())
	log.SetDefault(logger)
	defer logger.Close()

	downloadsRoot := envOr("DOWNLOAD_DIR", "downloads")
	if err := os.MkdirAll(downloadsRoot, 0o755); err != nil {
		fatal(logger, "failed to create downloads dir", "dir", downloadsRoot, "error", err)
	}

	sessions, err := instagram.NewSessionStore(envOr("SESSION_DIR", ".sessions"))
	if err != nil {
		fatal(logger, "failed to create session store", "error", err)
	}

	geometry, err := compositor.LoadGeometry(envOr("COMPOSE_CONFIG", "config/compose.yaml"))
	if err != nil {
		fatal(logger, "failed to load compose geometry", "error", err)
	}

	// Initialize adapters
	fetcher := instagram.NewClient(envOr("YTDLP_BIN", "yt-dlp"), sessions, actionDelay())
	previewCache := cache.NewMemoryCache(cacheTTL())
	organizer := files.NewOrganizer(files.DefaultImageExts, files.DefaultVideoExts)
	composer := compositor.New(geometry)

	// Initialize use cases
	adjustUC := usecases.NewAdjustThreadUseCase()
	previewUC := usecases.NewPreviewPostUseCase(previewCache, fetcher)
	downloadUC := usecases.NewDownloadPostUseCase(fetcher, organizer, composer, downloadsRoot, maxRetries())

	// Initialize web handlers
	tasks := web.NewTaskStore()
	limiter := web.NewRateLimiter(10, time.Minute) // 10 downloads/min per IP
	handlers := web.NewHandlers(adjustUC, previewUC, downloadUC, tasks, limiter)

	// Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Reposter",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(web.RequestIDConfig()))
	app.Use(web.RequestIDToContextMiddleware())
	app.Use(web.RequestLoggerMiddleware())

	// Setup routes
	web.SetupRoutes(app, handlers)

	port := envOr("PORT", "3000")
	log.GlobalInfo("starting reposter", "port", port)
	if err := app.Listen(":" + port); err != nil {
		fatal(logger, "server stopped", "error", err)
	}
}

// fatal logs, flushes the async logger, and exits. Deferred closes do not
// run past os.Exit, so the flush happens here.
func fatal(logger *log.Logger, msg string, keysAndValues ...any) {
	logger.Fatal(msg, keysAndValues...)
	logger.Close()
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logLevel() log.Level {
	level, err := log.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return log.Info
	}
	return level
}

// cacheTTL returns the preview cache TTL from environment variable or default.
func cacheTTL() time.Duration {
	minutes, err := strconv.Atoi(envOr("CACHE_TTL_MINUTES", "5"))
	if err != nil || minutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// actionDelay returns the pause between consecutive media fetches, used to
// stay under Instagram's informal rate limits.
func actionDelay() time.Duration {
	seconds, err := strconv.Atoi(envOr("DELAY_BETWEEN_ACTIONS", "2"))
	if err != nil || seconds < 0 {
		return 2 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// maxRetries returns the download retry count from environment variable
// or default.
func maxRetries() int {
	retries, err := strconv.Atoi(envOr("MAX_RETRIES", "4"))
	if err != nil || retries < 0 {
		return 4
	}
	return retries
}
