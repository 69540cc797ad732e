package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/wendarnation/quimerabackend/internal/auth0"
	"github.com/wendarnation/quimerabackend/internal/config"
	"github.com/wendarnation/quimerabackend/internal/database"
	"github.com/wendarnation/quimerabackend/internal/handlers"
	"github.com/wendarnation/quimerabackend/internal/logging"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/routes"
	"github.com/wendarnation/quimerabackend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.Auth0Domain == "" || cfg.Auth0Audience == "" {
		slog.Error("AUTH0_DOMAIN and AUTH0_AUDIENCE environment variables are required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanoutHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	mgmt := auth0.NewClient(cfg)
	authService := services.NewAuthService(database.DB, mgmt)
	usuariosService := services.NewUsuariosService(database.DB, authService)
	zapatillasService := services.NewZapatillasService(database.DB)
	tiendasService := services.NewTiendasService(database.DB)
	listingsService := services.NewZapatillasTiendaService(database.DB)
	tallasService := services.NewTallasService(database.DB)
	listasService := services.NewListasFavoritosService(database.DB)
	comentariosService := services.NewComentariosService(database.DB)
	valoracionesService := services.NewValoracionesService(database.DB)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	usuariosHandler := handlers.NewUsuariosHandler(usuariosService)
	zapatillasHandler := handlers.NewZapatillasHandler(zapatillasService)
	tiendasHandler := handlers.NewTiendasHandler(tiendasService)
	listingsHandler := handlers.NewZapatillasTiendaHandler(listingsService)
	tallasHandler := handlers.NewTallasHandler(tallasService)
	listasHandler := handlers.NewListasFavoritosHandler(listasService)
	comentariosHandler := handlers.NewComentariosHandler(comentariosService)
	valoracionesHandler := handlers.NewValoracionesHandler(valoracionesService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authService,
		healthHandler, authHandler, usuariosHandler, zapatillasHandler,
		tiendasHandler, listingsHandler, tallasHandler, listasHandler,
		comentariosHandler, valoracionesHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Never leak 5xx detail to the client.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
