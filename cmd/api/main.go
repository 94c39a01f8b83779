package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"campusapi/docs"
	"campusapi/internal/bootstrap"
	"campusapi/internal/config"
	"campusapi/internal/database"
	"campusapi/internal/database/migration"
	handlers "campusapi/internal/http/handler"
	"campusapi/internal/http/middleware"
	"campusapi/internal/logging"
	"campusapi/internal/otel"
	"campusapi/internal/repository/postgres"
	"campusapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Campus API
// @version 1.0
// @description Student records and document store management.
// @BasePath /
func main() {
	// .env is auto-loaded before Load reads the environment
	cfg, err := config.Load()
	if err != nil {
		logging.New("error", nil, os.Stderr).Fatal("invalid configuration", zap.Error(err))
	}

	log := logging.New(cfg.LogLevel, logging.LoadLocation(cfg.Timezone), os.Stdout)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Name, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	studentSvc := service.StudentLoggingMiddleware(log)(
		service.NewStudentService(postgres.NewStudentPostgres(db)),
	)

	docSvc, err := bootstrap.DocumentService(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("failed to initialize document service", zap.Error(err))
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(recover.New())
	// RequestID runs first so every later middleware and log line can see the id
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())
	app.Use(middleware.Logger(log))
	// fiber rejects credentials combined with a wildcard origin
	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
	}))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Routes{
		DB:        db,
		Students:  studentSvc,
		Documents: docSvc,
		APIPrefix: cfg.APIPrefix,
		Info: handlers.AppInfo{
			Name:    cfg.Name,
			Version: cfg.Version,
			DocsURL: "/swagger/index.html",
		},
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		docs.SwaggerInfo.Version = cfg.Version

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", addr), zap.String("version", cfg.Version))
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
