package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"profileviews/internal/config"
	"profileviews/internal/database"
	"profileviews/internal/database/migration"
	handlers "profileviews/internal/http/handler"
	"profileviews/internal/http/middleware"
	"profileviews/internal/logger"
	"profileviews/internal/otel"
	"profileviews/internal/repository/postgres"
	"profileviews/internal/service"
	"profileviews/internal/storage"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", "error", err.Error())
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	loc, err := cfg.Snapshot.Location()
	if err != nil {
		log.Fatal("invalid_config", "error", err.Error())
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("database_connect_failed", "error", err.Error())
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("migration_failed", "error", err.Error())
	}

	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal("object_storage_init_failed", "error", err.Error())
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	importMetrics, err := service.NewImportMetrics(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", "error", err.Error())
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", "error", err.Error())
	}

	repo := postgres.NewProfileViewPostgres(db)
	importSvc := service.NewImportService(repo, archive, loc, importMetrics, log)
	viewSvc := service.NewProfileViewService(repo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    16 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, importSvc, viewSvc, reg)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("server_shutdown_failed", "error", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", "addr", addr, "archive_enabled", cfg.ArchiveEnabled())
	if err := app.Listen(addr); err != nil {
		log.Fatal("server_start_failed", "error", err.Error())
	}
}
