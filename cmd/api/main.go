package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"imageapi/internal/cache"
	"imageapi/internal/config"
	"imageapi/internal/database"
	"imageapi/internal/database/migration"
	handlers "imageapi/internal/http/handler"
	"imageapi/internal/http/middleware"
	"imageapi/internal/logging"
	tracing "imageapi/internal/otel"
	"imageapi/internal/repository"
	"imageapi/internal/repository/cached"
	"imageapi/internal/repository/mongodb"
	"imageapi/internal/repository/postgres"
	"imageapi/internal/service"
	"imageapi/internal/storage"
)

// @title Image API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := logging.LoadLocation(cfg.Timezone)
	log := logging.Default(loc)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid_config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("tracing_init_failed")
	}

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("metadata_store_unavailable")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.WithError(err).Fatal("record_cache_unavailable")
		}
		defer rdb.Close()
		repo = cached.NewFileCached(repo, cache.NewRedisCache(rdb, cfg.Redis.TTL()), log)
	}

	blobs, err := openStorage(cfg)
	if err != nil {
		log.WithError(err).Fatal("blob_store_unavailable")
	}

	fileSvc := service.NewFileService(blobs, repo, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.UploadMaxBytes,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("metrics_init_failed")
	}

	app.Use(otelfiber.Middleware())
	// RequestID must run before Logger so every log line carries the id
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(metrics.Handler())

	handlers.RegisterMetrics(app, reg)
	handlers.RegisterRoutes(app, repo, fileSvc, log)

	handlers.RegisterSwagger(app, cfg.AppHost)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "metadata_backend": cfg.MetadataBackend, "blob_backend": cfg.Blob.Backend}).
			Info("server_listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("server_failed")
		}
	case <-ctx.Done():
		log.Info("shutdown_requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("server_shutdown_failed")
	}
	if err := closeRepo(shutdownCtx); err != nil {
		log.WithError(err).Warn("metadata_store_close_failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("tracing_shutdown_failed")
	}
}

// openRepository connects the configured metadata backend. The returned
// closer releases the process-wide handle.
func openRepository(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (repository.FileRepository, func(context.Context) error, error) {
	switch cfg.MetadataBackend {
	case config.BackendMongo:
		client, err := database.NewMongo(cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return mongodb.NewFileMongo(coll), client.Disconnect, nil
	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewFilePostgres(db), func(context.Context) error { return db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.MetadataBackend)
	}
}

func openStorage(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Blob.Backend {
	case config.BackendLocal:
		return storage.NewLocal(cfg.Blob.Dir)
	case config.BackendMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
	}
}
