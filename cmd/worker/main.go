package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/anphat-erp/anphat-erp/internal/app"
	"github.com/anphat-erp/anphat-erp/internal/catalog"
	"github.com/anphat-erp/anphat-erp/internal/platform/cache"
	"github.com/anphat-erp/anphat-erp/internal/platform/db"
	"github.com/anphat-erp/anphat-erp/internal/projects"
	"github.com/anphat-erp/anphat-erp/internal/quotes"
	"github.com/anphat-erp/anphat-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalogRepo := catalog.NewRepository(pool)
	catalogCache := catalog.NewCache(redisClient, cfg.CatalogCacheTTL)
	catalogService := catalog.NewService(catalogRepo, catalogCache)
	if err := catalogCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("catalog cache subscribe", slog.Any("error", err))
	}

	quotesRepo := quotes.NewRepository(pool)
	projectsRepo := projects.NewRepository(pool)
	projectsService := projects.NewService(logger, projectsRepo, quotesRepo)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskProjectRollup, Handler: jobs.NewProjectRollupHandler(logger, projectsService)},
			{Type: jobs.TaskCatalogWarmup, Handler: jobs.NewCatalogWarmupHandler(logger, catalogService)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 1 * * *", Task: jobs.NewCatalogWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
