package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/config"
	"github.com/findbrexitconsultants/directory/internal/db/postgres"
	dbValkey "github.com/findbrexitconsultants/directory/internal/db/valkey"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	logpkg "github.com/findbrexitconsultants/directory/internal/logger"
	"github.com/findbrexitconsultants/directory/internal/metrics"
	consultantrepo "github.com/findbrexitconsultants/directory/internal/repository/consultant"
	"github.com/findbrexitconsultants/directory/internal/repository/snapshot"
	viewsrepo "github.com/findbrexitconsultants/directory/internal/repository/views"
	"github.com/findbrexitconsultants/directory/internal/scheduler"
	chiTransport "github.com/findbrexitconsultants/directory/internal/transport/chi"
	cataloguc "github.com/findbrexitconsultants/directory/internal/usecase/catalog"
	healthuc "github.com/findbrexitconsultants/directory/internal/usecase/health"
	searchuc "github.com/findbrexitconsultants/directory/internal/usecase/search"
	viewsuc "github.com/findbrexitconsultants/directory/internal/usecase/views"
	"github.com/findbrexitconsultants/directory/internal/version"
)

// flushTimeout bounds one scheduled or shutdown flush of buffered views.
const flushTimeout = 10 * time.Second

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting directory API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	ctx := context.Background()

	pg, err := postgres.Open(postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to open postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.WaitForReady(ctx, time.Duration(cfg.Postgres.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Postgres not ready", zap.Error(err))
	}
	logger.Info("Connected to postgres")

	cache, err := dbValkey.NewStore(dbValkey.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer cache.Close()

	// The cache is optional at runtime: search degrades to direct loads while it is down.
	if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Cache not ready, continuing without it", zap.Error(err))
	} else {
		logger.Info("Connected to cache")
	}

	metrics.RegisterDomainMetrics()

	// Repositories
	consultants := consultantrepo.New(pg.DB())
	approved := snapshot.New(consultants, cache, cfg.Search.SnapshotTTL(), metrics.SnapshotCacheTotal, logger)
	counters := viewsrepo.New(cache, time.Duration(cfg.Views.CounterTTLSec)*time.Second)

	// Search: server pushdown with taxonomy post-filter, fallback over the approved snapshot.
	server := searchuc.NewServer(consultants, consultants)
	fallback := searchuc.NewFallback(approved)
	directory := searchuc.NewCoordinator(server, fallback).
		WithServerTimeout(cfg.Search.ServerTimeout()).
		WithRecorder(metrics.SearchRecorder{})

	// Views
	viewsSvc := viewsuc.New(counters, consultants, cfg.Views.QueueSize, logger).
		WithRecorder(metrics.ViewsRecorder{})
	viewsSvc.Start()

	sched := scheduler.New(viewsSvc, cfg.Views.FlushSchedule, flushTimeout, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal("Failed to start view flush scheduler", zap.Error(err))
	}

	catalogSvc := cataloguc.New(consultants, consultants, approved)
	healthSvc := healthuc.New(pg, cache)

	api := chiTransport.NewServer(chiTransport.Deps{
		Server:    server,
		Directory: directory,
		Catalog:   catalogSvc,
		Views:     viewsSvc,
		Snapshot:  approved,
		Health:    healthSvc,
	}, spec.Limits{
		Default: cfg.Search.DefaultPageSize,
		Max:     cfg.Search.MaxPageSize,
	}, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Handler(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	sched.Stop()
	if err := viewsSvc.Stop(shutdownCtx); err != nil {
		logger.Error("Views worker did not stop", zap.Error(err))
	}
	// Final flush of the counters left in Valkey.
	sched.RunOnce(shutdownCtx)

	logger.Info("Server stopped gracefully")
}
