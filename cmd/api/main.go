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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	"github.com/BruksfildServices01/barbearia-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barbearia-agenda/internal/db"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barbearia-agenda/internal/logging"
	"github.com/BruksfildServices01/barbearia-agenda/internal/routes"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred closes execute on both
// signal shutdown and listener failure.
func run() error {

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// --------------------------------------------------
	// Lock de horários (Redis se configurado)
	// --------------------------------------------------
	var locker lock.Locker = lock.NewLocal()
	if cfg.UsesRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := lock.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		defer client.Close()
		locker = lock.NewRedis(client, cfg.SlotLockTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis slot lock")
	} else {
		log.Info().Msg("using in-process slot lock")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Locker:  locker,
		Auditor: auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --------------------------------------------------
	// Graceful shutdown
	// --------------------------------------------------
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	return nil
}
