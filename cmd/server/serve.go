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

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/routes"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*path)
		},
	}
}

func serve(path string) error {
	cfg, db, err := bootstrap(path)
	if err != nil {
		return err
	}
	defer shutdown(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	limiter, closeLimiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	activity := services.NewActivityLogService(db, 0)
	defer activity.Close()

	router := routes.Setup(db, cfg, routes.Deps{
		Storage:  store,
		Limiter:  limiter,
		Activity: activity,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"env":     cfg.Env,
			"storage": store.Name(),
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logrus.Info("server stopped")
	return nil
}

// newLimiter prefers Redis so counters are shared between instances, and
// falls back to process memory when Redis is not configured or unreachable.
func newLimiter(cfg *config.Config) (middleware.Store, func(), error) {
	if cfg.RateLimit.RedisURL != "" {
		store, err := middleware.NewRedisStore(cfg.RateLimit.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("redis unreachable, rate limiter using memory")
			store.Close()
		} else {
			logrus.Info("rate limiter using redis")
			return store, func() { store.Close() }, nil
		}
	}

	store := middleware.NewMemoryStore(time.Minute)
	return store, store.Close, nil
}
