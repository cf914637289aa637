package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"prefsync/internal/platform/config"
	"prefsync/internal/platform/httpserver"
	"prefsync/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/recipient.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start prefsync", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Server.Addr, app.router)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting prefsync", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if app.memoryQueue != nil {
		g.Go(func() error {
			if err := app.memoryQueue.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		n, err := app.coordinator.EnsureConsistency(gctx)
		if err != nil {
			log.Warn("startup consistency check failed", "error", err)
			return nil
		}
		log.Info("startup consistency check scheduled repairs", "count", n)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := app.coordinator.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		app.close(shutdownCtx)
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("prefsync stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("prefsync stopped")
}
