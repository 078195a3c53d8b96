// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/db"
	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/router"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	// Card configuration; a missing file means built-in defaults
	cardCfg, err := cardconfig.Load(cfg.CardConfig)
	if err != nil {
		return err
	}
	cards := cardconfig.NewStore(cardCfg)

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("database schema ready", "type", cfg.DatabaseType)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	server := &http.Server{
		Handler:           middleware.CORS(cfg.BaseURL, router.NewRouter(dbConn, cfg, cards)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Hot reload is optional; the server keeps running without it
		if err := cardconfig.Watch(ctx, cfg.CardConfig, cards); err != nil {
			slog.Warn("card config hot reload disabled", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
