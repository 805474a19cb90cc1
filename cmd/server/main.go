package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"riskly/risk-simulator/internal/api"
	"riskly/risk-simulator/internal/config"
	"riskly/risk-simulator/internal/logger"
	"riskly/risk-simulator/internal/page"
	"riskly/risk-simulator/internal/scanners/simulated"
	"riskly/risk-simulator/internal/security"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "riskly: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Environment,
	})

	limits := security.UploadLimits{
		MaxBytes:          cfg.Upload.MaxBytes,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}
	pages, err := page.New(cfg.Upload.FieldName, limits.Accept())
	if err != nil {
		return err
	}
	scanner := simulated.New(
		simulated.WithDelay(cfg.Simulator.Delay),
		simulated.WithLogger(log),
	)

	h := api.NewHandler(scanner, pages, limits, cfg.Upload.FieldName, log)
	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: api.NewRouter(h, api.RouterOptions{
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("risk simulator listening", map[string]interface{}{
			"address": cfg.Server.Address,
			"delay":   cfg.Simulator.Delay.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
