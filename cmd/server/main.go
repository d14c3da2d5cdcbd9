package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	labelhandler "labelprint/internal/label/handler"
	labelmetrics "labelprint/internal/label/metrics"
	"labelprint/internal/label/render"
	"labelprint/internal/label/service"
	"labelprint/internal/platform/config"
	"labelprint/internal/platform/httpserver"
	"labelprint/internal/platform/logger"
	"labelprint/internal/platform/metrics"
	"labelprint/internal/printnode"
	httptransport "labelprint/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Label rules live in internal/label.
func main() {
	if err := run(); err != nil {
		slog.Error("labelprint stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	// Missing credentials block the deployment rather than failing every scan.
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	overflow, err := cfg.OverflowPolicy()
	if err != nil {
		return err
	}
	client, err := printnode.New(cfg.PrintNodeClientConfig(), printnode.WithLogger(log))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.New(policy, render.New(render.WithOverflowPolicy(overflow)), client,
		service.WithLogger(log),
		service.WithMetrics(labelmetrics.New(reg)),
	)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:     log,
		Metrics:    metrics.New(reg),
		Gatherer:   reg,
		Labels:     labelhandler.New(svc, log),
		KioskToken: cfg.Server.KioskToken,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting labelprint",
			"addr", cfg.Server.Addr,
			"policy", policy.Name,
			"max_length", policy.MaxLength,
			"on_overflow", overflow,
			"printer_id", client.PrinterID(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
