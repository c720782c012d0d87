package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sigfilter/internal/config"
	"sigfilter/internal/engine"
	"sigfilter/internal/gate"
	"sigfilter/internal/md"
	"sigfilter/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	reports, err := engine.NewReportLogger(cfg.ReportsPath, generateRunID())
	if err != nil {
		log.Fatalf("report logger error: %v", err)
	}
	defer func() {
		if err := reports.Close(); err != nil {
			log.Printf("failed to close report logger: %v", err)
		}
	}()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
		if err := m.Register(prometheus.DefaultRegisterer); err != nil {
			log.Fatalf("metrics error: %v", err)
		}
	}

	engineImpl, err := engine.New(cfg, gate.Gate{}, reports, m)
	if err != nil {
		log.Fatalf("engine error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		log.Printf("shutdown signal received")
		cancel()
	}()

	if cfg.MetricsAddr != "" {
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("metrics server listening", "addr", cfg.MetricsAddr, "path", "/metrics")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	handler := func(sample md.Sample) {
		engineImpl.OnSample(ctx, sample)
	}

	log.Printf("starting sigfilter mode=%s capacity=%d run_id=%s", cfg.Mode, cfg.Capacity, reports.RunID())
	switch cfg.Mode {
	case config.ModeStream:
		err = md.StartStream(ctx, cfg.APIKey, cfg.APISecret, cfg.Feed, cfg.Symbol, int32(cfg.PriceScale), handler)
	default:
		err = readInput(ctx, cfg, handler)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("sample source stopped: %v", err)
	}

	slog.Debug("final window", "window", engineImpl.Describe())
	log.Printf("sigfilter shutdown complete")
}

func readInput(ctx context.Context, cfg config.Config, handler md.SampleHandler) error {
	var r io.Reader = os.Stdin
	if cfg.Input != "-" {
		file, err := os.Open(cfg.Input)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}
	return md.ReadSamples(ctx, r, cfg.Source, handler)
}

func generateRunID() string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return timestamp
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}
