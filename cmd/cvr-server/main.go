package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/joelkehle/cvr-benchmark/internal/config"
	"github.com/joelkehle/cvr-benchmark/internal/export"
	"github.com/joelkehle/cvr-benchmark/internal/report"
	"github.com/joelkehle/cvr-benchmark/internal/server"
	"github.com/joelkehle/cvr-benchmark/internal/store"
	"github.com/joelkehle/cvr-benchmark/internal/telemetry"
)

func main() {
	var (
		addr   = flag.String("addr", "", "Listen address (overrides config)")
		dbPath = flag.String("db", "", "SQLite database path (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, "cvr-benchmark")
	if err != nil {
		logger.Fatal("init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer st.Close()

	exporter := export.New(cfg.Benchmarks, report.Options{AlwaysShowAverage: cfg.Report.AlwaysShowAverage},
		export.NewChromium(cfg.ChromePath), logger)

	handler := server.NewRouter(logger, st, exporter, cfg.Benchmarks)

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBPath))
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("serve", zap.Error(err))
	}
}
