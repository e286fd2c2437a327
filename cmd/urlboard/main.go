// Package main wires together the URL board service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/urlboard/urlboard/internal/api"
	"github.com/urlboard/urlboard/internal/broadcast"
	"github.com/urlboard/urlboard/internal/clock/system"
	"github.com/urlboard/urlboard/internal/config"
	"github.com/urlboard/urlboard/internal/css"
	collyfetcher "github.com/urlboard/urlboard/internal/fetcher/colly"
	"github.com/urlboard/urlboard/internal/logging"
	"github.com/urlboard/urlboard/internal/metrics"
	"github.com/urlboard/urlboard/internal/orchestrator"
	memoryStorage "github.com/urlboard/urlboard/internal/storage/memory"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := memoryStorage.NewRecordStore()
	clock := system.New()
	broadcaster := broadcast.New(broadcast.Config{
		BufferSize: cfg.Events.Buffer,
		Logger:     logger.Named("broadcast"),
	})

	pageFetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	sheetFetcher := collyfetcher.New(collyfetcher.Config{
		Timeout: time.Duration(cfg.CSS.TimeoutSeconds) * time.Second,
	})
	cssInliner := css.NewInliner(sheetFetcher, logger.Named("css"))

	orch := orchestrator.New(
		store,
		pageFetcher,
		broadcaster,
		clock,
		cssInliner,
		orchestrator.Config{FetchTimeout: cfg.FetchTimeout()},
		logger.Named("orchestrator"),
	)

	apiServer := api.NewServer(orch, broadcaster, clock, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	// Closing the broadcaster ends every event stream so Shutdown can drain.
	broadcaster.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
