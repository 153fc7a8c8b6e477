package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/config"
	"github.com/seo-optimizer/seoreport/logging"
	"github.com/seo-optimizer/seoreport/middleware"
	"github.com/seo-optimizer/seoreport/stats"
	"github.com/seo-optimizer/seoreport/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	// Load the sentiment lexicon before the first request.
	analyzer.Warmup()

	seoAnalyzer := analyzer.New(
		analyzer.WithFetcher(analyzer.NewHTTPFetcher(
			analyzer.WithFetchTimeout(cfg.FetchTimeout),
			analyzer.WithUserAgent(cfg.UserAgent),
		)),
		analyzer.WithParallel(cfg.Parallel),
		analyzer.WithLogger(logger),
	)

	store, err := storage.NewStore(cfg.AnalysesDir(), storage.WithLogger(logger))
	if err != nil {
		return err
	}

	statsStorage, err := stats.NewStorage(cfg.DataDir, stats.WithLogger(logger))
	if err != nil {
		return err
	}
	statsStorage.Cleanup()

	logger.Info("analyzer ready", "extractors", seoAnalyzer.Extractors(), "analyses_dir", store.Dir())

	s := &server{
		analyzer: seoAnalyzer,
		store:    store,
		stats:    statsStorage,
		logger:   logger,
		devMode:  cfg.DevMode,
		now:      time.Now,
	}
	router := newRouter(s, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", "http://localhost:"+cfg.Port, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			statsStorage.Shutdown()
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := statsStorage.Shutdown(); err != nil {
		logger.Error("statistics flush failed", "error", err)
	}
	return nil
}
