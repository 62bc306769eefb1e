package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/config"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/metrics"
)

// env is what every command needs: configuration, the log, and an API
// client instrumented with both.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	client  *api.Client
	metrics *http.Server
}

func newEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if flagDebug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Path: cfg.LogFile})
	if err != nil {
		// The reader still works without a log file.
		fmt.Fprintf(os.Stderr, "warning: %v; logging disabled\n", err)
		log = logger.NewNop()
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	e := &env{
		cfg: cfg,
		log: log,
		client: api.New(cfg.APIURL,
			api.WithHTTPClient(api.NewHTTPClient(cfg.TimeoutDuration())),
			api.WithLogger(log),
			api.WithMetrics(collector),
		),
	}

	addr := cfg.MetricsAddr
	if flagMetricsAddr != "" {
		addr = flagMetricsAddr
	}
	if addr != "" {
		e.serveMetrics(addr, reg)
	}

	log.Info("starting",
		logger.String("version", version),
		logger.String("api_url", cfg.APIURL),
		logger.String("metrics_addr", addr),
	)
	return e, nil
}

func (e *env) serveMetrics(addr string, reg *prometheus.Registry) {
	e.metrics = &http.Server{
		Addr:              addr,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := e.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("metrics server stopped", logger.String("addr", addr), logger.Error(err))
		}
	}()
}

func (e *env) Close() {
	if e.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = e.metrics.Shutdown(ctx)
		cancel()
	}
	_ = e.log.Sync()
}
