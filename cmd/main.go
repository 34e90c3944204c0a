package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/webbasics/internal/adapters/http/api"
	"github.com/okian/webbasics/internal/adapters/http/site"
	"github.com/okian/webbasics/internal/adapters/http/swagger"
	"github.com/okian/webbasics/internal/adapters/reload"
	"github.com/okian/webbasics/internal/config"
	"github.com/okian/webbasics/pkg/logger"
	"github.com/okian/webbasics/pkg/metrics"
)

const (
	readHeaderTimeout         = 5 * time.Second
	idleTimeout               = 60 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("webbasics: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	srv, hub, renderer, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	if hub != nil {
		defer hub.Close()
		if renderer.Dir() != "" {
			w := reload.NewWatcher(renderer.Dir(), renderer, hub, log.Named("reload"))
			go func() {
				if err := w.Run(ctx); err != nil {
					log.Error(ctx, "template watcher stopped", logger.Error(err))
				}
			}()
		}
	}

	go startSystemMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Any("debug", cfg.Debug),
			logger.String("template_dir", cfg.TemplateDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// build wires renderer, routes and middleware into an http.Server. The hub is nil
// when debug is off.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.Server, *reload.Hub, *site.Renderer, error) {
	var hub *reload.Hub
	renderOpts := []site.Option{site.WithDir(cfg.TemplateDir), site.WithLogger(log.Named("site"))}
	apiOpts := []api.Option{api.WithLogger(log), api.WithDebug(cfg.Debug)}
	if cfg.Debug {
		hub = reload.NewHub(log.Named("reload"))
		renderOpts = append(renderOpts, site.WithLiveReload(reload.Path))
		apiOpts = append(apiOpts, api.WithLiveReload(reload.Path, hub))
	}

	renderer, err := site.NewRenderer(renderOpts...)
	if err != nil {
		return nil, nil, nil, err
	}

	apiServer := api.NewServer(renderer, apiOpts...)
	router := api.NewRouter()
	apiServer.Register(ctx, router)
	swagger.Register(ctx, router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Wrap(router),
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv, hub, renderer, nil
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
