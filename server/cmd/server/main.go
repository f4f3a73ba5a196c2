package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/server/internal/alerts"
	"github.com/riskboard/riskboard/server/internal/api"
	"github.com/riskboard/riskboard/server/internal/config"
	"github.com/riskboard/riskboard/server/internal/metrics"
	"github.com/riskboard/riskboard/server/internal/store"
	"github.com/riskboard/riskboard/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file; empty uses built-in defaults")
	envFile := flag.String("env-file", ".env", "load environment variables (webhook URLs) from this file if it exists")
	uiDir := flag.String("ui-dir", "", "serve a static UI from this directory (e.g. ui/dist); leave empty to disable")
	flag.Parse()

	var level slog.LevelVar
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load env file", "path", *envFile, "err", err)
		os.Exit(1)
	}

	slog.Info("riskboard-server starting", "config", *configPath)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
	}
	level.Set(parseLevel(cfg.Server.LogLevel))

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"log_level", cfg.Server.LogLevel,
		"broadcast_interval", cfg.Server.BroadcastInterval,
		"alert_rules", len(cfg.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds := dataset.New()
	st := store.New(store.DefaultHistoryLen)
	met := metrics.New()
	alertEngine := alerts.New(cfg.Alerts)

	// WebSocket hub: re-broadcasts the report summary to UI clients.
	hub := ws.New(st, alertEngine, cfg.Server.BroadcastInterval, met)
	go hub.Run(ctx)

	publish := func(r *report.Report, reason string) {
		e := st.Put(r, reason)
		met.ObserveReport(r, e.Revision, e.PublishedAt)
		alertEngine.Evaluate(r.Strategy)
		met.SetAlertsFiring(alertEngine.Firing())
		hub.Publish()
		slog.Info("report published", "revision", e.Revision, "reason", reason, "title", r.Options.Title)
	}

	r, err := report.Build(ds, reportOptions(cfg))
	if err != nil {
		logBuildError(err)
		os.Exit(1)
	}
	publish(r, "startup")

	if *configPath != "" {
		port := cfg.Server.HTTPPort
		go func() {
			err := config.Watch(ctx, *configPath, func(next *config.Config) {
				level.Set(parseLevel(next.Server.LogLevel))
				if next.Server.HTTPPort != port {
					slog.Warn("http_port change requires a restart", "current", port, "configured", next.Server.HTTPPort)
				}
				alertEngine.Reload(next.Alerts)
				r, err := report.Build(ds, reportOptions(next))
				if err != nil {
					logBuildError(err)
					slog.Warn("keeping previous report")
					return
				}
				publish(r, "reload")
			})
			if err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	// Combined HTTP server: REST API, metrics and WebSocket hub on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, alertEngine, met))
	httpMux.Handle("/metrics", met.Handler())
	httpMux.Handle("/ws/stream", hub)

	// The "/" catch-all serves index.html for unknown paths (SPA routing).
	if *uiDir != "" {
		files := http.FileServer(http.Dir(*uiDir))
		httpMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			path := *uiDir + r.URL.Path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, *uiDir+"/index.html")
				return
			}
			files.ServeHTTP(w, r)
		})
		slog.Info("serving UI static files", "dir", *uiDir)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("riskboard-server shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

// reportOptions maps the report section of the config onto build options.
func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		Title:          cfg.Report.Title,
		CurrencySymbol: cfg.Report.CurrencySymbol,
		Priorities:     derive.PriorityTable(cfg.Report.PriorityTable()),
	}
}

// logBuildError logs a report build failure with the typed fault's fields.
func logBuildError(err error) {
	var verr *derive.ValidationError
	var aerr *derive.ArithmeticInconsistency
	switch {
	case errors.As(err, &verr):
		slog.Error("report validation failed", "field", verr.Field, "reason", verr.Reason)
	case errors.As(err, &aerr):
		slog.Error("report arithmetic inconsistent",
			"quantity", aerr.Quantity, "index", aerr.Index, "got", aerr.Got, "want", aerr.Want)
	default:
		slog.Error("report build failed", "err", err)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
