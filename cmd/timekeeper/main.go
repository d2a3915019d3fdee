package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"timekeeper/internal/metrics"
	"timekeeper/internal/storage"
	"timekeeper/internal/ui/preferences"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
)

const appName = "TimeKeeper"

var CLI struct {
	Config      string `short:"c" help:"Settings file path (defaults to the user config directory)"`
	Verbose     bool   `short:"v" help:"Enable verbose logging"`
	LogFormat   string `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9105)"`

	Gui struct{} `cmd:"" default:"1" help:"Open the desktop window with timer and stopwatch tabs"`
	Tui struct{} `cmd:"" help:"Run the timer and stopwatch in the terminal"`

	Format struct {
		Countdown struct {
			Seconds int `arg:"" help:"Remaining seconds"`
		} `cmd:"" help:"Print seconds as MM:SS"`
		Stopwatch struct {
			Millis int64 `arg:"" help:"Elapsed milliseconds"`
		} `cmd:"" help:"Print milliseconds as MM:SS.CC"`
	} `cmd:"" help:"Format a raw counter the way the engines display it"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("timekeeper"),
		kong.Description("Countdown timer and stopwatch."),
	)

	logger := newLogger(os.Stderr, CLI.LogFormat, CLI.Verbose)
	slog.SetDefault(logger)

	var err error
	switch command := ctx.Command(); {
	case strings.HasPrefix(command, "format countdown"):
		err = runFormatCountdown(os.Stdout, CLI.Format.Countdown.Seconds)
	case strings.HasPrefix(command, "format stopwatch"):
		err = runFormatStopwatch(os.Stdout, CLI.Format.Stopwatch.Millis)
	case command == "tui":
		err = withEnvironment(logger, runTUI)
	default:
		err = withEnvironment(logger, runGUI)
	}
	if err != nil {
		logger.Error("timekeeper failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// environment carries what both front ends share.
type environment struct {
	logger       *slog.Logger
	recorder     metrics.Recorder
	settingsPath string
	settings     preferences.Settings
}

func withEnvironment(logger *slog.Logger, run func(*environment) error) error {
	settingsPath := CLI.Config
	if settingsPath == "" {
		path, err := storage.DefaultPath(appName)
		if err != nil {
			return fmt.Errorf("resolve settings path: %w", err)
		}
		settingsPath = path
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("using default settings", "path", settingsPath, "error", err)
	}

	recorder, shutdown := startMetrics(CLI.MetricsAddr, logger)
	defer shutdown()

	return run(&environment{
		logger:       logger,
		recorder:     recorder,
		settingsPath: settingsPath,
		settings:     settings,
	})
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}

// startMetrics returns a no-op recorder unless addr is set.
func startMetrics(addr string, logger *slog.Logger) (metrics.Recorder, func()) {
	if addr == "" {
		return metrics.NoopRecorder{}, func() {}
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(registry))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	return recorder, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}
}
