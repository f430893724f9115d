package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voiceagent/internal/config"
	"voiceagent/internal/replay"
)

type replayConfig struct {
	addr     string
	script   string
	logLevel string
}

func parseFlags() replayConfig {
	cfg := replayConfig{}
	flag.StringVar(&cfg.addr, "addr", config.EnvOr("REPLAY_ADDR", "127.0.0.1:8000"), "listen address")
	flag.StringVar(&cfg.script, "script", config.EnvOr("REPLAY_SCRIPT", ""), "yaml script of canned agent answers (built-in demo when empty)")
	flag.StringVar(&cfg.logLevel, "log-level", config.EnvOr("LOG_LEVEL", "info"), "debug|info|warn|error")
	flag.Parse()
	return cfg
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "agent-replay: %v\n", err)
		os.Exit(1)
	}
	cfg := parseFlags()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.ParseLevel(cfg.logLevel)}))

	script := replay.DefaultScript()
	if cfg.script != "" {
		loaded, err := replay.LoadScript(cfg.script)
		if err != nil {
			logger.Error("failed to load script", slog.String("path", cfg.script), slog.String("error", err.Error()))
			os.Exit(1)
		}
		script = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.addr, replay.NewServer(script, logger), logger); err != nil {
		logger.Error("agent-replay stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, srv *replay.Server, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("agent replay listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
