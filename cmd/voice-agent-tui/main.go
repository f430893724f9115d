package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"voiceagent/internal/agent"
	"voiceagent/internal/config"
	"voiceagent/internal/metrics"
	"voiceagent/internal/turn"
)

// parseConfig layers defaults, the optional yaml file, .env and the
// environment, then any flags set explicitly on the command line.
func parseConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("voice-agent-tui", flag.ContinueOnError)
	configPath := fs.String("config", config.EnvOr("VOICE_AGENT_CONFIG", ""), "Optional yaml config file")
	url := fs.String("url", "", "Voice agent base URL")
	timeout := fs.Int("timeout", 0, "Request timeout seconds (0 disables)")
	reset := fs.Bool("reset", true, "Clear the agent context on startup")
	altScreen := fs.Bool("alt-screen", true, "Run in the alternate screen buffer")
	mouse := fs.Bool("mouse", true, "Enable mouse wheel scrolling")
	logLevel := fs.String("log-level", "", "debug|info|warn|error")
	logDir := fs.String("log-dir", "", "Directory for JSON log files (empty discards logs)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		if err := config.LoadFile(*configPath, &cfg); err != nil {
			return config.Config{}, err
		}
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, err
	}
	config.ApplyEnv(&cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.Agent.URL = *url
		case "timeout":
			cfg.Agent.RequestTimeout = *timeout
		case "reset":
			cfg.Agent.ResetOnStart = *reset
		case "alt-screen":
			cfg.UI.AltScreen = *altScreen
		case "mouse":
			cfg.UI.Mouse = *mouse
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-dir":
			cfg.Logging.Dir = *logDir
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cfg config.Config) error {
	logger, closer, err := config.NewLogger(cfg.Logging, "voice-agent-tui")
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, m, logger); err != nil {
				logger.Error("metrics listener failed", slog.String("error", err.Error()))
			}
		}()
	}

	client, err := agent.NewClient(agent.Config{
		BaseURL:   cfg.Agent.URL,
		Timeout:   cfg.Agent.Timeout(),
		SessionID: cfg.Agent.SessionID,
	})
	if err != nil {
		return err
	}
	logger = logger.With(slog.String("session_id", client.SessionID()))
	ctrl := turn.NewController(client, turn.WithLogger(logger), turn.WithObserver(m))

	logger.Info("voice agent client starting", slog.String("agent_url", cfg.Agent.URL))
	mdl := newModel(ctx, modelDeps{
		ctrl:         ctrl,
		resetter:     client,
		resetMetrics: m,
		logger:       logger,
		agentURL:     cfg.Agent.URL,
		resetOnStart: cfg.Agent.ResetOnStart,
	})

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(mdl, opts...).Run(); err != nil {
		return err
	}
	logger.Info("voice agent client stopped")
	return nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "voice-agent-tui: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "voice-agent-tui fatal error: %v\n", err)
		os.Exit(1)
	}
}
