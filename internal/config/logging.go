package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SetupLogFile creates a new timestamped log file named prefix-<time>.log
// and removes the oldest files beyond maxFiles. The caller closes the file.
func SetupLogFile(dir, prefix string, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.log", prefix, time.Now().Format("2006-01-02T15-04-05.000")))
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := cleanupOldLogs(dir, prefix, maxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old logs: %v\n", err)
	}
	return f, nil
}

func cleanupOldLogs(dir, prefix string, maxFiles int) error {
	files, err := filepath.Glob(filepath.Join(dir, prefix+"-*.log"))
	if err != nil {
		return err
	}
	if len(files) <= maxFiles {
		return nil
	}
	// Timestamped names sort chronologically.
	sort.Strings(files)
	for i := 0; i < len(files)-maxFiles; i++ {
		if err := os.Remove(files[i]); err != nil {
			return fmt.Errorf("remove %s: %w", files[i], err)
		}
	}
	return nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the JSON logger for a component. With no Dir the logs
// are discarded, since the terminal belongs to the UI.
func NewLogger(cfg LoggingConfig, prefix string) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.TrimSpace(cfg.Dir) == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), io.NopCloser(nil), nil
	}
	maxFiles := cfg.MaxFiles
	if maxFiles < 1 {
		maxFiles = DefaultLogMaxFiles
	}
	f, err := SetupLogFile(cfg.Dir, prefix, maxFiles)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}
