package replay

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"
)

// Server answers /run-agent with the next scripted step and /reset-chat by
// rewinding the script.
type Server struct {
	mu     sync.Mutex
	script Script
	cursor int
	served int
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewServer(script Script, logger *slog.Logger) *Server {
	return &Server{
		script: script,
		logger: logger,
		sleep:  sleepContext,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /run-agent", s.runAgent)
	mux.HandleFunc("GET /reset-chat", s.resetChat)
	mux.HandleFunc("GET /healthz", s.health)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(mux)
}

func (s *Server) next() (Step, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.cursor
	step := s.script.Steps[idx]
	s.cursor = (s.cursor + 1) % len(s.script.Steps)
	s.served++
	return step, idx
}

func (s *Server) runAgent(w http.ResponseWriter, r *http.Request) {
	step, idx := s.next()
	logger := s.logger.With(
		slog.Int("step", idx),
		slog.String("session_id", r.Header.Get("X-Session-ID")),
	)
	if step.Delay > 0 {
		if err := s.sleep(r.Context(), step.Delay); err != nil {
			logger.Warn("run-agent aborted during delay", slog.String("error", err.Error()))
			return
		}
	}
	if step.Fail {
		logger.Info("run-agent scripted failure", slog.Int("status", step.FailureStatus()))
		writeJSON(w, step.FailureStatus(), map[string]any{"detail": "scripted failure"})
		return
	}
	logger.Info("run-agent served",
		slog.String("type", step.Type),
		slog.Int("items", len(step.Items)),
	)
	writeJSON(w, http.StatusOK, step.Payload())
}

func (s *Server) resetChat(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.cursor = 0
	s.mu.Unlock()
	s.logger.Info("session context cleared", slog.String("session_id", r.Header.Get("X-Session-ID")))
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Context cleared."})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"steps":  len(s.script.Steps),
		"cursor": s.cursor,
		"served": s.served,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
