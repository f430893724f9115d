package turn

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"voiceagent/internal/metrics"
	"voiceagent/internal/results"
)

// Agent captures and processes one user utterance remotely and returns the
// raw response body.
type Agent interface {
	RunAgent(ctx context.Context) ([]byte, error)
}

type Observer interface {
	ObserveTurn(outcome string, d time.Duration)
	ObserveRejected()
	ObservePanel(kind string)
}

type noopObserver struct{}

func (noopObserver) ObserveTurn(string, time.Duration) {}
func (noopObserver) ObserveRejected()                  {}
func (noopObserver) ObservePanel(string)               {}

// Outcome describes what a completed turn changed.
type Outcome struct {
	TurnID        string
	Appended      []Utterance
	PanelReplaced bool
	Failed        bool
	Err           error
	Duration      time.Duration
}

// Controller drives the turn lifecycle. At most one turn is in flight; a
// second Begin while awaiting is rejected, not queued.
type Controller struct {
	mu       sync.Mutex
	session  *Session
	agent    Agent
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observer = observer
		}
	}
}

func WithSession(session *Session) Option {
	return func(c *Controller) {
		if session != nil {
			c.session = session
		}
	}
}

func NewController(agent Agent, opts ...Option) *Controller {
	c := &Controller{
		session:  NewSession(),
		agent:    agent,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: noopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin moves Idle -> AwaitingResponse. It returns false, changing nothing,
// when a turn is already in flight.
func (c *Controller) Begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.phase == PhaseAwaitingResponse {
		c.observer.ObserveRejected()
		c.logger.Debug("turn rejected: already awaiting response", slog.String("turn_id", c.session.turnID))
		return false
	}
	c.session.phase = PhaseAwaitingResponse
	c.session.turnID = uuid.NewString()
	c.session.startedAt = c.now()
	c.logger.Info("turn started", slog.String("turn_id", c.session.turnID))
	return true
}

// Complete applies the agent's answer (or failure) to the session and
// returns the phase to Idle.
func (c *Controller) Complete(payload []byte, err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.phase != PhaseAwaitingResponse {
		c.logger.Warn("turn completion without a turn in flight ignored")
		return Outcome{}
	}

	out := Outcome{
		TurnID:   c.session.turnID,
		Duration: c.now().Sub(c.session.startedAt),
	}
	defer func() {
		c.session.phase = PhaseIdle
		c.session.turnID = ""
	}()

	if err != nil {
		out.Failed = true
		out.Err = err
		out.Appended = append(out.Appended, c.session.append(SpeakerAgent, ConnectionFailedText))
		c.observer.ObserveTurn(metrics.OutcomeFailure, out.Duration)
		c.logger.Error("turn failed",
			slog.String("turn_id", out.TurnID),
			slog.String("outcome", metrics.OutcomeFailure),
			slog.Duration("duration", out.Duration),
			slog.String("error", err.Error()),
		)
		return out
	}

	res := results.Interpret(payload)
	userText := res.UserText
	if userText == "" {
		userText = SilenceText
	}
	out.Appended = append(out.Appended, c.session.append(SpeakerUser, userText))
	if res.AgentText != "" {
		out.Appended = append(out.Appended, c.session.append(SpeakerAgent, res.AgentText))
	}
	if res.Panel != nil {
		c.session.panel = *res.Panel
		out.PanelReplaced = true
		c.observer.ObservePanel(string(res.Panel.Kind))
	}

	c.observer.ObserveTurn(metrics.OutcomeSuccess, out.Duration)
	c.logger.Info("turn completed",
		slog.String("turn_id", out.TurnID),
		slog.String("outcome", metrics.OutcomeSuccess),
		slog.Duration("duration", out.Duration),
		slog.Bool("silence", res.UserText == ""),
		slog.Bool("panel_replaced", out.PanelReplaced),
	)
	return out
}

// StartTurn runs one full turn synchronously. ok is false when the turn was
// rejected because another one is in flight.
func (c *Controller) StartTurn(ctx context.Context) (out Outcome, ok bool) {
	if !c.Begin() {
		return Outcome{}, false
	}
	payload, err := c.agent.RunAgent(ctx)
	return c.Complete(payload, err), true
}

// Call performs the external request of a turn already begun. Shells that
// run the request off their event loop pair it with Complete.
func (c *Controller) Call(ctx context.Context) ([]byte, error) {
	return c.agent.RunAgent(ctx)
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.phase
}

func (c *Controller) Transcript() []Utterance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.snapshot()
}

func (c *Controller) Panel() results.PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.panel.Clone()
}
