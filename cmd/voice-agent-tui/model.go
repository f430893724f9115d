package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voiceagent/internal/turn"
)

const (
	resultsScrollStep = 3
	activityLimit     = 20
)

// sessionResetter clears the agent's conversation context.
type sessionResetter interface {
	ResetChat(ctx context.Context) error
}

type resetObserver interface {
	ObserveReset(err error)
}

type turnDoneMsg struct {
	payload []byte
	err     error
}

type resetDoneMsg struct {
	err error
}

type model struct {
	ctx          context.Context
	ctrl         *turn.Controller
	resetter     sessionResetter
	resetMetrics resetObserver
	logger       *slog.Logger
	agentURL     string
	resetOnStart bool

	statusLine  string
	statusError bool
	quitConfirm bool
	pulse       int
	turns       int
	activity    []string

	width  int
	height int

	transcript viewport.Model
	results    viewport.Model
	spinner    spinner.Model
	progress   progress.Model
	theme      uiTheme
}

type modelDeps struct {
	ctrl         *turn.Controller
	resetter     sessionResetter
	resetMetrics resetObserver
	logger       *slog.Logger
	agentURL     string
	resetOnStart bool
}

func newModel(ctx context.Context, deps modelDeps) model {
	theme := newTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))

	transcript := viewport.New(0, 0)
	transcript.MouseWheelEnabled = true
	transcript.MouseWheelDelta = 4
	results := viewport.New(0, 0)
	results.MouseWheelEnabled = true
	results.MouseWheelDelta = 4

	bar := progress.New(
		progress.WithSolidFill(theme.progressColor),
		progress.WithoutPercentage(),
	)

	logger := deps.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return model{
		ctx:          ctx,
		ctrl:         deps.ctrl,
		resetter:     deps.resetter,
		resetMetrics: deps.resetMetrics,
		logger:       logger,
		agentURL:     deps.agentURL,
		resetOnStart: deps.resetOnStart,
		statusLine:   "ready",
		transcript:   transcript,
		results:      results,
		spinner:      sp,
		progress:     bar,
		theme:        theme,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.resetCmd(),
	)
}

// resetCmd clears the agent's context once at startup. A failure is only
// logged; the session stays usable.
func (m model) resetCmd() tea.Cmd {
	if !m.resetOnStart || m.resetter == nil {
		return nil
	}
	ctx := m.ctx
	resetter := m.resetter
	return func() tea.Msg {
		return resetDoneMsg{err: resetter.ResetChat(ctx)}
	}
}

func (m model) talkCmd() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		payload, err := ctrl.Call(ctx)
		return turnDoneMsg{payload: payload, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case resetDoneMsg:
		if m.resetMetrics != nil {
			m.resetMetrics.ObserveReset(msg.err)
		}
		if msg.err != nil {
			m.logger.Warn("session reset failed", slog.String("error", msg.err.Error()))
		} else {
			m.logger.Info("session context cleared")
			m.appendLog("agent context cleared")
		}
	case turnDoneMsg:
		out := m.ctrl.Complete(msg.payload, msg.err)
		if out.TurnID == "" {
			break
		}
		m.turns++
		if out.Failed {
			m.statusLine = "agent unreachable"
			m.statusError = true
			m.appendLog("turn failed: " + out.Err.Error())
		} else {
			m.appendLog(fmt.Sprintf("turn %d: %d messages, panel replaced=%t", m.turns, len(out.Appended), out.PanelReplaced))
			m.statusLine = fmt.Sprintf("ready · turns=%d · last=%s", m.turns, out.Duration.Round(time.Millisecond))
			m.statusError = false
		}
		m.renderPanes()
		if out.PanelReplaced {
			m.results.GotoTop()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderPanes()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.pulse = (m.pulse + 1) % 24
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		if m.quitConfirm {
			break
		}
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.quitConfirm {
			switch msg.String() {
			case "y", "Y", "enter":
				return m, tea.Quit
			case "n", "N", "esc":
				m.quitConfirm = false
				m.statusLine = "quit canceled"
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "esc":
			if m.ctrl.Phase() == turn.PhaseAwaitingResponse {
				m.quitConfirm = true
				return m, nil
			}
			return m, tea.Quit
		case "enter", " ":
			if !m.ctrl.Begin() {
				return m, nil
			}
			m.statusLine = "listening · recording and thinking"
			m.statusError = false
			m.renderPanes()
			cmds = append(cmds, m.talkCmd())
		case "up", "k", "down", "j", "pgup", "pgdown":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			cmds = append(cmds, cmd)
		case "[":
			m.results.SetYOffset(m.results.YOffset - resultsScrollStep)
		case "]":
			m.results.SetYOffset(m.results.YOffset + resultsScrollStep)
		}
	}
	return m, tea.Batch(cmds...)
}

// renderPanes sizes both viewports and refreshes their content. The
// transcript sticks to the bottom unless the user scrolled away.
func (m *model) renderPanes() {
	prevTranscriptYOffset := m.transcript.YOffset
	prevTranscriptAtBottom := m.transcript.AtBottom()
	prevResultsYOffset := m.results.YOffset

	leftWidth, rightWidth, panelHeight := m.layout()

	m.transcript.Width = maxInt(20, leftWidth-4)
	m.transcript.Height = maxInt(5, panelHeight-3)
	m.results.Width = maxInt(20, rightWidth-4)
	m.results.Height = maxInt(5, panelHeight-3)

	m.transcript.SetContent(m.renderTranscript(m.transcript.Width))
	if prevTranscriptAtBottom {
		m.transcript.GotoBottom()
	} else {
		m.transcript.SetYOffset(prevTranscriptYOffset)
	}
	m.results.SetContent(m.renderResults(m.results.Width))
	m.results.SetYOffset(prevResultsYOffset)
}

func (m *model) layout() (leftWidth, rightWidth, panelHeight int) {
	contentWidth := maxInt(60, m.width-4)
	panelHeight = maxInt(8, m.height-10)
	leftWidth = int(float64(contentWidth) * 0.58)
	rightWidth = contentWidth - leftWidth - 1
	if rightWidth < 34 {
		rightWidth = 34
		leftWidth = contentWidth - rightWidth - 1
	}
	return leftWidth, rightWidth, panelHeight
}

// appendLog keeps a short timestamped activity feed for the footer. The
// full record goes to the slog file.
func (m *model) appendLog(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	m.activity = append(m.activity, fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), compactSingleLine(trimmed, 160)))
	if len(m.activity) > activityLimit {
		m.activity = m.activity[len(m.activity)-activityLimit:]
	}
}

func (m model) lastActivity() string {
	if len(m.activity) == 0 {
		return ""
	}
	return m.activity[len(m.activity)-1]
}
