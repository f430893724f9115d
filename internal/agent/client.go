package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	RunAgentPath  = "/run-agent"
	ResetChatPath = "/reset-chat"

	SessionHeader = "X-Session-ID"

	maxBodyBytes   = 4 << 20
	errExcerptSize = 240
)

// ErrInvalidPayload is returned when a successful response body is not JSON.
var ErrInvalidPayload = errors.New("agent returned non-json payload")

// StatusError reports a non-2xx answer from the agent.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("agent http %d", e.Code)
	}
	return fmt.Sprintf("agent http %d: %s", e.Code, e.Body)
}

type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero means no client-side limit.
	Timeout   time.Duration
	SessionID string
}

// Client talks to the remote voice agent. Capture and transcription happen
// on the agent side, so requests carry no body.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("agent base url cannot be empty")
	}
	sessionID := strings.TrimSpace(cfg.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Client{
		baseURL:    base,
		sessionID:  sessionID,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// RunAgent asks the agent to capture and answer one utterance.
func (c *Client) RunAgent(ctx context.Context) ([]byte, error) {
	body, err := c.get(ctx, RunAgentPath)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidPayload
	}
	return body, nil
}

// ResetChat clears the agent's conversation context. The response body is
// not interpreted.
func (c *Client) ResetChat(ctx context.Context) error {
	_, err := c.get(ctx, ResetChatPath)
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SessionHeader, c.sessionID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent request failed on %s: %w", path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read agent response on %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: compactSingleLine(string(payload), errExcerptSize)}
	}
	return payload, nil
}

func compactSingleLine(text string, limit int) string {
	compact := strings.Join(strings.Fields(text), " ")
	if len(compact) <= limit {
		return compact
	}
	if limit <= 3 {
		return compact[:limit]
	}
	return compact[:limit-3] + "..."
}
