package replay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, script Script) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(script, testLogger())
	srv.sleep = func(context.Context, time.Duration) error { return nil }
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, client *http.Client, url string) (int, map[string]any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func TestRunAgentCyclesScript(t *testing.T) {
	script := Script{Steps: []Step{
		{UserText: "one", BotText: "first"},
		{UserText: "two"},
	}}
	_, ts := newTestServer(t, script)

	want := []string{"one", "two", "one"}
	for i, text := range want {
		status, body := getJSON(t, ts.Client(), ts.URL+"/run-agent")
		if status != http.StatusOK {
			t.Fatalf("call %d: unexpected status %d", i, status)
		}
		if body["user_text"] != text {
			t.Fatalf("call %d: expected user_text %q, got %v", i, text, body["user_text"])
		}
	}
}

func TestRunAgentPayloadShape(t *testing.T) {
	script := Script{Steps: []Step{
		{BotText: "Here are your orders.", Type: "orders", Items: []map[string]any{{"order_id": "A1"}}},
		{},
	}}
	_, ts := newTestServer(t, script)

	_, body := getJSON(t, ts.Client(), ts.URL+"/run-agent")
	if _, ok := body["user_text"]; ok {
		t.Fatalf("expected user_text omitted when empty")
	}
	if body["type"] != "orders" {
		t.Fatalf("unexpected type %v", body["type"])
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items %v", body["items"])
	}

	_, body = getJSON(t, ts.Client(), ts.URL+"/run-agent")
	if body["type"] != nil {
		t.Fatalf("expected null type for a silent step, got %v", body["type"])
	}
	if items, _ := body["items"].([]any); len(items) != 0 {
		t.Fatalf("expected empty items, got %v", body["items"])
	}
}

func TestRunAgentScriptedFailure(t *testing.T) {
	script := Script{Steps: []Step{{Fail: true}, {Fail: true, Status: 503}}}
	_, ts := newTestServer(t, script)

	status, _ := getJSON(t, ts.Client(), ts.URL+"/run-agent")
	if status != http.StatusInternalServerError {
		t.Fatalf("expected default 500, got %d", status)
	}
	status, _ = getJSON(t, ts.Client(), ts.URL+"/run-agent")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}

func TestResetChatRewindsScript(t *testing.T) {
	script := Script{Steps: []Step{{UserText: "one"}, {UserText: "two"}}}
	srv, ts := newTestServer(t, script)

	getJSON(t, ts.Client(), ts.URL+"/run-agent")
	status, body := getJSON(t, ts.Client(), ts.URL+"/reset-chat")
	if status != http.StatusOK || body["status"] != "success" {
		t.Fatalf("unexpected reset answer %d %v", status, body)
	}
	_, body = getJSON(t, ts.Client(), ts.URL+"/run-agent")
	if body["user_text"] != "one" {
		t.Fatalf("expected script rewound, got %v", body["user_text"])
	}

	_, health := getJSON(t, ts.Client(), ts.URL+"/healthz")
	if health["served"] != float64(2) || health["cursor"] != float64(1) {
		t.Fatalf("unexpected health %v", health)
	}
	srv.mu.Lock()
	served := srv.served
	srv.mu.Unlock()
	if served != 2 {
		t.Fatalf("expected 2 served, got %d", served)
	}
}

func TestRunAgentRejectsOtherMethods(t *testing.T) {
	_, ts := newTestServer(t, Script{Steps: []Step{{}}})
	resp, err := ts.Client().Post(ts.URL+"/run-agent", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	_, ts := newTestServer(t, Script{Steps: []Step{{}}})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/reset-chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}

func TestParseScriptValidation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectError bool
	}{
		{name: "valid", yaml: "steps:\n  - user_text: hi\n    delay: 250ms\n"},
		{name: "no steps", yaml: "steps: []\n", expectError: true},
		{name: "bad status", yaml: "steps:\n  - fail: true\n    status: 200\n", expectError: true},
		{name: "negative delay", yaml: "steps:\n  - delay: -1s\n", expectError: true},
		{name: "not yaml", yaml: "steps: [", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			if tt.expectError && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestDefaultScriptParses(t *testing.T) {
	script := DefaultScript()
	if len(script.Steps) == 0 {
		t.Fatalf("expected built-in steps")
	}
	if script.Steps[0].Type != "orders" || script.Steps[0].Delay != 1500*time.Millisecond {
		t.Fatalf("unexpected first step %+v", script.Steps[0])
	}
}
