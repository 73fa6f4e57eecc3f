package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func (f *fixture) post(t *testing.T, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(f.server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode, out
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, raw
}

func TestAdminCommandStatuses(t *testing.T) {
	f := newFixture(t)

	status, body := f.post(t, "/admin/game/start/missing", "")
	if status != http.StatusNotFound || body["success"] != false {
		t.Fatalf("unknown game: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/next-question/game-1", "")
	if status != http.StatusBadRequest {
		t.Fatalf("closed game: expected 400, got %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/start/game-1", "")
	if status != http.StatusOK || body["success"] != true || body["gameMode"] != "manual" {
		t.Fatalf("start: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/next-question/game-1", "")
	if status != http.StatusOK || body["activeQuestionIndex"] != float64(0) {
		t.Fatalf("next question: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/show-answer/game-1", "")
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("show answer: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/display/bogus/game-1", "")
	if status != http.StatusBadRequest || body["success"] != false {
		t.Fatalf("bad display type: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/display/disclaimer/game-1", "")
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("display: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/toggle-mode/game-1", "")
	if status != http.StatusOK || body["gameMode"] != "automatic" {
		t.Fatalf("toggle: %d %v", status, body)
	}

	// Rejected commands leave the show running and answer 200.
	status, body = f.post(t, "/admin/game/next-question/game-1", "")
	if status != http.StatusOK || body["success"] != false {
		t.Fatalf("wrong mode: %d %v", status, body)
	}

	status, body = f.post(t, "/admin/game/stop/game-1", "")
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("stop: %d %v", status, body)
	}
}

func TestAdminRawCommand(t *testing.T) {
	f := newFixture(t)

	status, body := f.post(t, "/admin/command", `{"command":"start_game","gameId":"game-1"}`)
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("start: %d %v", status, body)
	}

	status, _ = f.post(t, "/admin/command", `{"command":"launch","gameId":"game-1"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("unknown command: expected 400, got %d", status)
	}

	status, _ = f.post(t, "/admin/command", `{"command":"start_game"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("missing game: expected 400, got %d", status)
	}
}

func TestAdminStateAndSessions(t *testing.T) {
	f := newFixture(t)

	resp, raw := f.get(t, "/admin/state/game-1")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(raw, []byte(`"status":"closed"`)) {
		t.Fatalf("closed state: %d %s", resp.StatusCode, raw)
	}

	f.post(t, "/admin/game/start/game-1", "")
	resp, raw = f.get(t, "/admin/state/game-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state: %d", resp.StatusCode)
	}
	var snap map[string]any
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if snap["status"] != "open" || snap["cursor"] != float64(0) || snap["current"] == nil {
		t.Fatalf("unexpected state: %v", snap)
	}

	resp, _ = f.get(t, "/admin/state/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing state: expected 404, got %d", resp.StatusCode)
	}

	resp, raw = f.get(t, "/admin/sessions")
	var sessions []map[string]any
	if err := json.Unmarshal(raw, &sessions); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("sessions: %d %v", resp.StatusCode, err)
	}
	if len(sessions) != 1 || sessions[0]["gameId"] != "game-1" {
		t.Fatalf("unexpected sessions: %v", sessions)
	}
}

func TestSubmitResponseEndpoint(t *testing.T) {
	f := newFixture(t)

	status, _ := f.post(t, "/games/game-1/responses", `{"viewerId":"v1","text":"a"}`)
	if status != http.StatusConflict {
		t.Fatalf("closed game: expected 409, got %d", status)
	}
	status, _ = f.post(t, "/games/missing/responses", `{"viewerId":"v1","text":"a"}`)
	if status != http.StatusNotFound {
		t.Fatalf("missing game: expected 404, got %d", status)
	}

	f.post(t, "/admin/game/start/game-1", "")
	status, _ = f.post(t, "/games/game-1/responses", `{"viewerId":"v1","text":"a"}`)
	if status != http.StatusConflict {
		t.Fatalf("no open question: expected 409, got %d", status)
	}

	f.post(t, "/admin/game/next-question/game-1", "")
	status, body := f.post(t, "/games/game-1/responses", `{"viewerId":"v1","name":"Alice","text":"b"}`)
	if status != http.StatusCreated || body["id"] == nil {
		t.Fatalf("submit: %d %v", status, body)
	}
	status, _ = f.post(t, "/games/game-1/responses", `{"viewerId":"","text":"b"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("anonymous: expected 400, got %d", status)
	}
}

func TestQRAndOperationalRoutes(t *testing.T) {
	f := newFixture(t)

	resp, raw := f.get(t, "/show/game-1/qr")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("qr: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Fatalf("qr body is not a png")
	}

	resp, _ = f.get(t, "/show/missing/qr")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("qr missing: expected 404, got %d", resp.StatusCode)
	}

	resp, raw = f.get(t, "/healthz")
	if resp.StatusCode != http.StatusOK || string(raw) != "ok" {
		t.Fatalf("healthz: %d %s", resp.StatusCode, raw)
	}

	resp, raw = f.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(raw, []byte("quizshow_open_sessions")) {
		t.Fatalf("metrics: %d", resp.StatusCode)
	}
}
