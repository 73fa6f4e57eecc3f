package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/infra/memory"
	"live-quiz-show/internal/observability"
)

type fixture struct {
	svc    *app.ShowService
	feed   *memory.ResponseLog
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	feed := memory.NewResponseLog()
	svc := app.NewShowService(memory.NewGameStore(sampleGame()), feed, memory.NewSessionStore(), app.NewHub(32),
		app.WithScheduler(app.NewVirtualScheduler(time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC))),
		app.WithContentPool(app.NewStaticContentPool(app.DefaultContentLibrary(), 1)),
		app.WithAggregation(app.AggregationConfig{}),
		app.WithLogger(observability.Discard()),
	)
	server := httptest.NewServer(NewRouter(svc, observability.Discard(), ""))
	t.Cleanup(func() {
		server.Close()
		svc.Close()
	})
	return &fixture{svc: svc, feed: feed, server: server}
}

func (f *fixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + f.server.URL[len("http"):] + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketViewerFlow(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.StartGame(context.Background(), "game-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	conn := f.dial(t, "gameId=game-1&viewerId=v1&name=Alice")

	readNext(conn, t, domain.EventConnectionEstablished)
	_, payload := readNext(conn, t, domain.EventDisplayUpdate)
	if primary, _ := payload["primary"].(map[string]any); primary["type"] != string(domain.KindImage) {
		t.Fatalf("expected intro image on join, got %v", payload["primary"])
	}

	// Drive the show from the same socket.
	if err := conn.WriteJSON(map[string]any{
		"type":    "command",
		"payload": map[string]any{"command": app.CmdAdvanceQuestion},
	}); err != nil {
		t.Fatalf("write command: %v", err)
	}
	seen := map[string]map[string]any{}
	for i := 0; i < 2; i++ {
		typ, p := readNext(conn, t, "")
		seen[typ] = p
	}
	result, ok := seen["command_result"]
	if !ok || result["success"] != true {
		t.Fatalf("expected successful command_result, got %v", seen)
	}
	update, ok := seen[domain.EventDisplayUpdate]
	if !ok {
		t.Fatalf("expected display_update, got %v", seen)
	}
	if primary, _ := update["primary"].(map[string]any); primary["type"] != string(domain.KindQuestion) {
		t.Fatalf("expected question item, got %v", update["primary"])
	}

	if err := conn.WriteJSON(map[string]any{"type": "answer", "payload": map[string]any{"text": "b"}}); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	_, accepted := readNext(conn, t, "answer_accepted")
	if accepted["questionIndex"] != float64(0) {
		t.Fatalf("expected answer for question 0, got %v", accepted)
	}

	got, err := f.feed.ResponsesSince(context.Background(), "game-1", 0, time.Time{})
	if err != nil {
		t.Fatalf("responses: %v", err)
	}
	if len(got) != 1 || got[0].Viewer.Name != "Alice" || got[0].Text != "b" {
		t.Fatalf("unexpected stored responses: %+v", got)
	}
}

func TestWebSocketRejectsAnswersWithoutOpenQuestion(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "gameId=game-1&viewerId=v1&name=Alice")
	readNext(conn, t, domain.EventConnectionEstablished)

	if err := conn.WriteJSON(map[string]any{"type": "answer", "payload": map[string]any{"text": "a"}}); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	_, payload := readNext(conn, t, "error")
	if payload["message"] == "" {
		t.Fatalf("expected error message")
	}

	if err := conn.WriteJSON(map[string]any{"type": "dance"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	readNext(conn, t, "error")
}

func TestWebSocketUnknownGame(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, "gameId=nope")
	readNext(conn, t, "error")
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

func sampleGame() domain.GameRecord {
	rec := domain.NewGameRecord("game-1", "Friday Night Quiz", []domain.Question{
		{
			Text: "What is 2 + 2?",
			Choices: []domain.Choice{
				{Index: 0, Text: "3"},
				{Index: 1, Text: "4", Correct: true},
				{Index: 2, Text: "5"},
			},
		},
		{
			Text: "Capital of France?",
			Choices: []domain.Choice{
				{Index: 0, Text: "Paris", Correct: true},
				{Index: 1, Text: "Lyon"},
			},
		},
	})
	rec.Mode = domain.ModeManual
	return rec
}
