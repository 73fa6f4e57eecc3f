package app

import (
	"context"
	"encoding/json"
	"testing"

	"live-quiz-show/internal/domain"
)

func TestHubDeliversInitialFramesFirst(t *testing.T) {
	hub := NewHub(4)
	_, ch, cancel := hub.Subscribe("game-1", []byte("hello"))
	defer cancel()

	if err := hub.Publish(context.Background(), "game-1", domain.Welcome()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got := string(<-ch); got != "hello" {
		t.Fatalf("expected initial frame first, got %s", got)
	}
	var ev domain.Event
	if err := json.Unmarshal(<-ch, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != domain.EventConnectionEstablished {
		t.Fatalf("expected connection_established, got %s", ev.Type)
	}
}

func TestHubIsolatesGames(t *testing.T) {
	hub := NewHub(4)
	_, a, cancelA := hub.Subscribe("game-a")
	defer cancelA()
	_, b, cancelB := hub.Subscribe("game-b")
	defer cancelB()

	hub.Deliver("game-a", []byte("x"))
	if got := string(<-a); got != "x" {
		t.Fatalf("expected x, got %s", got)
	}
	select {
	case frame := <-b:
		t.Fatalf("game-b received %s", frame)
	default:
	}
}

func TestHubDropsOldestWhenFull(t *testing.T) {
	hub := NewHub(2)
	_, ch, cancel := hub.Subscribe("game-1")
	defer cancel()

	for _, f := range []string{"1", "2", "3"} {
		hub.Deliver("game-1", []byte(f))
	}
	first, second := string(<-ch), string(<-ch)
	if first != "2" || second != "3" {
		t.Fatalf("expected newest frames 2,3 got %s,%s", first, second)
	}
}

func TestHubCancelClosesAndForgets(t *testing.T) {
	hub := NewHub(2)
	_, ch, cancel := hub.Subscribe("game-1")
	if hub.Subscribers("game-1") != 1 {
		t.Fatalf("expected one subscriber")
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	if hub.Subscribers("game-1") != 0 {
		t.Fatalf("expected no subscribers after cancel")
	}
	hub.Deliver("game-1", []byte("late"))
}
