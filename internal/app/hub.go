package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/observability"

	"github.com/google/uuid"
)

// Broadcaster fans an event out to every subscriber of a game.
type Broadcaster interface {
	Publish(ctx context.Context, gameID string, ev domain.Event) error
}

// Hub is the in-process broadcast channel. Events are encoded once and
// delivered as JSON frames to per-subscriber buffered channels.
type Hub struct {
	mu     sync.RWMutex
	buffer int
	games  map[string]map[*subscription]struct{}
}

type subscription struct {
	id string
	ch chan []byte
}

// NewHub creates a hub whose subscribers buffer up to buffer frames.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		buffer: buffer,
		games:  make(map[string]map[*subscription]struct{}),
	}
}

// Publish encodes ev and delivers it locally.
func (h *Hub) Publish(_ context.Context, gameID string, ev domain.Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}
	h.Deliver(gameID, frame)
	return nil
}

// Deliver fans an already encoded frame out to the game's subscribers.
func (h *Hub) Deliver(gameID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.games[gameID] {
		push(sub.ch, frame)
	}
}

// Subscribe registers a subscriber for gameID. The initial frames are queued
// before any later broadcast can reach the channel. The caller must invoke the
// returned cancel function to avoid leaks.
func (h *Hub) Subscribe(gameID string, initial ...[]byte) (string, <-chan []byte, func()) {
	sub := &subscription{
		id: uuid.NewString(),
		ch: make(chan []byte, h.buffer+len(initial)),
	}

	h.mu.Lock()
	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*subscription]struct{})
	}
	h.games[gameID][sub] = struct{}{}
	for _, frame := range initial {
		sub.ch <- frame
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.games[gameID]
		if !ok {
			return
		}
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.ch)
		}
		if len(subs) == 0 {
			delete(h.games, gameID)
		}
	}
	return sub.id, sub.ch, cancel
}

// Subscribers returns the number of live subscribers for gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// push never blocks: a full buffer drops its oldest frame so slow viewers
// converge on the newest state.
func push(ch chan []byte, frame []byte) {
	select {
	case ch <- frame:
		return
	default:
	}
	select {
	case <-ch:
		observability.BackpressureDrops.Inc()
	default:
	}
	select {
	case ch <- frame:
	default:
		observability.BackpressureDrops.Inc()
	}
}
