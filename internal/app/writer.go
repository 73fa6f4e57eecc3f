package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/observability"
)

// stateWriter persists session fields off the broadcast path. Writes are applied
// in submission order by a single goroutine; failures are logged and dropped.
type stateWriter struct {
	store   GameStore
	log     *slog.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan stateWrite
	done   chan struct{}
}

type stateWrite struct {
	gameID string
	state  domain.SessionState
}

func newStateWriter(store GameStore, log *slog.Logger, size int) *stateWriter {
	if size <= 0 {
		size = 256
	}
	w := &stateWriter{
		store:   store,
		log:     log,
		timeout: 5 * time.Second,
		queue:   make(chan stateWrite, size),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *stateWriter) enqueue(gameID string, state domain.SessionState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- stateWrite{gameID: gameID, state: state}:
	default:
		observability.PersistenceFailures.WithLabelValues("queue_full").Inc()
		w.log.Warn("session state write dropped", "game", gameID, "reason", "queue full")
	}
}

func (w *stateWriter) run() {
	defer close(w.done)
	for job := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.store.SaveSessionState(ctx, job.gameID, job.state)
		cancel()
		if err != nil {
			observability.PersistenceFailures.WithLabelValues("store").Inc()
			w.log.Warn("persist session state", "game", job.gameID, "err", err)
		}
	}
}

// close stops accepting writes and waits for queued ones to finish.
func (w *stateWriter) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	<-w.done
}
