package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"live-quiz-show/internal/domain"

	"github.com/redis/go-redis/v9"
)

const eventsPrefix = "show:events:"

// Notifier publishes show events to Redis channels so every instance can
// fan them out to its own viewers.
type Notifier struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewNotifier(rdb *redis.Client, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{rdb: rdb, log: log}
}

// Publish implements app.Broadcaster.
func (n *Notifier) Publish(ctx context.Context, gameID string, ev domain.Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Type, err)
	}
	return n.rdb.Publish(ctx, EventsChannel(gameID), frame).Err()
}

// Run subscribes to every game's channel and hands each frame to deliver
// until ctx is done. ready, when non-nil, is closed once the subscription is live.
func (n *Notifier) Run(ctx context.Context, deliver func(gameID string, frame []byte), ready chan<- struct{}) error {
	sub := n.rdb.PSubscribe(ctx, eventsPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to show events: %w", err)
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			n.dispatch(msg, deliver)
		}
	}
}

func (n *Notifier) dispatch(msg *redis.Message, deliver func(string, []byte)) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("panic delivering show event", "channel", msg.Channel, "panic", r)
		}
	}()
	gameID := strings.TrimPrefix(msg.Channel, eventsPrefix)
	deliver(gameID, []byte(msg.Payload))
}

// EventsChannel names the pub/sub channel of a game.
func EventsChannel(gameID string) string {
	return eventsPrefix + gameID
}
