package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreMarksOwner(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute, "node-a")

	session := store.GetOrCreate("game-1")
	store.MarkLive("game-1", true)
	if !mr.Exists("show:session:game-1") {
		t.Fatalf("expected redis key to be set")
	}
	if owner, ok := store.Owner(context.Background(), "game-1"); !ok || owner != "node-a" {
		t.Fatalf("expected owner node-a, got %q", owner)
	}
	if got, ok := store.Get("game-1"); !ok || got != session {
		t.Fatalf("expected local session")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := store.Owner(context.Background(), "game-1"); ok {
		t.Fatalf("expected marker to expire")
	}
	if len(store.List()) != 1 {
		t.Fatalf("expected session to stay local after marker expiry")
	}
}

func TestSessionStoreMarkerOutlivesTTLWhileTransitioning(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute, "node-a")
	store.GetOrCreate("game-1")

	// A show running far longer than the ttl keeps its marker as long as it
	// keeps moving.
	for i := 0; i < 5; i++ {
		store.MarkLive("game-1", true)
		mr.FastForward(45 * time.Second)
	}
	if owner, ok := store.Owner(context.Background(), "game-1"); !ok || owner != "node-a" {
		t.Fatalf("expected live marker after %d transitions, got %q %v", 5, owner, ok)
	}

	store.MarkLive("game-1", false)
	if mr.Exists("show:session:game-1") {
		t.Fatalf("expected marker removed once the game closed")
	}
}
