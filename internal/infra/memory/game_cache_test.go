package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
)

func TestGameCacheCaches(t *testing.T) {
	backing := &countingStore{GameStore: NewGameStore(sampleGame())}
	cache := NewGameCache(backing, time.Minute)

	if _, err := cache.GetGame(context.Background(), "game-1"); err != nil {
		t.Fatalf("get game: %v", err)
	}
	if backing.calls != 1 {
		t.Fatalf("expected backing store once, got %d", backing.calls)
	}

	if _, err := cache.GetGame(context.Background(), "game-1"); err != nil {
		t.Fatalf("get game 2: %v", err)
	}
	if backing.calls != 1 {
		t.Fatalf("expected cache hit, backing calls %d", backing.calls)
	}
}

func TestGameCacheEvictsOnSave(t *testing.T) {
	backing := &countingStore{GameStore: NewGameStore(sampleGame())}
	cache := NewGameCache(backing, time.Minute)
	ctx := context.Background()

	if _, err := cache.GetGame(ctx, "game-1"); err != nil {
		t.Fatalf("get game: %v", err)
	}
	state := sampleGame().SessionState
	state.IsGameOpen = true
	if err := cache.SaveSessionState(ctx, "game-1", state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	rec, err := cache.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game after save: %v", err)
	}
	if !rec.IsGameOpen {
		t.Fatalf("expected fresh record after save, got %+v", rec.SessionState)
	}
	if backing.calls != 2 {
		t.Fatalf("expected reload after eviction, backing calls %d", backing.calls)
	}
}

func TestGameCacheDoesNotCacheMisses(t *testing.T) {
	backing := &countingStore{GameStore: NewGameStore()}
	cache := NewGameCache(backing, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cache.GetGame(context.Background(), "missing")
		if !errors.Is(err, domain.ErrGameNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if backing.calls != 2 {
		t.Fatalf("expected misses to reach the store, got %d", backing.calls)
	}
}

type countingStore struct {
	app.GameStore
	calls int
}

func (s *countingStore) GetGame(ctx context.Context, gameID string) (domain.GameRecord, error) {
	s.calls++
	return s.GameStore.GetGame(ctx, gameID)
}

func sampleGame() domain.GameRecord {
	return domain.NewGameRecord("game-1", "Friday Night Quiz", []domain.Question{
		{
			Text: "What is 2 + 2?",
			Choices: []domain.Choice{
				{Index: 0, Text: "3"},
				{Index: 1, Text: "4", Correct: true},
			},
		},
	})
}
