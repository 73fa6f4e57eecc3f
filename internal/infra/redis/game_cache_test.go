package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/infra/memory"
	"live-quiz-show/internal/observability"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestGameCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	backing := &countingStore{GameStore: memory.NewGameStore(sampleGame())}
	cache := NewGameCache(newClient(mr), backing, time.Minute, observability.Discard())

	rec, err := cache.GetGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if backing.calls != 1 {
		t.Fatalf("expected backing store called once, got %d", backing.calls)
	}
	if !mr.Exists("show:games:game-1") {
		t.Fatalf("expected cached document")
	}

	// Second call should hit cache, backing store not incremented.
	cached, err := cache.GetGame(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("get cached game: %v", err)
	}
	if backing.calls != 1 {
		t.Fatalf("expected cache hit, backing calls=%d", backing.calls)
	}
	if cached.Title != rec.Title || len(cached.Questions) != 1 || cached.Questions[0].CorrectChoiceIndex() != 1 {
		t.Fatalf("cached document lost data: %+v", cached)
	}
	if cached.ActiveQuestionIndex != -1 {
		t.Fatalf("expected session fields to round-trip, got %d", cached.ActiveQuestionIndex)
	}
}

func TestGameCacheEvictsOnSave(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewGameCache(newClient(mr), memory.NewGameStore(sampleGame()), time.Minute, observability.Discard())
	ctx := context.Background()
	if _, err := cache.GetGame(ctx, "game-1"); err != nil {
		t.Fatalf("get game: %v", err)
	}

	state := sampleGame().SessionState
	state.IsGameOpen = true
	if err := cache.SaveSessionState(ctx, "game-1", state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mr.Exists("show:games:game-1") {
		t.Fatalf("expected cached document evicted")
	}
	rec, err := cache.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !rec.IsGameOpen {
		t.Fatalf("expected saved state after reload")
	}
}

func TestGameCacheMissPropagatesNotFound(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewGameCache(newClient(mr), memory.NewGameStore(), time.Minute, observability.Discard())
	if _, err := cache.GetGame(context.Background(), "nope"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected not found, got %v", err)
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

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
