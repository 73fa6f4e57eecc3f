package memory

import (
	"context"
	"errors"
	"testing"

	"live-quiz-show/internal/domain"
)

func TestGameStoreSavesOnlySessionFields(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()
	if err := store.UpsertGame(ctx, sampleGame()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	state := domain.SessionState{IsGameOpen: true, ActiveQuestionIndex: 0, Mode: domain.ModeManual}
	if err := store.SaveSessionState(ctx, "game-1", state); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !rec.IsGameOpen || rec.Mode != domain.ModeManual || len(rec.Questions) != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}

	if err := store.SaveSessionState(ctx, "missing", state); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.UpsertGame(ctx, domain.GameRecord{}); !errors.Is(err, domain.ErrInvalidGame) {
		t.Fatalf("expected invalid game, got %v", err)
	}
}
