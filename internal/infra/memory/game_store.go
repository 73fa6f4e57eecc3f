package memory

import (
	"context"
	"fmt"
	"sync"

	"live-quiz-show/internal/domain"
)

// GameStore is an in-memory game document store (useful for tests/demos).
type GameStore struct {
	mu    sync.RWMutex
	games map[string]domain.GameRecord
}

func NewGameStore(games ...domain.GameRecord) *GameStore {
	s := &GameStore{games: make(map[string]domain.GameRecord, len(games))}
	for _, g := range games {
		s.games[g.ID] = g
	}
	return s
}

func (s *GameStore) GetGame(_ context.Context, gameID string) (domain.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.games[gameID]; ok {
		return rec, nil
	}
	return domain.GameRecord{}, fmt.Errorf("game %s: %w", gameID, domain.ErrGameNotFound)
}

// SaveSessionState overwrites only the session fields of the stored record.
func (s *GameStore) SaveSessionState(_ context.Context, gameID string, state domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("game %s: %w", gameID, domain.ErrGameNotFound)
	}
	rec.SessionState = state
	s.games[gameID] = rec
	return nil
}

// UpsertGame inserts or replaces a whole record.
func (s *GameStore) UpsertGame(_ context.Context, rec domain.GameRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("game id is required: %w", domain.ErrInvalidGame)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[rec.ID] = rec
	return nil
}
