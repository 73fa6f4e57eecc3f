package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"live-quiz-show/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// GameStore keeps each game as one JSONB document.
type GameStore struct {
	pool *pgxpool.Pool
}

func NewGameStore(pool *pgxpool.Pool) *GameStore {
	return &GameStore{pool: pool}
}

func (s *GameStore) GetGame(ctx context.Context, gameID string) (domain.GameRecord, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM games WHERE id=$1`, gameID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GameRecord{}, fmt.Errorf("game %s: %w", gameID, domain.ErrGameNotFound)
	}
	if err != nil {
		return domain.GameRecord{}, fmt.Errorf("load game: %w", err)
	}
	var rec domain.GameRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.GameRecord{}, fmt.Errorf("unmarshal game: %w", err)
	}
	rec.ID = gameID
	return rec, nil
}

// SaveSessionState merges the session fields into the stored document,
// leaving questions and scheduling untouched.
func (s *GameStore) SaveSessionState(ctx context.Context, gameID string, state domain.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE games SET data = data || $2::jsonb, updated_at = now() WHERE id=$1`,
		gameID, string(raw))
	if err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", gameID, domain.ErrGameNotFound)
	}
	return nil
}

// UpsertGame stores a whole game document, replacing any previous version.
func (s *GameStore) UpsertGame(ctx context.Context, rec domain.GameRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("game id is required: %w", domain.ErrInvalidGame)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO games (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		rec.ID, string(raw))
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}
