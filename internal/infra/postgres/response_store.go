package postgres

import (
	"context"
	"fmt"
	"time"

	"live-quiz-show/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ResponseStore is a Postgres app.ResponseFeed with one row per response.
type ResponseStore struct {
	pool *pgxpool.Pool
}

func NewResponseStore(pool *pgxpool.Pool) *ResponseStore {
	return &ResponseStore{pool: pool}
}

func (s *ResponseStore) AppendResponse(ctx context.Context, r domain.ResponseRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO responses
			(id, game_id, question_index, viewer_id, viewer_name, viewer_picture, text, submitted_at, response_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.GameID, r.QuestionIndex, r.Viewer.ID, r.Viewer.Name, r.Viewer.AvatarURL,
		r.Text, r.SubmittedAt, r.ResponseTime)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *ResponseStore) ResponsesSince(ctx context.Context, gameID string, questionIndex int, since time.Time) ([]domain.ResponseRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, viewer_id, viewer_name, viewer_picture, text, submitted_at, response_time
		FROM responses
		WHERE game_id=$1 AND question_index=$2 AND submitted_at >= $3
		ORDER BY response_time, submitted_at`,
		gameID, questionIndex, since)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []domain.ResponseRecord
	for rows.Next() {
		r := domain.ResponseRecord{GameID: gameID, QuestionIndex: questionIndex}
		if err := rows.Scan(&r.ID, &r.Viewer.ID, &r.Viewer.Name, &r.Viewer.AvatarURL,
			&r.Text, &r.SubmittedAt, &r.ResponseTime); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	return out, nil
}
