package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"live-quiz-show/internal/domain"
)

// ResponseLog is an in-memory app.ResponseFeed.
type ResponseLog struct {
	mu        sync.RWMutex
	responses map[string][]domain.ResponseRecord
}

func NewResponseLog() *ResponseLog {
	return &ResponseLog{responses: make(map[string][]domain.ResponseRecord)}
}

func (l *ResponseLog) AppendResponse(_ context.Context, r domain.ResponseRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := key(r.GameID, r.QuestionIndex)
	l.responses[k] = append(l.responses[k], r)
	return nil
}

func (l *ResponseLog) ResponsesSince(_ context.Context, gameID string, questionIndex int, since time.Time) ([]domain.ResponseRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	all := l.responses[key(gameID, questionIndex)]
	out := make([]domain.ResponseRecord, 0, len(all))
	for _, r := range all {
		if r.SubmittedAt.Before(since) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ResponseTime < out[j].ResponseTime })
	return out, nil
}

func key(gameID string, questionIndex int) string {
	return gameID + "/" + strconv.Itoa(questionIndex)
}
