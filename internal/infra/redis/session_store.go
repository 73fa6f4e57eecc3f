package redis

import (
	"context"
	"sort"
	"sync"
	"time"

	"live-quiz-show/internal/app"

	"github.com/redis/go-redis/v9"
)

const markTimeout = 500 * time.Millisecond

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions and their timers live in this process; Redis only marks which
//     instance is driving a game so operators can find it. The marker is
//     refreshed on every transition and expires ttl after the last one.
//   - Broadcasts reach other instances through the Notifier, not through this store.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	owner    string
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

// NewSessionStore marks open sessions with owner (e.g. host name) for ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration, owner string) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		owner:    owner,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(gameID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[gameID]; ok {
		return session
	}
	session := app.NewSession(gameID)
	s.sessions[gameID] = session
	return session
}

func (s *SessionStore) Get(gameID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[gameID]
	return session, ok
}

func (s *SessionStore) List() []*app.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// MarkLive refreshes the owner marker of an open game and removes it once the
// game closes. Failures are ignored; the marker is advisory.
func (s *SessionStore) MarkLive(gameID string, live bool) {
	ctx, cancel := context.WithTimeout(context.Background(), markTimeout)
	defer cancel()
	if live {
		_ = s.client.Set(ctx, s.key(gameID), s.owner, s.ttl).Err()
		return
	}
	_ = s.client.Del(ctx, s.key(gameID)).Err()
}

// Owner returns the instance driving gameID, if its marker is alive.
func (s *SessionStore) Owner(ctx context.Context, gameID string) (string, bool) {
	owner, err := s.client.Get(ctx, s.key(gameID)).Result()
	if err != nil {
		return "", false
	}
	return owner, true
}

func (s *SessionStore) key(gameID string) string {
	return "show:session:" + gameID
}
