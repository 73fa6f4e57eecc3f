package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// GameCache caches whole game documents in Redis and falls back to the
// backing store on a miss. Documents are stored as: SET show:games:{id} <json>
type GameCache struct {
	client  *redis.Client
	backing app.GameStore
	ttl     time.Duration
	log     *slog.Logger
	sf      singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameCache(client *redis.Client, backing app.GameStore, ttl time.Duration, log *slog.Logger) *GameCache {
	if log == nil {
		log = slog.Default()
	}
	return &GameCache{
		client:  client,
		backing: backing,
		ttl:     ttl,
		log:     log,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *GameCache) GetGame(ctx context.Context, gameID string) (domain.GameRecord, error) {
	if rec, ok := c.cached(ctx, gameID); ok {
		return rec, nil
	}

	result, err, _ := c.sf.Do(gameID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if rec, ok := c.cached(ctx, gameID); ok {
			return rec, nil
		}

		rec, err := c.backing.GetGame(ctx, gameID)
		if err != nil {
			return domain.GameRecord{}, err
		}

		raw, err := json.Marshal(rec)
		if err != nil {
			return rec, nil
		}
		if err := c.client.Set(ctx, gameKey(gameID), raw, c.ttlWithJitter()).Err(); err != nil {
			c.log.Warn("cache game", "game", gameID, "err", err)
		}
		return rec, nil
	})
	if err != nil {
		return domain.GameRecord{}, err
	}
	return result.(domain.GameRecord), nil
}

// SaveSessionState writes through to the backing store and evicts the cached document.
func (c *GameCache) SaveSessionState(ctx context.Context, gameID string, state domain.SessionState) error {
	err := c.backing.SaveSessionState(ctx, gameID, state)
	if delErr := c.client.Del(ctx, gameKey(gameID)).Err(); delErr != nil {
		c.log.Warn("evict cached game", "game", gameID, "err", delErr)
	}
	return err
}

func (c *GameCache) cached(ctx context.Context, gameID string) (domain.GameRecord, bool) {
	raw, err := c.client.Get(ctx, gameKey(gameID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("read cached game", "game", gameID, "err", err)
		}
		return domain.GameRecord{}, false
	}
	var rec domain.GameRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.GameRecord{}, false
	}
	return rec, true
}

func gameKey(gameID string) string {
	return "show:games:" + gameID
}

func (c *GameCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
