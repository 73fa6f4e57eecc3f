package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"

	"golang.org/x/sync/singleflight"
)

// GameCache caches game records with TTL to avoid repeated store hits.
// Session-state writes go through to the backing store and evict the entry.
type GameCache struct {
	backing app.GameStore
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedGame
}

type cachedGame struct {
	rec       domain.GameRecord
	expiresAt time.Time
}

func NewGameCache(backing app.GameStore, ttl time.Duration) *GameCache {
	return &GameCache{
		backing: backing,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:   make(map[string]cachedGame),
	}
}

func (c *GameCache) GetGame(ctx context.Context, gameID string) (domain.GameRecord, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[gameID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.rec, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(gameID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[gameID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.rec, nil
		}
		c.mu.RUnlock()

		rec, err := c.backing.GetGame(ctx, gameID)
		if err != nil {
			return domain.GameRecord{}, err
		}

		c.mu.Lock()
		c.cache[gameID] = cachedGame{
			rec:       rec,
			expiresAt: now.Add(c.ttlWithJitterLocked()),
		}
		c.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return domain.GameRecord{}, err
	}
	return result.(domain.GameRecord), nil
}

func (c *GameCache) SaveSessionState(ctx context.Context, gameID string, state domain.SessionState) error {
	err := c.backing.SaveSessionState(ctx, gameID, state)
	c.Invalidate(gameID)
	return err
}

// Invalidate drops the cached copy of gameID.
func (c *GameCache) Invalidate(gameID string) {
	c.mu.Lock()
	delete(c.cache, gameID)
	c.mu.Unlock()
}

func (c *GameCache) ttlWithJitterLocked() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
