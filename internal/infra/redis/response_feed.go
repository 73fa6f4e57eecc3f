package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"live-quiz-show/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ResponseFeed keeps viewer answers in one sorted set per question, scored by
// submission time in milliseconds:
// ZADD show:responses:{gameID}:{questionIndex} <unix ms> <json>
type ResponseFeed struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResponseFeed(client *redis.Client, ttl time.Duration) *ResponseFeed {
	return &ResponseFeed{client: client, ttl: ttl}
}

func (f *ResponseFeed) AppendResponse(ctx context.Context, r domain.ResponseRecord) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	key := responsesKey(r.GameID, r.QuestionIndex)
	pipe := f.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(r.SubmittedAt.UnixMilli()), Member: raw})
	if f.ttl > 0 {
		pipe.Expire(ctx, key, f.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store response: %w", err)
	}
	return nil
}

func (f *ResponseFeed) ResponsesSince(ctx context.Context, gameID string, questionIndex int, since time.Time) ([]domain.ResponseRecord, error) {
	members, err := f.client.ZRangeByScore(ctx, responsesKey(gameID, questionIndex), &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}

	out := make([]domain.ResponseRecord, 0, len(members))
	for _, m := range members {
		var r domain.ResponseRecord
		if err := json.Unmarshal([]byte(m), &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ResponseTime < out[j].ResponseTime })
	return out, nil
}

func responsesKey(gameID string, questionIndex int) string {
	return "show:responses:" + gameID + ":" + strconv.Itoa(questionIndex)
}
