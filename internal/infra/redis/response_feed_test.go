package redis

import (
	"context"
	"testing"
	"time"

	"live-quiz-show/internal/domain"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestResponseFeedRangesBySubmissionTime(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	feed := NewResponseFeed(newClient(mr), time.Hour)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	for i, r := range []struct {
		viewer string
		offset time.Duration
		q      int
	}{
		{"before", -time.Second, 0},
		{"slow", 4 * time.Second, 0},
		{"fast", 2 * time.Second, 0},
		{"elsewhere", time.Second, 1},
	} {
		err := feed.AppendResponse(ctx, domain.ResponseRecord{
			ID:            string(rune('a' + i)),
			GameID:        "game-1",
			QuestionIndex: r.q,
			Viewer:        domain.Viewer{ID: r.viewer},
			Text:          "a",
			SubmittedAt:   start.Add(r.offset),
			ResponseTime:  r.offset.Seconds(),
		})
		if err != nil {
			t.Fatalf("append %s: %v", r.viewer, err)
		}
	}

	got, err := feed.ResponsesSince(ctx, "game-1", 0, start)
	if err != nil {
		t.Fatalf("responses since: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(got))
	}
	if got[0].Viewer.ID != "fast" || got[1].Viewer.ID != "slow" {
		t.Fatalf("unexpected order %s, %s", got[0].Viewer.ID, got[1].Viewer.ID)
	}
	if ttl := mr.TTL("show:responses:game-1:0"); ttl <= 0 {
		t.Fatalf("expected expiry on response set, got %v", ttl)
	}
}
