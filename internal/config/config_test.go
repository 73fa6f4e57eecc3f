package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadShowSettings(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: "9090"
  viewer_url: https://show.example.com/live
redis:
  addr: localhost:6379
  ttl: 30m
show:
  timing:
    question: 20s
    answer: 5s
  aggregation:
    enabled: false
    interval: 2s
    page_size: 4
  write_queue: 64
log:
  level: debug
  format: text
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.ViewerURL != "https://show.example.com/live" {
		t.Fatalf("unexpected server section %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || cfg.Show.WriteQueue != 64 {
		t.Fatalf("unexpected log/show section")
	}

	timing := cfg.Show.Durations()
	if timing.Question != 20*time.Second || timing.Answer != 5*time.Second {
		t.Fatalf("expected configured durations, got %+v", timing)
	}
	if timing.IntroImage != 2*time.Second || timing.Credits != 20*time.Second {
		t.Fatalf("expected defaults for unset durations, got %+v", timing)
	}

	agg := cfg.Show.AggregationConfig()
	if agg.Enabled {
		t.Fatalf("expected aggregation disabled")
	}
	if !agg.Paginate {
		t.Fatalf("expected paginate default on")
	}
	if agg.Interval != 2*time.Second || agg.PageSize != 4 {
		t.Fatalf("unexpected aggregation %+v", agg)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on bad input, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestLoadContent(t *testing.T) {
	lib, err := LoadContent("")
	if err != nil || len(lib.Images) == 0 {
		t.Fatalf("expected built-in library, got %v", err)
	}

	path := writeFile(t, "content.yaml", `
images:
  - url: https://cdn.example.com/intro.png
    name: Intro
disclaimer:
  title: Heads up
  text: Answers close when the timer ends.
upcoming:
  - programName: Sunday Trivia
    startDateTime: 2030-01-01T18:00:00Z
`)
	lib, err = LoadContent(path)
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	if len(lib.Images) != 1 || lib.Images[0].Name != "Intro" {
		t.Fatalf("unexpected images %+v", lib.Images)
	}
	if lib.Disclaimer.Title != "Heads up" {
		t.Fatalf("unexpected disclaimer %+v", lib.Disclaimer)
	}
	if len(lib.Upcoming) != 1 || lib.Upcoming[0].StartDateTime.Year() != 2030 {
		t.Fatalf("unexpected schedule %+v", lib.Upcoming)
	}

	if _, err := LoadContent(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadGamesKeepsClosedDefaults(t *testing.T) {
	path := writeFile(t, "games.yaml", `
games:
  - id: friday
    gameTitle: Friday Night Quiz
    gameMode: manual
    questions:
      - questionText: What is 2 + 2?
        choices:
          - {choiceIndex: 0, choiceText: "3"}
          - {choiceIndex: 1, choiceText: "4", isCorrectChoice: true}
`)
	games, err := LoadGames(path)
	if err != nil {
		t.Fatalf("load games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game, got %d", len(games))
	}
	g := games[0]
	if g.ID != "friday" || g.Mode != "manual" || len(g.Questions) != 1 {
		t.Fatalf("unexpected game %+v", g)
	}
	if g.ActiveQuestionIndex != -1 || g.CorrectChoiceIndex != -1 || g.IsGameOpen {
		t.Fatalf("expected closed defaults, got %+v", g.SessionState)
	}
	if g.Questions[0].CorrectChoiceIndex() != 1 {
		t.Fatalf("unexpected correct choice %d", g.Questions[0].CorrectChoiceIndex())
	}

	if _, err := LoadGames(writeFile(t, "bad.yaml", "games:\n  - gameTitle: nameless\n")); err == nil {
		t.Fatalf("expected error for game without id")
	}
}
