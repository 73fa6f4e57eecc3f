package config

import (
	"fmt"
	"os"
	"time"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		ViewerURL string `yaml:"viewer_url"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Game struct {
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"game"`
	Show Show `yaml:"show"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Show configures the sequence driver.
type Show struct {
	Timing struct {
		IntroImage string `yaml:"intro_image"`
		Disclaimer string `yaml:"disclaimer"`
		IntroVideo string `yaml:"intro_video"`
		Question   string `yaml:"question"`
		Answer     string `yaml:"answer"`
		Credits    string `yaml:"credits"`

		Leaderboard string `yaml:"leaderboard"`
	} `yaml:"timing"`
	Aggregation struct {
		Enabled  *bool  `yaml:"enabled"`
		Interval string `yaml:"interval"`
		PageSize int    `yaml:"page_size"`
		Paginate *bool  `yaml:"paginate"`
	} `yaml:"aggregation"`
	ContentPath string `yaml:"content_path"`
	WriteQueue  int    `yaml:"write_queue"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Durations returns the per-screen durations; unset entries keep the defaults.
func (s Show) Durations() app.Timing {
	def := app.DefaultTiming()
	return app.Timing{
		IntroImage: TTLDuration(s.Timing.IntroImage, def.IntroImage),
		Disclaimer: TTLDuration(s.Timing.Disclaimer, def.Disclaimer),
		IntroVideo: TTLDuration(s.Timing.IntroVideo, def.IntroVideo),
		Question:   TTLDuration(s.Timing.Question, def.Question),
		Answer:     TTLDuration(s.Timing.Answer, def.Answer),
		Credits:    TTLDuration(s.Timing.Credits, def.Credits),

		Leaderboard: TTLDuration(s.Timing.Leaderboard, def.Leaderboard),
	}
}

// AggregationConfig returns the live response settings with defaults applied.
func (s Show) AggregationConfig() app.AggregationConfig {
	def := app.DefaultAggregation()
	out := def
	if s.Aggregation.Enabled != nil {
		out.Enabled = *s.Aggregation.Enabled
	}
	if s.Aggregation.Paginate != nil {
		out.Paginate = *s.Aggregation.Paginate
	}
	if s.Aggregation.PageSize > 0 {
		out.PageSize = s.Aggregation.PageSize
	}
	out.Interval = TTLDuration(s.Aggregation.Interval, def.Interval)
	return out
}

// LoadContent reads the intro/outro content library. An empty path yields the
// built-in library.
func LoadContent(path string) (app.ContentLibrary, error) {
	if path == "" {
		return app.DefaultContentLibrary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return app.ContentLibrary{}, fmt.Errorf("read content library: %w", err)
	}
	var lib app.ContentLibrary
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return app.ContentLibrary{}, fmt.Errorf("parse content library: %w", err)
	}
	return lib, nil
}

// LoadGames reads game documents from a YAML (or JSON) file of the form
// {games: [...]}. Session fields missing from the file keep the closed
// record defaults.
func LoadGames(path string) ([]domain.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}
	var doc struct {
		Games []yaml.Node `yaml:"games"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse games: %w", err)
	}
	games := make([]domain.GameRecord, 0, len(doc.Games))
	for i := range doc.Games {
		rec := domain.NewGameRecord("", "", nil)
		if err := doc.Games[i].Decode(&rec); err != nil {
			return nil, fmt.Errorf("parse game %d: %w", i, err)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("game %d has no id: %w", i, domain.ErrInvalidGame)
		}
		games = append(games, rec)
	}
	return games, nil
}
