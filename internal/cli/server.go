package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/config"
	"live-quiz-show/internal/infra/memory"
	pgstore "live-quiz-show/internal/infra/postgres"
	redisinfra "live-quiz-show/internal/infra/redis"
	"live-quiz-show/internal/observability"
	transport "live-quiz-show/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	var gamesPath string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the quiz show server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port, gamesPath)
		},
	}
	cmd.Flags().StringVar(&gamesPath, "games", "", "seed the in-memory game store from a YAML file when Postgres is not configured")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag, gamesPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Game documents: Postgres when configured, otherwise an in-memory store.
	var games app.GameStore
	if pool != nil {
		games = pgstore.NewGameStore(pool)
	} else {
		seed, err := seedGames(gamesPath)
		if err != nil {
			return err
		}
		games = seed
		log.Warn("postgres not configured, games are kept in memory", "games", gamesPath)
	}

	cacheTTL := config.TTLDuration(cfg.Game.CacheTTL, time.Minute)
	var gameCache app.GameStore
	if redisClient != nil {
		gameCache = redisinfra.NewGameCache(redisClient, games, cacheTTL, log)
	} else {
		gameCache = memory.NewGameCache(games, cacheTTL)
	}

	var responses app.ResponseFeed
	switch {
	case redisClient != nil:
		responses = redisinfra.NewResponseFeed(redisClient, redisTTL)
	case pool != nil:
		responses = pgstore.NewResponseStore(pool)
	default:
		responses = memory.NewResponseLog()
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		owner := instanceID()
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL, owner)
		log.Info("registered show instance", "owner", owner)
	} else {
		sessions = memory.NewSessionStore()
	}

	lib, err := config.LoadContent(cfg.Show.ContentPath)
	if err != nil {
		return err
	}

	hub := app.NewHub(32)
	opts := []app.Option{
		app.WithLogger(log),
		app.WithTiming(cfg.Show.Durations()),
		app.WithAggregation(cfg.Show.AggregationConfig()),
		app.WithContentPool(app.NewStaticContentPool(lib, time.Now().UnixNano())),
		app.WithWriteQueue(cfg.Show.WriteQueue),
	}
	var notifier *redisinfra.Notifier
	if redisClient != nil {
		notifier = redisinfra.NewNotifier(redisClient, log)
		opts = append(opts, app.WithBroadcaster(notifier))
	}
	service := app.NewShowService(gameCache, responses, sessions, hub, opts...)
	defer service.Close()

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, log, cfg.Server.ViewerURL),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	if notifier != nil {
		g.Go(func() error {
			return notifier.Run(gctx, hub.Deliver, nil)
		})
	}
	g.Go(func() error {
		log.Info(fmt.Sprintf("starting quiz service on :%s", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func seedGames(path string) (*memory.GameStore, error) {
	if path == "" {
		return memory.NewGameStore(), nil
	}
	games, err := config.LoadGames(path)
	if err != nil {
		return nil, err
	}
	return memory.NewGameStore(games...), nil
}

func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "quiz-show"
	}
	return host + "-" + uuid.NewString()[:8]
}
