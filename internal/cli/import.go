package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"live-quiz-show/internal/config"
	"live-quiz-show/internal/infra/postgres"
	"live-quiz-show/internal/observability"
)

// NewImportCmd upserts game documents from a YAML or JSON file into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <games-file>",
		Short: "Import game documents into the game store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0])
		},
	}
}

func runImport(ctx context.Context, configPath, gamesPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

	games, err := config.LoadGames(gamesPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewGameStore(pool)
	for _, g := range games {
		if err := store.UpsertGame(ctx, g); err != nil {
			return fmt.Errorf("import %s: %w", g.ID, err)
		}
		log.Info("game imported", "game", g.ID, "questions", len(g.Questions))
	}
	return nil
}
