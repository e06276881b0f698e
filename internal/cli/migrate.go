package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/pkg/database"
)

// NewMigrateCmd применяет SQL-миграции PostgreSQL
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn not configured (check POSTGRES_DSN env var)")
	}

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	return database.MigrateDB(db)
}
