package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/routr/backend/migrations"
)

// MigrateCmd drives the embedded goose migrations.
type MigrateCmd struct {
	Direction   string `arg:"" enum:"up,down,status" default:"up" help:"up applies all pending migrations, down rolls back the latest one, status lists them."`
	DatabaseURL string `name:"database-url" env:"DATABASE_URL" required:"" help:"Postgres connection string."`
	LogLevel    string `name:"log-level" env:"LOG_LEVEL" default:"info"`
}

// Run applies the requested migration step.
func (c *MigrateCmd) Run(ctx context.Context) error {
	return migrate(ctx, c.DatabaseURL, c.Direction, newLogger(c.LogLevel))
}

func migrate(ctx context.Context, dsn, direction string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	switch direction {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, res := range results {
			logger.Info("migration applied", "version", res.Source.Version, "file", res.Source.Path, "duration", res.Duration)
		}
		if len(results) == 0 {
			logger.Info("no pending migrations")
		}
	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		logger.Info("migration rolled back", "version", res.Source.Version, "file", res.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, st := range statuses {
			logger.Info("migration", "version", st.Source.Version, "file", st.Source.Path, "state", string(st.State))
		}
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	return nil
}
