package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routr/backend/internal/repo"
	"github.com/routr/backend/internal/service"
)

// CreateUserCmd adds a login. There is no sign-up endpoint; operators create
// users from the command line.
type CreateUserCmd struct {
	Email       string `arg:"" help:"Login email address."`
	Password    string `name:"password" env:"ROUTR_PASSWORD" required:"" help:"Initial password (at least 8 characters)."`
	Staff       bool   `name:"staff" help:"Grant staff rights."`
	DatabaseURL string `name:"database-url" env:"DATABASE_URL" required:"" help:"Postgres connection string."`
	LogLevel    string `name:"log-level" env:"LOG_LEVEL" default:"info"`
}

// Run creates the user and logs its ID.
func (c *CreateUserCmd) Run(ctx context.Context) error {
	logger := newLogger(c.LogLevel)

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	// Only CreateUser is called, so no signing secret is needed.
	auth := service.NewAuthService(repo.NewUserRepo(pool), "", 0)
	u, err := auth.CreateUser(ctx, c.Email, c.Password, c.Staff)
	if err != nil {
		return err
	}
	logger.Info("user created", "id", u.ID, "email", u.Email, "staff", u.IsStaff)
	return nil
}
