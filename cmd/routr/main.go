// Package main is the routr command. It wires dependencies together for the
// API server and the operator commands. No business logic belongs here.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// CLI lists the routr subcommands. serve is the default.
type CLI struct {
	Serve      ServeCmd      `cmd:"" default:"1" help:"Run the HTTP API server."`
	Migrate    MigrateCmd    `cmd:"" help:"Apply, roll back, or list database migrations."`
	CreateUser CreateUserCmd `cmd:"" name:"create-user" help:"Create a user that can log in."`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("routr"),
		kong.Description("Truck trip logbook API."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := kctx.Run(); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

// newLogger builds the JSON logger at the given level name, falling back to
// info for anything slog does not recognise.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
