package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/cli"
	"github.com/ariefpradana/tokokita/internal/session"
	"github.com/ariefpradana/tokokita/pkg/config"
	"github.com/ariefpradana/tokokita/pkg/logger"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "tokokita",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	store := session.NewFileStore(cfg.Session.CredentialsFile)
	manager := session.NewManager(store, cfg.API.Normalized(), nil, logg)
	client := api.New(cfg.API, manager, logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(cfg, logg, manager, client, os.Stdout, os.Stderr)
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
