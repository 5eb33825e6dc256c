package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/fortress/internal/auth"
	"github.com/dmitrijs2005/fortress/internal/buildinfo"
	"github.com/dmitrijs2005/fortress/internal/cli"
	"github.com/dmitrijs2005/fortress/internal/config"
	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/filex"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/registry"
	"github.com/dmitrijs2005/fortress/internal/seed"
	"github.com/dmitrijs2005/fortress/internal/session"
	"github.com/dmitrijs2005/fortress/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return err
	}
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := registry.NewMemoryRegistry()
	creds := credentials.NewMemoryStore()
	accounts, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, reg, creds, accounts, logger); err != nil {
		return err
	}

	tokens, err := session.NewTokens([]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		return err
	}
	sessions := session.NewSQLiteStore(db, cfg.SessionNamespace, tokens)

	engine := auth.New(reg, creds, sessions,
		auth.WithDelay(cfg.AuthDelay),
		auth.WithLogger(logger.With("component", "auth")),
	)
	defer engine.Close()
	engine.Initialize(ctx)

	app := cli.NewApp(engine, logger.With("component", "cli"), os.Stdin, os.Stdout)
	app.Run(ctx)
	return nil
}
