package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"perftrack/internal/app/server"
	"perftrack/internal/cli"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/performance"
	"perftrack/internal/domain/tasks"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/logger"
	"perftrack/internal/transport/bridge"
)

func main() {
	var grammar cli.CLI
	parser, err := cli.Parser(&grammar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(kctx.Run, grammar); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(exec func(binds ...any) error, grammar cli.CLI) error {
	cfg := config.Load(grammar.EnvFile...)
	if grammar.DataDir != "" {
		cfg.DataDir = grammar.DataDir
	}
	storeAs, err := auth.ParseCredentialKind(cfg.PasswordHash)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.ForEnvironment(cfg.Environment, grammar.LogLevel, cfg.LogFormat, "stderr"))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, pool, err := server.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	authSvc := auth.NewService(store, log, cfg.JWTSecret, cfg.TokenTTL)
	authSvc.StoreAs = storeAs

	loc := cfg.Location()
	return exec(&cli.Context{
		Ctx:         ctx,
		Bridge:      bridge.New(store, log),
		Performance: performance.NewService(store, log, loc),
		Tasks:       tasks.NewService(store, log, loc),
		Auth:        authSvc,
		In:          os.Stdin,
		Out:         os.Stdout,
	})
}
