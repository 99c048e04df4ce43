package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/deppfellow/go-tasks/internal/config"
	"github.com/deppfellow/go-tasks/internal/database"
	"github.com/deppfellow/go-tasks/internal/handler"
	"github.com/deppfellow/go-tasks/internal/logger"
	"github.com/deppfellow/go-tasks/internal/repository"
	"github.com/deppfellow/go-tasks/internal/router"
	"github.com/deppfellow/go-tasks/internal/server"
	"github.com/deppfellow/go-tasks/internal/service"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Apply database migrations before serving (also TASKS_DATABASE.MIGRATE_ON_START)",
			},
		},
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Apply database migrations and exit",
		Action: migrate,
	}
}

// bootstrap loads the configuration and builds the logger stack shared by
// every command.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, &log, loggerService, nil
}

func migrate(ctx context.Context, _ *cli.Command) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	return database.Migrate(ctx, log, database.DSN(cfg.Database))
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if cmd.Bool("migrate") || cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, log, database.DSN(cfg.Database)); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(ctx, cfg, log, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
