package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedme/cmd"
	httpin "feedme/internal/adapters/in/http"
	"feedme/internal/adapters/out/mongo"
	"feedme/internal/adapters/out/postgres"
	"feedme/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		log.Fatalf("Feedme stopped: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	uowFactory, closeStore, err := openStore(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	app := cmd.NewCompositionRoot(configs, uowFactory, logger)
	if err = app.SeedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	e, err := newWebServer(&app, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", configs.HTTPPort, "storage", configs.Storage)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStore connects the configured store and prepares its schema.
func openStore(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func(), error) {
	switch configs.Storage {
	case cmd.StorageMongo:
		client, err := mongo.Connect(ctx, configs.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Disconnect mongo", "error", err)
			}
		}
		db := client.Database(configs.MongoDB)
		if err = mongo.EnsureIndexes(ctx, db); err != nil {
			closeStore()
			return nil, nil, err
		}
		return mongo.NewUnitOfWorkFactory(db), closeStore, nil
	default:
		gormDB, err := postgres.Open(configs.Postgres().DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if err = postgres.Migrate(gormDB); err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return postgres.NewGormUnitOfWorkFactory(gormDB), closeStore, nil
	}
}

func newWebServer(app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	handlers, err := app.CreateHTTPHandlers()
	if err != nil {
		return nil, err
	}
	tokens, err := app.CreateTokenIssuer()
	if err != nil {
		return nil, err
	}
	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return nil, err
	}

	e := httpin.NewEcho(logger)
	server := httpin.NewServer(handlers, tokens, logger)
	if err = httpin.RegisterRoutes(e, server, app.CreateAuthenticator(tokens), doc); err != nil {
		return nil, err
	}
	return e, nil
}
