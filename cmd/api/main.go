// @title           Accounts API
// @version         1.0
// @description     User accounts and bearer token authentication.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/scrapeapi/accounts-api/internal/api"
	"github.com/scrapeapi/accounts-api/internal/api/handler"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
	"github.com/scrapeapi/accounts-api/internal/core/service"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/config"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/db/memory"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/db/mongo"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/db/postgres"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/db/redis"
	"github.com/scrapeapi/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "accounts-api"})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "accounts-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := make(map[string]handler.DependencyCheck)
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repo, err := openStore(ctx, cfg, log, checks, &closers)
	if err != nil {
		return err
	}

	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		repo = redis.NewCachedUserRepository(repo, rdb, cfg.Redis.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("user cache enabled")
	}

	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.DefaultTokenTTL)

	e := api.NewRouter(api.Dependencies{
		Auth:    service.NewAuthService(repo, hasher, tokens, cfg.Auth.AccessTokenTTL, log),
		Users:   service.NewUserService(repo, hasher, log),
		Checks:  checks,
		Log:     log,
		Metrics: true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
	checks map[string]handler.DependencyCheck,
	closers *[]func(),
) (ports.UserRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = client.Disconnect(context.Background()) })
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		repo := mongo.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
		return repo, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory user store; data is lost on restart")
		return memory.NewUserRepository(), nil

	default:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		checks["postgres"] = db.PingContext

		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		log.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Name).Msg("connected to PostgreSQL")
		return postgres.NewUserRepository(db), nil
	}
}
