package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/database"
	"travel-booking/pkg/google"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"
)

// store is the opened backing database for the configured driver.
type store struct {
	repo  *repository.Repository
	pg    *database.DB
	mongo *mongo.Database
	close func()
}

// bootConfig loads config and the logger; the caller syncs the logger.
func bootConfig() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

// openStore connects to postgres or mongo depending on DB_DRIVER.
func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*store, error) {
	switch config.Database.Driver {
	case utils.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, config.Mongo)
		if err != nil {
			return nil, err
		}
		logger.Info("Mongo connected successfully", zap.String("database", config.Mongo.Database))

		return &store{
			repo:  repository.NewMongoRepository(db, logger),
			mongo: db,
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(disconnectCtx)
			},
		}, nil

	case utils.DriverPostgres, "":
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected successfully")

		return &store{
			repo:  repository.NewRepository(db, logger),
			pg:    db,
			close: db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", config.Database.Driver)
	}
}

// migrate brings the schema (postgres) or the indexes (mongo) up to date.
func (s *store) migrate(ctx context.Context) error {
	if s.mongo != nil {
		return database.EnsureMongoIndexes(ctx, s.mongo)
	}
	return database.MigrateUp(s.pg)
}

// buildDeps connects the infrastructure clients the services share. The
// returned func releases them.
func buildDeps(ctx context.Context, config *utils.Config, logger *zap.Logger) (usecase.Dependencies, func(), error) {
	closers := []func(){}
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var c cache.Cache = cache.Noop{}
	if config.Redis.Addr != "" {
		redis, err := cache.InitRedis(ctx, config.Redis)
		if err != nil {
			return usecase.Dependencies{}, release, err
		}
		closers = append(closers, func() { _ = redis.Close() })
		c = redis
		logger.Info("Redis cache enabled", zap.String("addr", config.Redis.Addr))
	}

	disk, err := storage.New(ctx, config.Storage)
	if err != nil {
		release()
		return usecase.Dependencies{}, func() {}, fmt.Errorf("init storage: %w", err)
	}

	if config.Google.ClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID not set, google login disabled")
	}

	deps := usecase.Dependencies{
		Tokens:  token.NewJWTMaker(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour),
		Google:  google.NewVerifier(config.Google.ClientID),
		Cache:   c,
		Disk:    disk,
		Metrics: metrics.New(),
	}
	return deps, release, nil
}
