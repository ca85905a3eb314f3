package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/repository/mongodb"
	"github.com/noah-isme/cohort-tools-api/internal/repository/postgres"
	"github.com/noah-isme/cohort-tools-api/internal/service"
	"github.com/noah-isme/cohort-tools-api/pkg/config"
	"github.com/noah-isme/cohort-tools-api/pkg/database"
)

const pingTimeout = 5 * time.Second

// Store bundles the repositories of the configured record store backend.
type Store struct {
	Driver   string
	Cohorts  service.CohortRepository
	Students service.StudentRepository
	Users    service.UserRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStore builds the backend selected by cfg.Store.Driver. Drivers connect
// lazily, so an unreachable server is logged and left for requests to report.
// Indexes and tables are only ensured when the first ping succeeds.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return newPostgresStore(ctx, db, logger), nil
	default:
		client, err := database.NewMongo(cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("open mongodb: %w", err)
		}
		return newMongoStore(ctx, client, cfg.Mongo.Database, logger), nil
	}
}

func newMongoStore(ctx context.Context, client *mongo.Client, name string, logger *zap.Logger) *Store {
	db := client.Database(name)
	store := &Store{
		Driver:   config.StoreMongo,
		Cohorts:  mongodb.NewCohortRepository(db),
		Students: mongodb.NewStudentRepository(db),
		Users:    mongodb.NewUserRepository(db),
		ping: func(ctx context.Context) error {
			return database.PingMongo(ctx, client, pingTimeout)
		},
		close: client.Disconnect,
	}

	if err := store.Ping(ctx); err != nil {
		logger.Warn("mongodb unreachable at startup", zap.String("database", name), zap.Error(err))
		return store
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("failed to ensure mongodb indexes", zap.Error(err))
	}
	logger.Info("connected to mongodb", zap.String("database", name))
	return store
}

func newPostgresStore(ctx context.Context, db *sqlx.DB, logger *zap.Logger) *Store {
	store := &Store{
		Driver:   config.StorePostgres,
		Cohorts:  postgres.NewCohortRepository(db),
		Students: postgres.NewStudentRepository(db),
		Users:    postgres.NewUserRepository(db),
		ping: func(ctx context.Context) error {
			return database.PingPostgres(ctx, db, pingTimeout)
		},
		close: func(context.Context) error {
			return db.Close()
		},
	}

	if err := store.Ping(ctx); err != nil {
		logger.Warn("postgres unreachable at startup", zap.Error(err))
		return store
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to ensure postgres schema", zap.Error(err))
	}
	logger.Info("connected to postgres")
	return store
}
