package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"job-board/internal/config"
	"job-board/internal/database"
	dbpostgres "job-board/internal/database/postgres"
	jobentity "job-board/internal/domain/job"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/infrastructure/identity"
	"job-board/internal/infrastructure/persistence/mongo"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/repository"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Container owns every long lived dependency of the server and the CLI.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Mongo    *mongo.Client
	Jobs     jobentity.Repository
	Store    pinger
	Redis    *cache.Redis
	Sessions *cache.SessionStore
	Identity *identity.Client
	Uploads  *storage.LocalStorage
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := &Container{Config: cfg, Logger: logger}

	switch cfg.Database.Driver {
	case config.DriverMongo:
		mc, err := mongo.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := mc.EnsureIndexes(ctx); err != nil {
			_ = mc.Close()
			return nil, err
		}
		c.Mongo = mc
		c.Jobs = mongo.NewJobRepository(mc)
		c.Store = mc
	default:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Jobs = repository.NewPostgresJobRepository(db)
		c.Store = db
	}
	logger.Printf("[App] job store ready driver=%s", cfg.Database.Driver)

	c.Redis = cache.NewRedis(cfg.Redis, logger)
	c.Sessions = cache.NewSessionStore(c.Redis)
	c.Identity = identity.NewClient(cfg.Identity, logger)

	uploads, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicPrefix, cfg.Upload.MaxBytes)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Uploads = uploads

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close mongo: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
