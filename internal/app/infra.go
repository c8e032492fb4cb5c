package app

import (
	"context"
	"database/sql"
	"errors"

	"hybrid-auth-service/internal/config"
	"hybrid-auth-service/internal/db"
	"hybrid-auth-service/internal/logger"
	"hybrid-auth-service/internal/redis"

	_ "github.com/lib/pq"
)

// Infra bundles the external connections the service depends on.
type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		DB:    &db.DB{DB: sqlDB},
		Redis: redisClient,
	}, nil
}

// Close releases both connections, reporting every failure.
func (i *Infra) Close() error {
	return errors.Join(
		i.Redis.Close(),
		i.DB.Close(),
	)
}
