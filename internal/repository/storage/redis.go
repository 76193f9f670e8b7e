package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

// RedisStorage - connection to the store of live games.
type RedisStorage struct {
	Connection *redis.Client
}

// NewRedisStorage - connects to the configured database and waits at most DialTimeout for it to answer.
func NewRedisStorage(ctx context.Context, conf config.Redis) (*RedisStorage, error) {
	addr := conf.GetRedisAddr()

	conn := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          conf.DB,
		DialTimeout: conf.DialTimeout,
	})

	pingCtx := ctx
	if conf.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, conf.DialTimeout)
		defer cancel()
	}

	if err := conn.Ping(pingCtx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s (db %d): %w", addr, conf.DB, err)
	}

	return &RedisStorage{Connection: conn}, nil
}

func (that *RedisStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}

	return nil
}
